package router_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/l0rsy/cpp-transport-catalogue/internal/catalogue"
	"github.com/l0rsy/cpp-transport-catalogue/internal/domain"
	"github.com/l0rsy/cpp-transport-catalogue/internal/router"
)

func TestScenarioTransferAcrossRoutes(t *testing.T) {
	c := catalogue.New()
	require.NoError(t, c.AddStop("A", 0, 0))
	require.NoError(t, c.AddStop("B", 0, 0.01))
	require.NoError(t, c.AddStop("C", 0, 0.02))
	require.NoError(t, c.AddDistance("A", "B", 600))
	require.NoError(t, c.AddDistance("B", "A", 600))
	require.NoError(t, c.AddDistance("B", "C", 600))
	require.NoError(t, c.AddDistance("C", "B", 600))
	require.NoError(t, c.AddBus("R1", []string{"A", "B"}, false))
	require.NoError(t, c.AddBus("R2", []string{"B", "C"}, false))

	r, err := router.New(c, domain.RoutingSettings{BusWaitTimeMin: 6, BusVelocityKMH: 30})
	require.NoError(t, err)

	resp, ok := r.FindRoute("A", "C")
	require.True(t, ok)
	assert.InDelta(t, 14.4, resp.TotalTime, 1e-9)
	require.Len(t, resp.Items, 4)

	assert.Equal(t, domain.RouteItemWait, resp.Items[0].Type)
	assert.Equal(t, "A", resp.Items[0].Stop)
	assert.Equal(t, 6.0, resp.Items[0].Time)

	assert.Equal(t, domain.RouteItemBus, resp.Items[1].Type)
	assert.Equal(t, "R1", resp.Items[1].Bus)
	assert.Equal(t, 1, resp.Items[1].SpanCount)
	assert.InDelta(t, 1.2, resp.Items[1].Time, 1e-9)

	assert.Equal(t, domain.RouteItemWait, resp.Items[2].Type)
	assert.Equal(t, "B", resp.Items[2].Stop)

	assert.Equal(t, domain.RouteItemBus, resp.Items[3].Type)
	assert.Equal(t, "R2", resp.Items[3].Bus)
}

func TestFindRouteSameStopIsZeroCost(t *testing.T) {
	c := catalogue.New()
	require.NoError(t, c.AddStop("A", 0, 0))
	r, err := router.New(c, domain.RoutingSettings{BusWaitTimeMin: 6, BusVelocityKMH: 30})
	require.NoError(t, err)

	resp, ok := r.FindRoute("A", "A")
	require.True(t, ok)
	assert.Equal(t, 0.0, resp.TotalTime)
	assert.Empty(t, resp.Items)
}

func TestFindRouteUnknownStopReturnsFalse(t *testing.T) {
	c := catalogue.New()
	require.NoError(t, c.AddStop("A", 0, 0))
	r, err := router.New(c, domain.RoutingSettings{BusWaitTimeMin: 6, BusVelocityKMH: 30})
	require.NoError(t, err)

	_, ok := r.FindRoute("A", "nowhere")
	assert.False(t, ok)
}

func TestFindRouteNoPathReturnsFalse(t *testing.T) {
	c := catalogue.New()
	require.NoError(t, c.AddStop("A", 0, 0))
	require.NoError(t, c.AddStop("Isolated", 10, 10))
	r, err := router.New(c, domain.RoutingSettings{BusWaitTimeMin: 6, BusVelocityKMH: 30})
	require.NoError(t, err)

	_, ok := r.FindRoute("A", "Isolated")
	assert.False(t, ok)
}

func TestNewRejectsNonPositiveVelocity(t *testing.T) {
	c := catalogue.New()
	_, err := router.New(c, domain.RoutingSettings{BusWaitTimeMin: 6, BusVelocityKMH: 0})
	assert.ErrorIs(t, err, router.ErrInvalidRoutingSettings)
}
