package document_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/l0rsy/cpp-transport-catalogue/internal/document"
)

func TestProcessScenarioTransferAcrossRoutes(t *testing.T) {
	input := `{
		"base_requests": [
			{"type": "Stop", "name": "A", "latitude": 0, "longitude": 0, "road_distances": {"B": 600}},
			{"type": "Stop", "name": "B", "latitude": 0, "longitude": 0.01, "road_distances": {"A": 600, "C": 600}},
			{"type": "Stop", "name": "C", "latitude": 0, "longitude": 0.02, "road_distances": {"B": 600}},
			{"type": "Bus", "name": "R1", "stops": ["A", "B"], "is_roundtrip": false},
			{"type": "Bus", "name": "R2", "stops": ["B", "C"], "is_roundtrip": false}
		],
		"routing_settings": {"bus_wait_time": 6, "bus_velocity": 30},
		"stat_requests": [
			{"id": 1, "type": "Route", "from": "A", "to": "C"},
			{"id": 2, "type": "Route", "from": "A", "to": "nowhere"}
		]
	}`

	out, err := document.Process([]byte(input))
	require.NoError(t, err)

	var responses []map[string]any
	require.NoError(t, json.Unmarshal(out, &responses))
	require.Len(t, responses, 2)

	assert.Equal(t, float64(1), responses[0]["request_id"])
	assert.InDelta(t, 14.4, responses[0]["total_time"], 1e-9)
	items, ok := responses[0]["items"].([]any)
	require.True(t, ok)
	assert.Len(t, items, 4)

	assert.Equal(t, float64(2), responses[1]["request_id"])
	assert.Equal(t, "not found", responses[1]["error_message"])
}

func TestProcessBusAndStopQueries(t *testing.T) {
	input := `{
		"base_requests": [
			{"type": "Stop", "name": "A", "latitude": 55.6, "longitude": 37.2, "road_distances": {"B": 1000}},
			{"type": "Stop", "name": "B", "latitude": 55.5, "longitude": 37.3, "road_distances": {"A": 1000}},
			{"type": "Bus", "name": "R1", "stops": ["A", "B"], "is_roundtrip": false}
		],
		"stat_requests": [
			{"id": 10, "type": "Bus", "name": "R1"},
			{"id": 11, "type": "Bus", "name": "ghost"},
			{"id": 12, "type": "Stop", "name": "A"},
			{"id": 13, "type": "Stop", "name": "ghost"}
		]
	}`

	out, err := document.Process([]byte(input))
	require.NoError(t, err)

	var responses []map[string]any
	require.NoError(t, json.Unmarshal(out, &responses))
	require.Len(t, responses, 4)

	assert.Equal(t, float64(3), responses[0]["stop_count"])
	assert.Equal(t, float64(2), responses[0]["unique_stop_count"])
	assert.Equal(t, "not found", responses[1]["error_message"])
	buses, ok := responses[2]["buses"].([]any)
	require.True(t, ok)
	assert.Equal(t, []any{"R1"}, buses)
	assert.Equal(t, "not found", responses[3]["error_message"])
}

func TestProcessMapQueryProducesSVGString(t *testing.T) {
	input := `{
		"base_requests": [
			{"type": "Stop", "name": "A", "latitude": 55.6, "longitude": 37.2, "road_distances": {}},
			{"type": "Stop", "name": "B", "latitude": 55.5, "longitude": 37.3, "road_distances": {}},
			{"type": "Bus", "name": "R1", "stops": ["A", "B"], "is_roundtrip": false}
		],
		"render_settings": {
			"width": 600, "height": 400, "padding": 30,
			"line_width": 14, "stop_radius": 5,
			"bus_label_font_size": 20, "bus_label_offset": [7, 15],
			"stop_label_font_size": 18, "stop_label_offset": [7, -3],
			"underlayer_color": [255, 255, 255, 0.85], "underlayer_width": 3,
			"color_palette": ["green", [255, 160, 0], [30, 130, 240, 0.4]]
		},
		"stat_requests": [
			{"id": 1, "type": "Map"}
		]
	}`

	out, err := document.Process([]byte(input))
	require.NoError(t, err)

	var responses []map[string]any
	require.NoError(t, json.Unmarshal(out, &responses))
	require.Len(t, responses, 1)

	svgText, ok := responses[0]["map"].(string)
	require.True(t, ok)
	assert.Contains(t, svgText, "<svg")
	assert.Contains(t, svgText, "rgba(255,255,255,0.85)")
}

func TestProcessRouteWithoutRoutingSettingsIsNotFound(t *testing.T) {
	input := `{
		"base_requests": [
			{"type": "Stop", "name": "A", "latitude": 0, "longitude": 0, "road_distances": {}},
			{"type": "Stop", "name": "B", "latitude": 0, "longitude": 0.01, "road_distances": {}}
		],
		"stat_requests": [
			{"id": 5, "type": "Route", "from": "A", "to": "B"}
		]
	}`

	out, err := document.Process([]byte(input))
	require.NoError(t, err)

	var responses []map[string]any
	require.NoError(t, json.Unmarshal(out, &responses))
	assert.Equal(t, "not found", responses[0]["error_message"])
}

func TestProcessRejectsDuplicateStop(t *testing.T) {
	input := `{
		"base_requests": [
			{"type": "Stop", "name": "A", "latitude": 0, "longitude": 0, "road_distances": {}},
			{"type": "Stop", "name": "A", "latitude": 1, "longitude": 1, "road_distances": {}}
		],
		"stat_requests": []
	}`

	_, err := document.Process([]byte(input))
	assert.Error(t, err)
}

func TestProcessRejectsUnknownStopInBus(t *testing.T) {
	input := `{
		"base_requests": [
			{"type": "Stop", "name": "A", "latitude": 0, "longitude": 0, "road_distances": {}},
			{"type": "Bus", "name": "R1", "stops": ["A", "ghost"], "is_roundtrip": true}
		],
		"stat_requests": []
	}`

	_, err := document.Process([]byte(input))
	assert.Error(t, err)
}

func TestProcessRejectsMalformedBaseRequestType(t *testing.T) {
	input := `{"base_requests": [{"type": "Weird"}], "stat_requests": []}`
	_, err := document.Process([]byte(input))
	assert.ErrorIs(t, err, document.ErrMalformedDocument)
}

func TestProcessIsDeterministic(t *testing.T) {
	input := `{
		"base_requests": [
			{"type": "Stop", "name": "A", "latitude": 0, "longitude": 0, "road_distances": {"B": 600}},
			{"type": "Stop", "name": "B", "latitude": 0, "longitude": 0.01, "road_distances": {"A": 600}},
			{"type": "Bus", "name": "R1", "stops": ["A", "B"], "is_roundtrip": false}
		],
		"routing_settings": {"bus_wait_time": 6, "bus_velocity": 30},
		"stat_requests": [
			{"id": 1, "type": "Bus", "name": "R1"},
			{"id": 2, "type": "Route", "from": "A", "to": "B"}
		]
	}`

	out1, err := document.Process([]byte(input))
	require.NoError(t, err)
	out2, err := document.Process([]byte(input))
	require.NoError(t, err)
	assert.Equal(t, string(out1), string(out2))
}
