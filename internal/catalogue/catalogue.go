// Package catalogue owns stops, routes and asymmetric road distances, and
// derives the statistics spec'd for Bus/Stop queries. It is populated once
// during ingest and is read-only for the rest of the process's life — see
// the lifecycle note in spec.md §3.
package catalogue

import (
	"errors"
	"fmt"
	"sort"

	"github.com/samber/lo"

	"github.com/l0rsy/cpp-transport-catalogue/internal/domain"
	"github.com/l0rsy/cpp-transport-catalogue/internal/geo"
)

// Sentinel errors surfaced to the document/CLI boundary. Wrap with
// fmt.Errorf("...: %w", ...) for context, never string-match.
var (
	ErrDuplicateStop = errors.New("duplicate stop")
	ErrUnknownStop   = errors.New("unknown stop")
)

type distKey struct {
	from, to domain.StopID
}

// Catalogue is an append-only store of stops and buses, indexed by name and
// by stable integer handle. Stops and buses are only ever appended, never
// removed or overwritten, so handles into it stay valid forever.
type Catalogue struct {
	stops   []domain.Stop
	buses   []domain.Bus
	stopIDs map[string]domain.StopID
	busIDs  map[string]domain.BusID

	// distances[{from,to}] = meters, asymmetric, only present when declared.
	distances map[distKey]int

	// stopRoutes[s] is the set of bus names serving stop s, keyed by name
	// for fast membership checks; GetStopInfo sorts on read.
	stopRoutes []map[string]struct{}
}

// New returns an empty catalogue ready for ingest.
func New() *Catalogue {
	return &Catalogue{
		stopIDs:   make(map[string]domain.StopID),
		busIDs:    make(map[string]domain.BusID),
		distances: make(map[distKey]int),
	}
}

// AddStop records a new stop. Adding a stop whose name already exists is a
// user error.
func (c *Catalogue) AddStop(name string, lat, lon float64) error {
	if _, ok := c.stopIDs[name]; ok {
		return fmt.Errorf("add stop %q: %w", name, ErrDuplicateStop)
	}
	id := domain.StopID(len(c.stops))
	c.stops = append(c.stops, domain.Stop{
		Name:        name,
		Coordinates: domain.Coordinates{Lat: lat, Lon: lon},
	})
	c.stopIDs[name] = id
	c.stopRoutes = append(c.stopRoutes, make(map[string]struct{}))
	return nil
}

// AddDistance records the asymmetric road distance from stop "from" to
// stop "to", in meters. Both stops must already exist.
func (c *Catalogue) AddDistance(from, to string, meters int) error {
	fromID, ok := c.stopIDs[from]
	if !ok {
		return fmt.Errorf("add distance from %q: %w", from, ErrUnknownStop)
	}
	toID, ok := c.stopIDs[to]
	if !ok {
		return fmt.Errorf("add distance to %q: %w", to, ErrUnknownStop)
	}
	c.distances[distKey{fromID, toID}] = meters
	return nil
}

// AddBus records a new route. Every name in stopNames must already exist
// as a stop.
func (c *Catalogue) AddBus(name string, stopNames []string, isRoundtrip bool) error {
	stops := make([]domain.StopID, 0, len(stopNames))
	for _, sn := range stopNames {
		id, ok := c.stopIDs[sn]
		if !ok {
			return fmt.Errorf("add bus %q: stop %q: %w", name, sn, ErrUnknownStop)
		}
		stops = append(stops, id)
	}

	id := domain.BusID(len(c.buses))
	c.buses = append(c.buses, domain.Bus{
		Name:        name,
		Stops:       stops,
		IsRoundtrip: isRoundtrip,
	})
	c.busIDs[name] = id

	for _, sid := range lo.Uniq(stops) {
		c.stopRoutes[sid][name] = struct{}{}
	}
	return nil
}

// StopByID returns the stop for a handle. Panics on an out-of-range
// handle — handles only ever come from this catalogue, so that's a bug,
// not a user error.
func (c *Catalogue) StopByID(id domain.StopID) domain.Stop {
	return c.stops[int(id)]
}

// Dist looks up the road distance from stop "from" to stop "to": declared
// (from,to), else declared (to,from), else great-circle length truncated
// to an integer number of meters.
func (c *Catalogue) Dist(from, to domain.StopID) int {
	if m, ok := c.distances[distKey{from, to}]; ok {
		return m
	}
	if m, ok := c.distances[distKey{to, from}]; ok {
		return m
	}
	return int(geo.Distance(c.stops[int(from)].Coordinates, c.stops[int(to)].Coordinates))
}

// GetBusInfo derives the statistics for a named route, or false if the
// route is unknown or has no valid stops.
func (c *Catalogue) GetBusInfo(name string) (domain.BusInfo, bool) {
	id, ok := c.busIDs[name]
	if !ok {
		return domain.BusInfo{}, false
	}
	bus := c.buses[id]
	n := len(bus.Stops)
	if n == 0 {
		return domain.BusInfo{}, false
	}

	var stopsCount int
	if bus.IsRoundtrip {
		stopsCount = n
	} else {
		stopsCount = 2*n - 1
	}

	uniqueStops := lo.Uniq(bus.Stops)

	var routeLength, geoLength float64
	for i := 0; i < n-1; i++ {
		routeLength += float64(c.Dist(bus.Stops[i], bus.Stops[i+1]))
		geoLength += geo.Distance(c.stops[bus.Stops[i]].Coordinates, c.stops[bus.Stops[i+1]].Coordinates)
	}
	if bus.IsRoundtrip {
		routeLength += float64(c.Dist(bus.Stops[n-1], bus.Stops[0]))
		geoLength += geo.Distance(c.stops[bus.Stops[n-1]].Coordinates, c.stops[bus.Stops[0]].Coordinates)
	} else {
		for i := n - 1; i > 0; i-- {
			routeLength += float64(c.Dist(bus.Stops[i], bus.Stops[i-1]))
			geoLength += geo.Distance(c.stops[bus.Stops[i]].Coordinates, c.stops[bus.Stops[i-1]].Coordinates)
		}
	}

	curvature := 1.0
	if geoLength > 0 {
		curvature = routeLength / geoLength
	}

	return domain.BusInfo{
		StopsCount:       stopsCount,
		UniqueStopsCount: len(uniqueStops),
		RouteLength:      routeLength,
		GeoLength:        geoLength,
		Curvature:        curvature,
	}, true
}

// GetStopInfo returns the sorted, deduplicated names of the routes serving
// a stop, or false if the stop name is unknown.
func (c *Catalogue) GetStopInfo(name string) (domain.StopInfo, bool) {
	id, ok := c.stopIDs[name]
	if !ok {
		return domain.StopInfo{}, false
	}
	names := make([]string, 0, len(c.stopRoutes[id]))
	for n := range c.stopRoutes[id] {
		names = append(names, n)
	}
	sort.Strings(names)
	return domain.StopInfo{Buses: names}, true
}

// AllBusesSortedByName returns every route, lexicographic by name.
func (c *Catalogue) AllBusesSortedByName() []domain.Bus {
	out := make([]domain.Bus, len(c.buses))
	copy(out, c.buses)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// StopsUsedInRoutes returns every stop with a non-empty route-set, in no
// particular order — callers that need a stable order sort it themselves.
func (c *Catalogue) StopsUsedInRoutes() []domain.Stop {
	var out []domain.Stop
	for id, routes := range c.stopRoutes {
		if len(routes) > 0 {
			out = append(out, c.stops[id])
		}
	}
	return out
}

// Stops returns every stop in insertion order. Used by the router to size
// and build the two-vertex-per-stop graph.
func (c *Catalogue) Stops() []domain.Stop {
	out := make([]domain.Stop, len(c.stops))
	copy(out, c.stops)
	return out
}

// Buses returns every bus in insertion order.
func (c *Catalogue) Buses() []domain.Bus {
	out := make([]domain.Bus, len(c.buses))
	copy(out, c.buses)
	return out
}

// StopID looks up a stop's handle by name.
func (c *Catalogue) StopID(name string) (domain.StopID, bool) {
	id, ok := c.stopIDs[name]
	return id, ok
}

// StopCount returns the number of stops ingested so far.
func (c *Catalogue) StopCount() int {
	return len(c.stops)
}
