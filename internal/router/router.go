// Package router builds a time-weighted directed graph over a catalogue's
// stops and buses, and answers shortest-time itinerary queries against it.
// Each stop becomes two graph vertices — a wait vertex and a board vertex
// — so that transfer waiting is modeled as an ordinary edge rather than a
// per-hop special case; see spec.md §4.5 and §9.
package router

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/path"
	"gonum.org/v1/gonum/graph/simple"

	"github.com/l0rsy/cpp-transport-catalogue/internal/domain"
)

// ErrInvalidRoutingSettings is returned when routing settings can't build
// a usable graph (spec.md §9 open question (b): bus_velocity must be > 0).
var ErrInvalidRoutingSettings = errors.New("invalid routing settings")

// Catalogue is the slice of catalogue.Catalogue the router needs. Kept
// narrow so this package never imports catalogue directly.
type Catalogue interface {
	Stops() []domain.Stop
	Buses() []domain.Bus
	Dist(from, to domain.StopID) int
	StopID(name string) (domain.StopID, bool)
}

// edgeDetail is the itinerary-reconstruction payload for one graph edge.
// Wait edges carry only a stop name; bus edges carry a route name and span
// count.
type edgeDetail struct {
	weight    float64
	isWait    bool
	stopName  string
	busName   string
	spanCount int
}

// Router is an immutable, built-once shortest-path index over a
// catalogue's stops and routes at a fixed set of routing settings.
type Router struct {
	graph    *simple.WeightedDirectedGraph
	edgeInfo map[[2]int64]edgeDetail
	stopID   func(name string) (domain.StopID, bool)
}

// waitVertex and boardVertex give the two dense-int vertex IDs for a stop.
func waitVertex(id domain.StopID) int64  { return int64(id) * 2 }
func boardVertex(id domain.StopID) int64 { return int64(id)*2 + 1 }

// New builds the routing graph for a catalogue at the given settings.
// Building is O(sum of route lengths squared) in the worst case, same as
// the spec's all-pairs edge construction; it happens once, lazily, on the
// first route query (see the service layer that owns the build/invalidate
// lifecycle).
func New(cat Catalogue, settings domain.RoutingSettings) (*Router, error) {
	if settings.BusVelocityKMH <= 0 {
		return nil, fmt.Errorf("bus_velocity_kmh %v: %w", settings.BusVelocityKMH, ErrInvalidRoutingSettings)
	}
	if settings.BusWaitTimeMin < 0 {
		return nil, fmt.Errorf("bus_wait_time_min %v: %w", settings.BusWaitTimeMin, ErrInvalidRoutingSettings)
	}

	stops := cat.Stops()
	edgeInfo := make(map[[2]int64]edgeDetail, len(stops)*2)

	addEdge := func(from, to int64, detail edgeDetail) {
		key := [2]int64{from, to}
		if existing, ok := edgeInfo[key]; ok && existing.weight <= detail.weight {
			// Parallel edges never change the shortest-path distance, only
			// the cheapest one can ever appear in an optimal path — keep
			// it and the first one discovered on exact ties, per the
			// spec's determinism contract.
			return
		}
		edgeInfo[key] = detail
	}

	for id, stop := range stops {
		sid := domain.StopID(id)
		addEdge(waitVertex(sid), boardVertex(sid), edgeDetail{
			weight:   float64(settings.BusWaitTimeMin),
			isWait:   true,
			stopName: stop.Name,
		})
	}

	speedMetersPerMin := settings.BusVelocityKMH * 1000 / 60
	for _, bus := range cat.Buses() {
		addBusEdges(addEdge, cat, bus.Name, bus.Stops, speedMetersPerMin)
		if !bus.IsRoundtrip {
			addBusEdges(addEdge, cat, bus.Name, reversed(bus.Stops), speedMetersPerMin)
		}
	}

	g := simple.NewWeightedDirectedGraph(0, math.Inf(1))
	for key, detail := range edgeInfo {
		g.SetWeightedEdge(simple.WeightedEdge{
			F: simple.Node(key[0]),
			T: simple.Node(key[1]),
			W: detail.weight,
		})
	}

	return &Router{
		graph:    g,
		edgeInfo: edgeInfo,
		stopID:   cat.StopID,
	}, nil
}

// addBusEdges adds one edge board(stops[i]) -> wait(stops[j]) for every
// 0 <= i < j <= len(stops)-1, weighted by the cumulative travel time along
// the segment.
func addBusEdges(
	addEdge func(from, to int64, detail edgeDetail),
	cat Catalogue,
	busName string,
	stops []domain.StopID,
	speedMetersPerMin float64,
) {
	n := len(stops)
	for i := 0; i < n; i++ {
		cumMeters := 0.0
		for j := i + 1; j < n; j++ {
			cumMeters += float64(cat.Dist(stops[j-1], stops[j]))
			addEdge(boardVertex(stops[i]), waitVertex(stops[j]), edgeDetail{
				weight:    cumMeters / speedMetersPerMin,
				busName:   busName,
				spanCount: j - i,
			})
		}
	}
}

func reversed(stops []domain.StopID) []domain.StopID {
	out := make([]domain.StopID, len(stops))
	for i, s := range stops {
		out[len(stops)-1-i] = s
	}
	return out
}

// FindRoute resolves the shortest-time itinerary between two named stops.
// Returns false if either stop is unknown or no path exists.
func (r *Router) FindRoute(from, to string) (domain.RouteResponse, bool) {
	fromID, ok := r.stopID(from)
	if !ok {
		return domain.RouteResponse{}, false
	}
	toID, ok := r.stopID(to)
	if !ok {
		return domain.RouteResponse{}, false
	}
	if from == to {
		return domain.RouteResponse{}, true
	}

	start := waitVertex(fromID)
	target := waitVertex(toID)

	shortest := path.DijkstraFrom(simple.Node(start), r.graph)
	nodes, weight := shortest.To(target)
	if len(nodes) == 0 {
		return domain.RouteResponse{}, false
	}

	items := make([]domain.RouteItem, 0, len(nodes)-1)
	for i := 0; i+1 < len(nodes); i++ {
		items = append(items, r.itemFor(nodes[i], nodes[i+1]))
	}

	return domain.RouteResponse{TotalTime: weight, Items: items}, true
}

func (r *Router) itemFor(from, to graph.Node) domain.RouteItem {
	detail := r.edgeInfo[[2]int64{from.ID(), to.ID()}]
	if detail.isWait {
		return domain.RouteItem{
			Type: domain.RouteItemWait,
			Stop: detail.stopName,
			Time: detail.weight,
		}
	}
	return domain.RouteItem{
		Type:      domain.RouteItemBus,
		Bus:       detail.busName,
		SpanCount: detail.spanCount,
		Time:      detail.weight,
	}
}
