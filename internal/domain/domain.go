// Package domain holds the value types shared by the catalogue, the map
// renderer and the router. Nothing here has behavior beyond simple derived
// accessors; it exists so the three layers agree on vocabulary.
package domain

// Coordinates is a geographic point in degrees.
type Coordinates struct {
	Lat float64
	Lon float64
}

// StopID is a stable handle into the catalogue's stop storage. Handles are
// assigned in insertion order and never reused or invalidated.
type StopID int

// BusID is a stable handle into the catalogue's route storage.
type BusID int

// Stop is an immutable named location.
type Stop struct {
	Name        string
	Coordinates Coordinates
}

// Bus is a named route over a sequence of stop handles.
type Bus struct {
	Name        string
	Stops       []StopID
	IsRoundtrip bool
}

// BusInfo is the derived statistics for a route, see spec §4.2.
type BusInfo struct {
	StopsCount       int
	UniqueStopsCount int
	RouteLength      float64
	GeoLength        float64
	Curvature        float64
}

// StopInfo is the derived statistics for a stop: the sorted, deduplicated
// names of every route serving it.
type StopInfo struct {
	Buses []string
}

// RoutingSettings configures the router's time-weighted graph.
type RoutingSettings struct {
	BusWaitTimeMin int
	BusVelocityKMH float64
}

// RouteItemType discriminates the two kinds of itinerary step.
type RouteItemType string

const (
	RouteItemWait RouteItemType = "Wait"
	RouteItemBus  RouteItemType = "Bus"
)

// RouteItem is one step of an itinerary: either waiting at a platform for
// bus_wait_time_min, or riding a bus for span_count segments.
type RouteItem struct {
	Type      RouteItemType
	Stop      string
	Bus       string
	SpanCount int
	Time      float64
}

// RouteResponse is a complete itinerary.
type RouteResponse struct {
	TotalTime float64
	Items     []RouteItem
}
