// Package document decodes the single top-level request object (base
// requests, render settings, routing settings, stat requests) and encodes
// the array of stat-request responses. Grounded on
// original_source/transport-catalogue/json_reader.cpp, the reference
// implementation's single JSON entry/exit point — translated here into
// Go structs and encoding/json rather than a hand-rolled JSON tree, since
// the shape is a one-shot batch document with no need for the original's
// incremental node-building API.
package document

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/l0rsy/cpp-transport-catalogue/internal/catalogue"
	"github.com/l0rsy/cpp-transport-catalogue/internal/domain"
	"github.com/l0rsy/cpp-transport-catalogue/internal/maprender"
	"github.com/l0rsy/cpp-transport-catalogue/internal/service"
	"github.com/l0rsy/cpp-transport-catalogue/internal/svg"
)

// ErrMalformedDocument covers structurally invalid input: wrong JSON
// shape, a base request missing its type, an unrecognised request type,
// or a color literal that isn't a string, a 3-element array or a
// 4-element array.
var ErrMalformedDocument = errors.New("malformed document")

// raw mirrors the wire document. Fields are decoded permissively first
// (json.RawMessage for base_requests and stat_requests) because each
// element's shape depends on a sibling "type" field.
type raw struct {
	BaseRequests    []json.RawMessage `json:"base_requests"`
	RenderSettings  *rawRenderSettings `json:"render_settings"`
	RoutingSettings *rawRoutingSettings `json:"routing_settings"`
	StatRequests    []json.RawMessage `json:"stat_requests"`
}

type rawBaseRequest struct {
	Type string `json:"type"`

	// Stop
	Name           string             `json:"name"`
	Latitude       float64            `json:"latitude"`
	Longitude      float64            `json:"longitude"`
	RoadDistances  map[string]int     `json:"road_distances"`

	// Bus
	Stops       []string `json:"stops"`
	IsRoundtrip *bool    `json:"is_roundtrip"`
}

type rawRenderSettings struct {
	Width             float64         `json:"width"`
	Height            float64         `json:"height"`
	Padding           float64         `json:"padding"`
	LineWidth         float64         `json:"line_width"`
	StopRadius        float64         `json:"stop_radius"`
	BusLabelFontSize  int             `json:"bus_label_font_size"`
	BusLabelOffset    [2]float64      `json:"bus_label_offset"`
	StopLabelFontSize int             `json:"stop_label_font_size"`
	StopLabelOffset   [2]float64      `json:"stop_label_offset"`
	UnderlayerColor   json.RawMessage `json:"underlayer_color"`
	UnderlayerWidth   float64         `json:"underlayer_width"`
	ColorPalette      []json.RawMessage `json:"color_palette"`
	FontFamily        string          `json:"font_family"`
}

type rawRoutingSettings struct {
	BusWaitTimeMin int     `json:"bus_wait_time"`
	BusVelocityKMH float64 `json:"bus_velocity"`
}

type rawStatRequest struct {
	ID   int    `json:"id"`
	Type string `json:"type"`
	Name string `json:"name"`
	From string `json:"from"`
	To   string `json:"to"`
}

// Defaults carries fallback render/routing settings, normally sourced
// from a config file, applied before the document's own settings so the
// document's fields always win.
type Defaults struct {
	RenderSettings  *maprender.Settings
	RoutingSettings *domain.RoutingSettings
}

// Process ingests a document, applies settings and answers every stat
// request in order. An ingest-time error (malformed input, duplicate
// stop, unknown stop referenced by a distance or a bus) aborts the whole
// batch with no partial output, per spec.md §7. Query-time errors are
// recorded per response; the batch continues.
func Process(body []byte, defaults ...Defaults) ([]byte, error) {
	var doc raw
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("decode document: %w: %v", ErrMalformedDocument, err)
	}

	cat := catalogue.New()
	if err := ingest(cat, doc.BaseRequests); err != nil {
		return nil, err
	}

	svc := service.New(cat)
	for _, d := range defaults {
		if d.RenderSettings != nil {
			svc.SetRenderSettings(*d.RenderSettings)
		}
		if d.RoutingSettings != nil {
			svc.SetRoutingSettings(*d.RoutingSettings)
		}
	}
	if doc.RenderSettings != nil {
		settings, err := decodeRenderSettings(doc.RenderSettings)
		if err != nil {
			return nil, err
		}
		svc.SetRenderSettings(settings)
	}
	if doc.RoutingSettings != nil {
		if doc.RoutingSettings.BusVelocityKMH <= 0 {
			return nil, fmt.Errorf("routing_settings.bus_velocity %v: %w", doc.RoutingSettings.BusVelocityKMH, ErrMalformedDocument)
		}
		if doc.RoutingSettings.BusWaitTimeMin < 0 {
			return nil, fmt.Errorf("routing_settings.bus_wait_time %v: %w", doc.RoutingSettings.BusWaitTimeMin, ErrMalformedDocument)
		}
		svc.SetRoutingSettings(domain.RoutingSettings{
			BusWaitTimeMin: doc.RoutingSettings.BusWaitTimeMin,
			BusVelocityKMH: doc.RoutingSettings.BusVelocityKMH,
		})
	}

	responses := make([]json.RawMessage, 0, len(doc.StatRequests))
	for _, rawReq := range doc.StatRequests {
		var req rawStatRequest
		if err := json.Unmarshal(rawReq, &req); err != nil {
			return nil, fmt.Errorf("decode stat_requests[%d]: %w: %v", len(responses), ErrMalformedDocument, err)
		}
		resp, err := answer(svc, req)
		if err != nil {
			return nil, err
		}
		responses = append(responses, resp)
	}

	out, err := json.Marshal(responses)
	if err != nil {
		return nil, fmt.Errorf("encode responses: %w", err)
	}
	return out, nil
}

// ingest applies base_requests in the three phases the router and
// statistics derivations depend on: every stop first (so names resolve),
// then every declared road distance, then every bus (so AddBus can
// validate its stop names against a fully populated stop table).
func ingest(cat *catalogue.Catalogue, rawRequests []json.RawMessage) error {
	requests := make([]rawBaseRequest, 0, len(rawRequests))
	for i, rr := range rawRequests {
		var req rawBaseRequest
		if err := json.Unmarshal(rr, &req); err != nil {
			return fmt.Errorf("decode base_requests[%d]: %w: %v", i, ErrMalformedDocument, err)
		}
		if req.Type != "Stop" && req.Type != "Bus" {
			return fmt.Errorf("base_requests[%d]: type %q: %w", i, req.Type, ErrMalformedDocument)
		}
		requests = append(requests, req)
	}

	for _, req := range requests {
		if req.Type != "Stop" {
			continue
		}
		if err := cat.AddStop(req.Name, req.Latitude, req.Longitude); err != nil {
			return fmt.Errorf("ingest stop %q: %w", req.Name, err)
		}
	}
	for _, req := range requests {
		if req.Type != "Stop" {
			continue
		}
		names := make([]string, 0, len(req.RoadDistances))
		for to := range req.RoadDistances {
			names = append(names, to)
		}
		sort.Strings(names)
		for _, to := range names {
			if err := cat.AddDistance(req.Name, to, req.RoadDistances[to]); err != nil {
				return fmt.Errorf("ingest distance %q -> %q: %w", req.Name, to, err)
			}
		}
	}
	for _, req := range requests {
		if req.Type != "Bus" {
			continue
		}
		isRoundtrip := req.IsRoundtrip != nil && *req.IsRoundtrip
		if err := cat.AddBus(req.Name, req.Stops, isRoundtrip); err != nil {
			return fmt.Errorf("ingest bus %q: %w", req.Name, err)
		}
	}
	return nil
}

func decodeRenderSettings(rs *rawRenderSettings) (maprender.Settings, error) {
	underlayer, err := decodeColor(rs.UnderlayerColor)
	if err != nil {
		return maprender.Settings{}, fmt.Errorf("render_settings.underlayer_color: %w", err)
	}
	palette := make([]string, 0, len(rs.ColorPalette))
	for i, c := range rs.ColorPalette {
		color, err := decodeColor(c)
		if err != nil {
			return maprender.Settings{}, fmt.Errorf("render_settings.color_palette[%d]: %w", i, err)
		}
		palette = append(palette, color)
	}
	if len(palette) == 0 {
		palette = maprender.DefaultSettings().ColorPalette
	}

	return maprender.Settings{
		Width:             rs.Width,
		Height:            rs.Height,
		Padding:           rs.Padding,
		LineWidth:         rs.LineWidth,
		StopRadius:        rs.StopRadius,
		BusLabelFontSize:  rs.BusLabelFontSize,
		BusLabelOffset:    svg.Point{X: rs.BusLabelOffset[0], Y: rs.BusLabelOffset[1]},
		StopLabelFontSize: rs.StopLabelFontSize,
		StopLabelOffset:   svg.Point{X: rs.StopLabelOffset[0], Y: rs.StopLabelOffset[1]},
		UnderlayerColor:   underlayer,
		UnderlayerWidth:   rs.UnderlayerWidth,
		ColorPalette:      palette,
		FontFamily:        rs.FontFamily,
	}, nil
}

// decodeColor accepts a bare string, a [r,g,b] array of ints, or a
// [r,g,b,a] array with a real-valued alpha, and formats the array forms
// the way the rendered SVG expects: "rgb(r,g,b)" or "rgba(r,g,b,a)".
func decodeColor(raw json.RawMessage) (string, error) {
	if len(raw) == 0 {
		return "", nil
	}

	var asString string
	if err := json.Unmarshal(raw, &asString); err == nil {
		return asString, nil
	}

	var asNumbers []float64
	if err := json.Unmarshal(raw, &asNumbers); err != nil {
		return "", fmt.Errorf("%w: color must be a string or a 3/4-element array", ErrMalformedDocument)
	}
	switch len(asNumbers) {
	case 3:
		return fmt.Sprintf("rgb(%d,%d,%d)", int(asNumbers[0]), int(asNumbers[1]), int(asNumbers[2])), nil
	case 4:
		return fmt.Sprintf("rgba(%d,%d,%d,%v)", int(asNumbers[0]), int(asNumbers[1]), int(asNumbers[2]), asNumbers[3]), nil
	default:
		return "", fmt.Errorf("%w: color array must have 3 or 4 elements, got %d", ErrMalformedDocument, len(asNumbers))
	}
}

func answer(svc *service.Service, req rawStatRequest) (json.RawMessage, error) {
	switch req.Type {
	case "Bus":
		return answerBus(svc, req)
	case "Stop":
		return answerStop(svc, req)
	case "Map":
		return answerMap(svc, req)
	case "Route":
		return answerRoute(svc, req)
	default:
		return nil, fmt.Errorf("stat_requests: type %q: %w", req.Type, ErrMalformedDocument)
	}
}

func answerBus(svc *service.Service, req rawStatRequest) (json.RawMessage, error) {
	info, ok := svc.GetBusInfo(req.Name)
	if !ok {
		return notFound(req.ID)
	}
	return json.Marshal(struct {
		RequestID       int     `json:"request_id"`
		Curvature       float64 `json:"curvature"`
		RouteLength     int     `json:"route_length"`
		StopCount       int     `json:"stop_count"`
		UniqueStopCount int     `json:"unique_stop_count"`
	}{
		RequestID:       req.ID,
		Curvature:       info.Curvature,
		RouteLength:     int(info.RouteLength),
		StopCount:       info.StopsCount,
		UniqueStopCount: info.UniqueStopsCount,
	})
}

func answerStop(svc *service.Service, req rawStatRequest) (json.RawMessage, error) {
	info, ok := svc.GetStopInfo(req.Name)
	if !ok {
		return notFound(req.ID)
	}
	return json.Marshal(struct {
		RequestID int      `json:"request_id"`
		Buses     []string `json:"buses"`
	}{
		RequestID: req.ID,
		Buses:     info.Buses,
	})
}

func answerMap(svc *service.Service, req rawStatRequest) (json.RawMessage, error) {
	return json.Marshal(struct {
		RequestID int    `json:"request_id"`
		Map       string `json:"map"`
	}{
		RequestID: req.ID,
		Map:       svc.RenderMap(),
	})
}

func answerRoute(svc *service.Service, req rawStatRequest) (json.RawMessage, error) {
	resp, ok, err := svc.FindRoute(req.From, req.To)
	if err != nil {
		if errors.Is(err, service.ErrRouterNotBuildable) {
			return notFound(req.ID)
		}
		return nil, fmt.Errorf("route %q -> %q: %w", req.From, req.To, err)
	}
	if !ok {
		return notFound(req.ID)
	}

	items := make([]json.RawMessage, 0, len(resp.Items))
	for _, item := range resp.Items {
		var encoded json.RawMessage
		var err error
		if item.Type == domain.RouteItemWait {
			encoded, err = json.Marshal(struct {
				Type string  `json:"type"`
				Stop string  `json:"stop_name"`
				Time float64 `json:"time"`
			}{Type: "Wait", Stop: item.Stop, Time: item.Time})
		} else {
			encoded, err = json.Marshal(struct {
				Type      string  `json:"type"`
				Bus       string  `json:"bus"`
				SpanCount int     `json:"span_count"`
				Time      float64 `json:"time"`
			}{Type: "Bus", Bus: item.Bus, SpanCount: item.SpanCount, Time: item.Time})
		}
		if err != nil {
			return nil, fmt.Errorf("encode route item: %w", err)
		}
		items = append(items, encoded)
	}

	return json.Marshal(struct {
		RequestID int               `json:"request_id"`
		TotalTime float64           `json:"total_time"`
		Items     []json.RawMessage `json:"items"`
	}{
		RequestID: req.ID,
		TotalTime: resp.TotalTime,
		Items:     items,
	})
}

func notFound(requestID int) (json.RawMessage, error) {
	return json.Marshal(struct {
		RequestID int    `json:"request_id"`
		Error     string `json:"error_message"`
	}{RequestID: requestID, Error: "not found"})
}
