// Package maprender projects catalogue geography onto a canvas and
// composes a layered SVG document from it: route polylines, route labels,
// stop points, then stop labels, each layer fully emitted before the next.
package maprender

import (
	"sort"

	"github.com/samber/lo"

	"github.com/l0rsy/cpp-transport-catalogue/internal/domain"
	"github.com/l0rsy/cpp-transport-catalogue/internal/svg"
)

// Settings configures the rendered map, see spec.md §4.4.
type Settings struct {
	Width              float64
	Height             float64
	Padding            float64
	LineWidth          float64
	StopRadius         float64
	BusLabelFontSize   int
	BusLabelOffset     svg.Point
	StopLabelFontSize  int
	StopLabelOffset    svg.Point
	UnderlayerColor    string
	UnderlayerWidth    float64
	ColorPalette       []string
	FontFamily         string
}

// DefaultSettings mirrors the teacher-of-the-original's built-in defaults,
// used when the document supplies no render_settings at all.
func DefaultSettings() Settings {
	return Settings{
		Width:             1200,
		Height:            1200,
		Padding:           50,
		LineWidth:         14,
		StopRadius:        5,
		BusLabelFontSize:  20,
		BusLabelOffset:    svg.Point{X: 7, Y: 15},
		StopLabelFontSize: 20,
		StopLabelOffset:   svg.Point{X: 7, Y: -3},
		UnderlayerColor:   "white",
		UnderlayerWidth:   3,
		ColorPalette:      []string{"black"},
		FontFamily:        "Verdana",
	}
}

// CatalogueView is the slice of the catalogue the renderer needs, kept
// narrow so this package never has to import catalogue directly.
type CatalogueView interface {
	AllBusesSortedByName() []domain.Bus
	StopsUsedInRoutes() []domain.Stop
	StopByID(domain.StopID) domain.Stop
}

// Renderer turns catalogue contents into a scene graph under a fixed
// Settings value.
type Renderer struct {
	settings Settings
}

// New returns a renderer configured with settings.
func New(settings Settings) *Renderer {
	if settings.FontFamily == "" {
		settings.FontFamily = "Verdana"
	}
	return &Renderer{settings: settings}
}

// RenderMap builds the full layered SVG document for the given catalogue.
func (r *Renderer) RenderMap(c CatalogueView) *svg.Document {
	buses := c.AllBusesSortedByName()
	stops := sortedByName(c.StopsUsedInRoutes())

	points := lo.Map(stops, func(s domain.Stop, _ int) domain.Coordinates { return s.Coordinates })
	projector := NewSphereProjector(points, r.settings.Width, r.settings.Height, r.settings.Padding)

	doc := svg.NewDocument()
	renderable := renderableBuses(buses)

	r.renderRouteLines(doc, renderable, c, projector)
	r.renderRouteLabels(doc, renderable, c, projector)
	r.renderStopPoints(doc, stops, projector)
	r.renderStopLabels(doc, stops, projector)
	return doc
}

// renderableBuses drops routes with fewer than 2 stops — these never
// consume a color-palette slot either.
func renderableBuses(buses []domain.Bus) []domain.Bus {
	return lo.Filter(buses, func(b domain.Bus, _ int) bool { return len(b.Stops) >= 2 })
}

func (r *Renderer) colorFor(i int) string {
	palette := r.settings.ColorPalette
	return palette[i%len(palette)]
}

func (r *Renderer) renderRouteLines(doc *svg.Document, buses []domain.Bus, c CatalogueView, proj SphereProjector) {
	for i, bus := range buses {
		color := r.colorFor(i)
		line := svg.NewPolyline().
			WithFillColor("none").
			WithStrokeColor(color).
			WithStrokeWidth(r.settings.LineWidth).
			WithStrokeLineCap(svg.StrokeLineCapRound).
			WithStrokeLineJoin(svg.StrokeLineJoinRound)

		for _, sid := range routePath(bus) {
			line.AddPoint(proj.Project(c.StopByID(sid).Coordinates))
		}
		doc.Add(line)
	}
}

// routePath returns the full plotted trajectory: as-is for round-trip
// routes, outbound-then-reverse-without-repeating-the-turnaround for
// non-round-trip routes.
func routePath(bus domain.Bus) []domain.StopID {
	if bus.IsRoundtrip || len(bus.Stops) == 0 {
		return bus.Stops
	}
	out := make([]domain.StopID, len(bus.Stops))
	copy(out, bus.Stops)
	for i := len(bus.Stops) - 2; i >= 0; i-- {
		out = append(out, bus.Stops[i])
	}
	return out
}

func (r *Renderer) renderRouteLabels(doc *svg.Document, buses []domain.Bus, c CatalogueView, proj SphereProjector) {
	for i, bus := range buses {
		color := r.colorFor(i)
		for _, sid := range terminals(bus) {
			point := proj.Project(c.StopByID(sid).Coordinates)
			doc.Add(r.labelUnderlayer(point, r.settings.BusLabelOffset, r.settings.BusLabelFontSize, bus.Name, true))
			doc.Add(svg.NewText().
				WithPosition(point).
				WithOffset(r.settings.BusLabelOffset).
				WithFontSize(r.settings.BusLabelFontSize).
				WithFontFamily(r.settings.FontFamily).
				WithFontWeight("bold").
				WithData(bus.Name).
				WithFillColor(color))
		}
	}
}

// terminals returns the stop(s) that get a route label: just the start for
// a round trip, or the start and (if distinct) the end for a one-way route.
func terminals(bus domain.Bus) []domain.StopID {
	if len(bus.Stops) == 0 {
		return nil
	}
	if bus.IsRoundtrip {
		return []domain.StopID{bus.Stops[0]}
	}
	first, last := bus.Stops[0], bus.Stops[len(bus.Stops)-1]
	if first == last {
		return []domain.StopID{first}
	}
	return []domain.StopID{first, last}
}

func (r *Renderer) renderStopPoints(doc *svg.Document, stops []domain.Stop, proj SphereProjector) {
	for _, stop := range stops {
		doc.Add(svg.NewCircle().
			WithCenter(proj.Project(stop.Coordinates)).
			WithRadius(r.settings.StopRadius).
			WithFillColor("white"))
	}
}

func (r *Renderer) renderStopLabels(doc *svg.Document, stops []domain.Stop, proj SphereProjector) {
	for _, stop := range stops {
		point := proj.Project(stop.Coordinates)
		doc.Add(r.labelUnderlayer(point, r.settings.StopLabelOffset, r.settings.StopLabelFontSize, stop.Name, false))
		doc.Add(svg.NewText().
			WithPosition(point).
			WithOffset(r.settings.StopLabelOffset).
			WithFontSize(r.settings.StopLabelFontSize).
			WithFontFamily(r.settings.FontFamily).
			WithData(stop.Name).
			WithFillColor("black"))
	}
}

func (r *Renderer) labelUnderlayer(point, offset svg.Point, fontSize int, data string, bold bool) *svg.Text {
	t := svg.NewText().
		WithPosition(point).
		WithOffset(offset).
		WithFontSize(fontSize).
		WithFontFamily(r.settings.FontFamily).
		WithData(data).
		WithFillColor(r.settings.UnderlayerColor).
		WithStrokeColor(r.settings.UnderlayerColor).
		WithStrokeWidth(r.settings.UnderlayerWidth).
		WithStrokeLineCap(svg.StrokeLineCapRound).
		WithStrokeLineJoin(svg.StrokeLineJoinRound)
	if bold {
		t.WithFontWeight("bold")
	}
	return t
}

func sortedByName(stops []domain.Stop) []domain.Stop {
	out := make([]domain.Stop, len(stops))
	copy(out, stops)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
