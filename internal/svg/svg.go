// Package svg is a small scene graph of styled primitives (circle,
// polyline, text) that serializes to an SVG document. Primitives are kept
// in painter's order: earlier ones lie beneath later ones.
package svg

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Point is a position in the SVG canvas's coordinate space.
type Point struct {
	X, Y float64
}

// StrokeLineCap is the shape used at the ends of open subpaths.
type StrokeLineCap string

const (
	StrokeLineCapButt   StrokeLineCap = "butt"
	StrokeLineCapRound  StrokeLineCap = "round"
	StrokeLineCapSquare StrokeLineCap = "square"
)

// StrokeLineJoin is the shape used at corners of a path.
type StrokeLineJoin string

const (
	StrokeLineJoinArcs      StrokeLineJoin = "arcs"
	StrokeLineJoinBevel     StrokeLineJoin = "bevel"
	StrokeLineJoinMiter     StrokeLineJoin = "miter"
	StrokeLineJoinMiterClip StrokeLineJoin = "miter-clip"
	StrokeLineJoinRound     StrokeLineJoin = "round"
)

// style holds the attributes shared by every primitive. Colors are stored
// pre-formatted ("red", "rgb(r,g,b)", "rgba(r,g,b,a)") and emitted
// verbatim, per spec.
type style struct {
	fill        string
	stroke      string
	strokeWidth float64
	hasWidth    bool
	lineCap     StrokeLineCap
	lineJoin    StrokeLineJoin
}

func (s style) render(w io.Writer) {
	if s.fill != "" {
		fmt.Fprintf(w, " fill=\"%s\"", s.fill)
	}
	if s.stroke != "" {
		fmt.Fprintf(w, " stroke=\"%s\"", s.stroke)
	}
	if s.hasWidth {
		fmt.Fprintf(w, " stroke-width=\"%s\"", formatNumber(s.strokeWidth))
	}
	if s.lineCap != "" {
		fmt.Fprintf(w, " stroke-linecap=\"%s\"", s.lineCap)
	}
	if s.lineJoin != "" {
		fmt.Fprintf(w, " stroke-linejoin=\"%s\"", s.lineJoin)
	}
}

// element is any renderable scene-graph primitive.
type element interface {
	render(w io.Writer)
}

// formatNumber renders a float the way the C++ original's iostream
// formatting does: no trailing zeros, '.' as decimal point (the C locale).
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// EscapeText applies the five XML entity substitutions spec.md §4.3
// requires, in that order.
func EscapeText(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString("&quot;")
		case '\'':
			b.WriteString("&apos;")
		case '<':
			b.WriteString("&lt;")
		case '>':
			b.WriteString("&gt;")
		case '&':
			b.WriteString("&amp;")
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Circle is a filled/stroked circle primitive.
type Circle struct {
	style
	center Point
	radius float64
}

func NewCircle() *Circle { return &Circle{} }

func (c *Circle) WithCenter(p Point) *Circle              { c.center = p; return c }
func (c *Circle) WithRadius(r float64) *Circle            { c.radius = r; return c }
func (c *Circle) WithFillColor(color string) *Circle      { c.fill = color; return c }
func (c *Circle) WithStrokeColor(color string) *Circle    { c.stroke = color; return c }
func (c *Circle) WithStrokeWidth(w float64) *Circle       { c.strokeWidth, c.hasWidth = w, true; return c }
func (c *Circle) WithStrokeLineCap(v StrokeLineCap) *Circle   { c.lineCap = v; return c }
func (c *Circle) WithStrokeLineJoin(v StrokeLineJoin) *Circle { c.lineJoin = v; return c }

func (c *Circle) render(w io.Writer) {
	fmt.Fprintf(w, "<circle cx=\"%s\" cy=\"%s\" r=\"%s\"",
		formatNumber(c.center.X), formatNumber(c.center.Y), formatNumber(c.radius))
	c.style.render(w)
	fmt.Fprint(w, "/>")
}

// Polyline is an ordered sequence of points rendered as a connected path.
type Polyline struct {
	style
	points []Point
}

func NewPolyline() *Polyline { return &Polyline{} }

func (p *Polyline) AddPoint(pt Point) *Polyline                   { p.points = append(p.points, pt); return p }
func (p *Polyline) WithFillColor(color string) *Polyline          { p.fill = color; return p }
func (p *Polyline) WithStrokeColor(color string) *Polyline        { p.stroke = color; return p }
func (p *Polyline) WithStrokeWidth(w float64) *Polyline           { p.strokeWidth, p.hasWidth = w, true; return p }
func (p *Polyline) WithStrokeLineCap(v StrokeLineCap) *Polyline   { p.lineCap = v; return p }
func (p *Polyline) WithStrokeLineJoin(v StrokeLineJoin) *Polyline { p.lineJoin = v; return p }

func (p *Polyline) render(w io.Writer) {
	fmt.Fprint(w, "<polyline points=\"")
	for i, pt := range p.points {
		if i > 0 {
			fmt.Fprint(w, " ")
		}
		fmt.Fprintf(w, "%s,%s", formatNumber(pt.X), formatNumber(pt.Y))
	}
	fmt.Fprint(w, "\"")
	p.style.render(w)
	fmt.Fprint(w, "/>")
}

// Text is a single line of labeled text with a position and pixel offset.
type Text struct {
	style
	position   Point
	offset     Point
	fontSize   int
	fontFamily string
	fontWeight string
	data       string
}

func NewText() *Text { return &Text{} }

func (t *Text) WithPosition(p Point) *Text            { t.position = p; return t }
func (t *Text) WithOffset(p Point) *Text              { t.offset = p; return t }
func (t *Text) WithFontSize(size int) *Text           { t.fontSize = size; return t }
func (t *Text) WithFontFamily(name string) *Text      { t.fontFamily = name; return t }
func (t *Text) WithFontWeight(weight string) *Text    { t.fontWeight = weight; return t }
func (t *Text) WithData(data string) *Text            { t.data = data; return t }
func (t *Text) WithFillColor(color string) *Text      { t.fill = color; return t }
func (t *Text) WithStrokeColor(color string) *Text    { t.stroke = color; return t }
func (t *Text) WithStrokeWidth(w float64) *Text       { t.strokeWidth, t.hasWidth = w, true; return t }
func (t *Text) WithStrokeLineCap(v StrokeLineCap) *Text   { t.lineCap = v; return t }
func (t *Text) WithStrokeLineJoin(v StrokeLineJoin) *Text { t.lineJoin = v; return t }

func (t *Text) render(w io.Writer) {
	fmt.Fprint(w, "<text")
	t.style.render(w)
	fmt.Fprintf(w, " x=\"%s\" y=\"%s\" dx=\"%s\" dy=\"%s\" font-size=\"%d\"",
		formatNumber(t.position.X), formatNumber(t.position.Y),
		formatNumber(t.offset.X), formatNumber(t.offset.Y), t.fontSize)
	if t.fontFamily != "" {
		fmt.Fprintf(w, " font-family=\"%s\"", t.fontFamily)
	}
	if t.fontWeight != "" {
		fmt.Fprintf(w, " font-weight=\"%s\"", t.fontWeight)
	}
	fmt.Fprintf(w, ">%s</text>", EscapeText(t.data))
}

// Document is an ordered collection of primitives, rendered as one SVG
// document. It owns its elements; once rendered it's dropped.
type Document struct {
	elements []element
}

// NewDocument returns an empty document.
func NewDocument() *Document {
	return &Document{}
}

// Add appends a primitive. Primitives added earlier are painted first.
func (d *Document) Add(e element) {
	d.elements = append(d.elements, e)
}

// Render writes the XML declaration, the <svg> root, one line per
// primitive in insertion order, then the closing tag.
func (d *Document) Render(w io.Writer) {
	fmt.Fprint(w, `<?xml version="1.0" encoding="UTF-8" ?>`+"\n")
	fmt.Fprint(w, `<svg xmlns="http://www.w3.org/2000/svg" version="1.1">`+"\n")
	for _, e := range d.elements {
		e.render(w)
		fmt.Fprint(w, "\n")
	}
	fmt.Fprint(w, "</svg>")
}

// String renders the document to a string.
func (d *Document) String() string {
	var b strings.Builder
	d.Render(&b)
	return b.String()
}
