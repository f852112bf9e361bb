package svg_test

import (
	"encoding/xml"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/l0rsy/cpp-transport-catalogue/internal/svg"
)

func TestEscapeText(t *testing.T) {
	assert.Equal(t, "A&amp;B&lt;C&gt;", svg.EscapeText("A&B<C>"))
	assert.Equal(t, "&quot;&apos;", svg.EscapeText(`"'`))
}

func TestDocumentRendersPrimitivesInInsertionOrder(t *testing.T) {
	doc := svg.NewDocument()
	doc.Add(svg.NewCircle().WithCenter(svg.Point{X: 1, Y: 2}).WithRadius(3).WithFillColor("white"))
	doc.Add(svg.NewPolyline().
		AddPoint(svg.Point{X: 0, Y: 0}).
		AddPoint(svg.Point{X: 1, Y: 1}).
		WithFillColor("none").
		WithStrokeColor("red").
		WithStrokeWidth(14).
		WithStrokeLineCap(svg.StrokeLineCapRound).
		WithStrokeLineJoin(svg.StrokeLineJoinRound))
	doc.Add(svg.NewText().
		WithPosition(svg.Point{X: 5, Y: 5}).
		WithOffset(svg.Point{X: 7, Y: 15}).
		WithFontSize(20).
		WithData("Bus & Co"))

	out := doc.String()

	circleIdx := indexOf(out, "<circle")
	polylineIdx := indexOf(out, "<polyline")
	textIdx := indexOf(out, "<text")
	require.True(t, circleIdx >= 0 && polylineIdx >= 0 && textIdx >= 0)
	assert.Less(t, circleIdx, polylineIdx)
	assert.Less(t, polylineIdx, textIdx)
	assert.Contains(t, out, "Bus &amp; Co")
}

func TestDocumentWellFormedXML(t *testing.T) {
	doc := svg.NewDocument()
	doc.Add(svg.NewCircle().WithCenter(svg.Point{X: 1, Y: 2}).WithRadius(3).WithFillColor("white"))
	doc.Add(svg.NewText().WithPosition(svg.Point{X: 0, Y: 0}).WithData("hi"))

	out := doc.String()

	var root struct {
		XMLName xml.Name `xml:"svg"`
		Circles []struct{} `xml:"circle"`
		Texts   []struct{} `xml:"text"`
	}
	require.NoError(t, xml.Unmarshal([]byte(stripDecl(out)), &root))
	assert.Len(t, root.Circles, 1)
	assert.Len(t, root.Texts, 1)
}

func indexOf(s, substr string) int {
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			return i
		}
	}
	return -1
}

func stripDecl(s string) string {
	i := indexOf(s, "<svg")
	if i < 0 {
		return s
	}
	return s[i:]
}
