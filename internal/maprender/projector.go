package maprender

import (
	"math"

	"github.com/l0rsy/cpp-transport-catalogue/internal/domain"
	"github.com/l0rsy/cpp-transport-catalogue/internal/svg"
)

const epsilon = 1e-6

func isZero(v float64) bool {
	return math.Abs(v) < epsilon
}

// SphereProjector maps geographic coordinates onto a W×H canvas with the
// given padding, preserving aspect ratio by picking the smaller of the
// width- and height-derived zoom factors. Latitude is inverted so north
// renders up.
type SphereProjector struct {
	padding  float64
	minLon   float64
	maxLat   float64
	zoom     float64
}

// NewSphereProjector fits the given points into a W×H canvas. An empty
// points slice yields a degenerate projector with zero zoom, which maps
// every coordinate to (padding, padding).
func NewSphereProjector(points []domain.Coordinates, width, height, padding float64) SphereProjector {
	if len(points) == 0 {
		return SphereProjector{padding: padding}
	}

	minLon, maxLon := points[0].Lon, points[0].Lon
	minLat, maxLat := points[0].Lat, points[0].Lat
	for _, p := range points[1:] {
		minLon = math.Min(minLon, p.Lon)
		maxLon = math.Max(maxLon, p.Lon)
		minLat = math.Min(minLat, p.Lat)
		maxLat = math.Max(maxLat, p.Lat)
	}

	var widthZoom, heightZoom float64
	var haveWidthZoom, haveHeightZoom bool
	if !isZero(maxLon - minLon) {
		widthZoom = (width - 2*padding) / (maxLon - minLon)
		haveWidthZoom = true
	}
	if !isZero(maxLat - minLat) {
		heightZoom = (height - 2*padding) / (maxLat - minLat)
		haveHeightZoom = true
	}

	var zoom float64
	switch {
	case haveWidthZoom && haveHeightZoom:
		zoom = math.Min(widthZoom, heightZoom)
	case haveWidthZoom:
		zoom = widthZoom
	case haveHeightZoom:
		zoom = heightZoom
	default:
		zoom = 0
	}

	return SphereProjector{padding: padding, minLon: minLon, maxLat: maxLat, zoom: zoom}
}

// Project converts a geographic coordinate into canvas space.
func (p SphereProjector) Project(c domain.Coordinates) svg.Point {
	return svg.Point{
		X: (c.Lon-p.minLon)*p.zoom + p.padding,
		Y: (p.maxLat-c.Lat)*p.zoom + p.padding,
	}
}
