// Package config loads an optional YAML file of default render and
// routing settings. A document's own render_settings/routing_settings
// always take precedence; this only fills in what the document omits.
// Grounded on theoremus-urban-solutions-gtfsrt-to-siri's YAML config
// loader, the one config-file reader in the retrieval pack.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/l0rsy/cpp-transport-catalogue/internal/document"
	"github.com/l0rsy/cpp-transport-catalogue/internal/domain"
	"github.com/l0rsy/cpp-transport-catalogue/internal/maprender"
	"github.com/l0rsy/cpp-transport-catalogue/internal/svg"
)

// File is the on-disk shape of the config file. Every field is optional;
// a nil RenderSettings or RoutingSettings means "no default".
type File struct {
	RenderSettings  *RenderSettings  `yaml:"render_settings"`
	RoutingSettings *RoutingSettings `yaml:"routing_settings"`
}

// RenderSettings mirrors maprender.Settings field-for-field, in YAML.
type RenderSettings struct {
	Width             float64    `yaml:"width"`
	Height            float64    `yaml:"height"`
	Padding           float64    `yaml:"padding"`
	LineWidth         float64    `yaml:"line_width"`
	StopRadius        float64    `yaml:"stop_radius"`
	BusLabelFontSize  int        `yaml:"bus_label_font_size"`
	BusLabelOffset    [2]float64 `yaml:"bus_label_offset"`
	StopLabelFontSize int        `yaml:"stop_label_font_size"`
	StopLabelOffset   [2]float64 `yaml:"stop_label_offset"`
	UnderlayerColor   string     `yaml:"underlayer_color"`
	UnderlayerWidth   float64    `yaml:"underlayer_width"`
	ColorPalette      []string   `yaml:"color_palette"`
	FontFamily        string     `yaml:"font_family"`
}

// RoutingSettings mirrors domain.RoutingSettings, in YAML.
type RoutingSettings struct {
	BusWaitTimeMin int     `yaml:"bus_wait_time"`
	BusVelocityKMH float64 `yaml:"bus_velocity"`
}

// Load reads and parses a config file. A missing path is not an error —
// it returns an empty File, i.e. no defaults — but a path that exists
// and fails to parse is.
func Load(path string) (File, error) {
	if path == "" {
		return File{}, nil
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return File{}, nil
	}
	if err != nil {
		return File{}, fmt.Errorf("read config %q: %w", path, err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return File{}, fmt.Errorf("parse config %q: %w", path, err)
	}
	return f, nil
}

// Defaults converts the loaded file into the document package's fallback
// shape, ready to pass to document.Process.
func (f File) Defaults() document.Defaults {
	var d document.Defaults
	if f.RenderSettings != nil {
		rs := f.RenderSettings
		settings := maprender.Settings{
			Width:             rs.Width,
			Height:            rs.Height,
			Padding:           rs.Padding,
			LineWidth:         rs.LineWidth,
			StopRadius:        rs.StopRadius,
			BusLabelFontSize:  rs.BusLabelFontSize,
			BusLabelOffset:    svg.Point{X: rs.BusLabelOffset[0], Y: rs.BusLabelOffset[1]},
			StopLabelFontSize: rs.StopLabelFontSize,
			StopLabelOffset:   svg.Point{X: rs.StopLabelOffset[0], Y: rs.StopLabelOffset[1]},
			UnderlayerColor:   rs.UnderlayerColor,
			UnderlayerWidth:   rs.UnderlayerWidth,
			ColorPalette:      rs.ColorPalette,
			FontFamily:        rs.FontFamily,
		}
		d.RenderSettings = &settings
	}
	if f.RoutingSettings != nil {
		settings := domain.RoutingSettings{
			BusWaitTimeMin: f.RoutingSettings.BusWaitTimeMin,
			BusVelocityKMH: f.RoutingSettings.BusVelocityKMH,
		}
		d.RoutingSettings = &settings
	}
	return d
}
