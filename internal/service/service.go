// Package service is the request handler that sits above the catalogue:
// it owns the lazily-built router and the active render settings, and
// answers the four stat_requests kinds. Grounded on
// original_source/transport-catalogue/request_handler.h — the same thin
// composition layer, translated from a reference-holding C++ class to a
// Go struct holding a pointer.
package service

import (
	"errors"
	"fmt"

	"github.com/l0rsy/cpp-transport-catalogue/internal/catalogue"
	"github.com/l0rsy/cpp-transport-catalogue/internal/domain"
	"github.com/l0rsy/cpp-transport-catalogue/internal/maprender"
	"github.com/l0rsy/cpp-transport-catalogue/internal/router"
)

// ErrRouterNotBuildable is returned when a Route query arrives but no
// routing settings were ever supplied — spec.md §7's RouterNotBuildable,
// surfaced to the document layer as a plain "not found".
var ErrRouterNotBuildable = errors.New("router not buildable: no routing settings")

// Service composes a catalogue with render/routing settings and a cached
// router. It is the only thing in this repo that knows the router needs
// lazy building and invalidation on settings change.
type Service struct {
	catalogue      *catalogue.Catalogue
	renderSettings maprender.Settings

	routingSettings    domain.RoutingSettings
	hasRoutingSettings bool
	cachedRouter       *router.Router
}

// New wraps a populated catalogue. Render settings default to the
// original project's built-in defaults until SetRenderSettings is called.
func New(cat *catalogue.Catalogue) *Service {
	return &Service{
		catalogue:      cat,
		renderSettings: maprender.DefaultSettings(),
	}
}

// SetRenderSettings replaces the active render settings.
func (s *Service) SetRenderSettings(settings maprender.Settings) {
	s.renderSettings = settings
}

// SetRoutingSettings replaces the active routing settings and invalidates
// any cached router, per spec.md §9: "mutating routing settings clears
// [router_built]".
func (s *Service) SetRoutingSettings(settings domain.RoutingSettings) {
	s.routingSettings = settings
	s.hasRoutingSettings = true
	s.cachedRouter = nil
}

// GetBusInfo passes through to the catalogue.
func (s *Service) GetBusInfo(name string) (domain.BusInfo, bool) {
	return s.catalogue.GetBusInfo(name)
}

// GetStopInfo passes through to the catalogue.
func (s *Service) GetStopInfo(name string) (domain.StopInfo, bool) {
	return s.catalogue.GetStopInfo(name)
}

// RenderMap renders the current catalogue under the active render
// settings.
func (s *Service) RenderMap() string {
	return maprender.New(s.renderSettings).RenderMap(s.catalogue).String()
}

// FindRoute lazily builds the router on first call and reuses it until
// the routing settings change.
func (s *Service) FindRoute(from, to string) (domain.RouteResponse, bool, error) {
	r, err := s.ensureRouter()
	if err != nil {
		return domain.RouteResponse{}, false, err
	}
	resp, ok := r.FindRoute(from, to)
	return resp, ok, nil
}

func (s *Service) ensureRouter() (*router.Router, error) {
	if !s.hasRoutingSettings {
		return nil, ErrRouterNotBuildable
	}
	if s.cachedRouter != nil {
		return s.cachedRouter, nil
	}
	r, err := router.New(s.catalogue, s.routingSettings)
	if err != nil {
		return nil, fmt.Errorf("build router: %w", err)
	}
	s.cachedRouter = r
	return r, nil
}
