// Package places suggests trip destinations as the user types.
//
// A Service owns one lazily created Backend. When the backend is missing or
// failing, suggestions come from a built-in list of well-known cities.
package places

import (
	"context"
	"errors"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/hpungsan/satchel/internal/logging"
)

// FallbackPrefix marks ids produced by the offline city list.
const FallbackPrefix = "fallback-"

// ErrNoBackend is returned by a Service created without a Loader.
var ErrNoBackend = errors.New("places: no backend configured")

// Suggestion is one autocomplete candidate.
type Suggestion struct {
	ID          string   `json:"id"`
	Description string   `json:"description"`
	PlaceID     string   `json:"placeId"`
	Types       []string `json:"types"`
}

// LatLng is a geographic coordinate.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// PlaceDetails describes a resolved place.
type PlaceDetails struct {
	PlaceID          string  `json:"placeId"`
	FormattedAddress string  `json:"formattedAddress"`
	City             string  `json:"city"`
	Country          string  `json:"country"`
	Coordinates      *LatLng `json:"coordinates,omitempty"`
}

// Backend is a remote place search service.
//
// Autocomplete returns an empty slice and nil error when the service reports
// no matches; any other non-success outcome is an error.
type Backend interface {
	Autocomplete(ctx context.Context, input string) ([]Suggestion, error)
	Details(ctx context.Context, placeID string) (*PlaceDetails, error)
}

// Loader creates a Backend. It runs at most once per Service.
type Loader func(ctx context.Context) (Backend, error)

// Service serves suggestions through a lazily loaded Backend.
type Service struct {
	load Loader
	log  *zap.Logger

	once    sync.Once
	backend Backend
	err     error
}

// NewService creates a Service. The loader is not called until the first lookup.
func NewService(load Loader, logger *zap.Logger) *Service {
	return &Service{load: load, log: logging.Component(logger, "places")}
}

// backendFor loads the backend on first use. Concurrent callers wait for the
// same load, and a load error is returned to every later caller.
func (s *Service) backendFor(ctx context.Context) (Backend, error) {
	s.once.Do(func() {
		if s.load == nil {
			s.err = ErrNoBackend
			return
		}
		// Loading outlives the first caller's cancellation.
		s.backend, s.err = s.load(context.WithoutCancel(ctx))
		if s.err == nil && s.backend == nil {
			s.err = ErrNoBackend
		}
		if s.err != nil {
			s.log.Warn("places backend unavailable, using fallback", zap.Error(s.err))
		}
	})
	return s.backend, s.err
}

// Suggest returns destination suggestions for input. Blank input yields none.
// Backend failures fall back to the built-in city list; a backend answer of
// zero results is returned as is.
func (s *Service) Suggest(ctx context.Context, input string) []Suggestion {
	if strings.TrimSpace(input) == "" {
		return []Suggestion{}
	}

	backend, err := s.backendFor(ctx)
	if err != nil {
		return Fallback(input)
	}

	suggestions, err := backend.Autocomplete(ctx, input)
	if err != nil {
		s.log.Warn("places autocomplete failed, using fallback", zap.Error(err))
		return Fallback(input)
	}
	if suggestions == nil {
		return []Suggestion{}
	}
	return suggestions
}

// Details resolves a place id, or returns nil when it cannot be resolved.
func (s *Service) Details(ctx context.Context, placeID string) *PlaceDetails {
	if placeID == "" || IsFallbackID(placeID) {
		return nil
	}

	backend, err := s.backendFor(ctx)
	if err != nil {
		return nil
	}

	details, err := backend.Details(ctx, placeID)
	if err != nil {
		s.log.Warn("places details failed", zap.String("place_id", placeID), zap.Error(err))
		return nil
	}
	return details
}
