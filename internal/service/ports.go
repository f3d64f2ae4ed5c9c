package service

// ports.go — capability interfaces for the external collaborators consumed by
// the weather, ranking and insight flows. Concrete implementations live in
// internal/infra; tests substitute fakes.

import (
	"context"

	"github.com/sankalp-nadiger/Auditryx/internal/dto"
)

// Geocoder resolves a place name to coordinates.
type Geocoder interface {
	Resolve(ctx context.Context, place string) (lat, lon float64, err error)
}

// WeatherProvider serves current and historical conditions for a coordinate.
type WeatherProvider interface {
	Current(ctx context.Context, lat, lon float64) (*dto.CurrentConditions, error)
	History(ctx context.Context, lat, lon float64, days int) ([]dto.DailyConditions, error)
}

// Advisor produces free-text assessments. The response carries no guaranteed
// schema — callers must tolerate arbitrary text.
type Advisor interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// ReferenceSource supplies the static compliance snapshot embedded in
// ranking prompts.
type ReferenceSource interface {
	Snapshot() (string, error)
}
