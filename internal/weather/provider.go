// Package weather looks up an optional forecast summary for a trip.
//
// Lookups are best effort: callers treat any error or nil summary as
// "no weather" and carry on.
package weather

import (
	"context"
	"math"
	"strings"

	"github.com/hpungsan/satchel/internal/packing"
)

// Provider returns a weather summary for a destination and date range.
// A nil summary with a nil error means no data is available.
type Provider interface {
	Lookup(ctx context.Context, destination string, start, end packing.Date) (*packing.WeatherSummary, error)
}

// ProviderFunc adapts a function to Provider.
type ProviderFunc func(ctx context.Context, destination string, start, end packing.Date) (*packing.WeatherSummary, error)

// Lookup calls f.
func (f ProviderFunc) Lookup(ctx context.Context, destination string, start, end packing.Date) (*packing.WeatherSummary, error) {
	return f(ctx, destination, start, end)
}

// Estimate turns a single current temperature and condition into a trip summary:
// high and low are the temperature ±5°C, and rain is likely (0.6) when the
// condition mentions rain or drizzle, else 0.2.
func Estimate(tempC float64, condition string) *packing.WeatherSummary {
	high := roundHalfUp(tempC + 5)
	low := roundHalfUp(tempC - 5)
	rain := 0.2
	c := strings.ToLower(condition)
	if strings.Contains(c, "rain") || strings.Contains(c, "drizzle") {
		rain = 0.6
	}
	return &packing.WeatherSummary{
		AvgHighC:   &high,
		AvgLowC:    &low,
		RainChance: &rain,
	}
}

// roundHalfUp rounds .5 toward positive infinity, so -2.5 becomes -2.
func roundHalfUp(f float64) float64 {
	return math.Floor(f + 0.5)
}
