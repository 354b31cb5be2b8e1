package ops

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/hpungsan/satchel/internal/logging"
	"github.com/hpungsan/satchel/internal/packing"
	"github.com/hpungsan/satchel/internal/weather"
)

// DefaultWeatherTimeout bounds a weather lookup when none is configured.
const DefaultWeatherTimeout = 3 * time.Second

// GenerateDeps are the collaborators of Generate. All are optional.
type GenerateDeps struct {
	Weather        weather.Provider
	WeatherTimeout time.Duration
	Logger         *zap.Logger
}

// GenerateOutput is a generated list and the input it was generated from,
// including any weather that was looked up.
type GenerateOutput struct {
	List  packing.PackingList   `json:"list"`
	Input packing.GenerateInput `json:"input"`
}

// Generate validates the request, fills in weather when the caller gave none,
// and runs the engine. A failed weather lookup never fails the call.
func Generate(ctx context.Context, deps GenerateDeps, req GenerateRequest) (*GenerateOutput, error) {
	in, err := req.Validate()
	if err != nil {
		return nil, err
	}

	if in.Weather == nil && deps.Weather != nil {
		in.Weather = lookupWeather(ctx, deps, in.Basics)
	}

	return &GenerateOutput{
		List:  packing.Generate(in),
		Input: in,
	}, nil
}

func lookupWeather(ctx context.Context, deps GenerateDeps, b packing.TripBasics) *packing.WeatherSummary {
	log := logging.Component(deps.Logger, "generate")

	timeout := deps.WeatherTimeout
	if timeout <= 0 {
		timeout = DefaultWeatherTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	w, err := deps.Weather.Lookup(ctx, b.Destination, b.StartDate, b.EndDate)
	if err != nil {
		log.Warn("weather lookup failed, generating without weather",
			zap.String(logging.KeyDestination, b.Destination), zap.Error(err))
		return nil
	}
	if w == nil {
		log.Debug("no weather available", zap.String(logging.KeyDestination, b.Destination))
	}
	return w
}
