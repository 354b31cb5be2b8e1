package weather

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/hpungsan/satchel/internal/logging"
	"github.com/hpungsan/satchel/internal/packing"
)

const (
	// DefaultOpenWeatherURL is the OpenWeatherMap current-weather endpoint.
	DefaultOpenWeatherURL = "https://api.openweathermap.org/data/2.5/weather"

	maxResponseSize = 1 << 20
	userAgent       = "satchel/1.0"
)

// OpenWeather estimates a trip summary from OpenWeatherMap's current conditions
// at the destination. It has no historical data, so the date range is unused.
type OpenWeather struct {
	APIKey  string
	BaseURL string
	Client  *http.Client

	// Limiter throttles outbound calls; nil means unlimited.
	Limiter *rate.Limiter

	log *zap.Logger
}

// NewOpenWeather creates a client with the given request timeout.
// Outbound calls are limited to one per second with a small burst.
func NewOpenWeather(apiKey string, timeout time.Duration, logger *zap.Logger) *OpenWeather {
	return &OpenWeather{
		APIKey:  apiKey,
		BaseURL: DefaultOpenWeatherURL,
		Client:  &http.Client{Timeout: timeout},
		Limiter: rate.NewLimiter(rate.Every(time.Second), 5),
		log:     logging.Component(logger, "weather"),
	}
}

// Lookup implements Provider. Without an API key, or on a non-200 reply, it
// returns no data rather than an error.
func (o *OpenWeather) Lookup(ctx context.Context, destination string, _, _ packing.Date) (*packing.WeatherSummary, error) {
	if o.APIKey == "" {
		return nil, nil
	}

	if o.Limiter != nil {
		if err := o.Limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("weather rate limit: %w", err)
		}
	}

	q := url.Values{}
	q.Set("q", destination)
	q.Set("appid", o.APIKey)
	q.Set("units", "metric")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, o.BaseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := o.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("network error during weather lookup: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		o.log.Warn("weather service returned error status",
			zap.Int("status", resp.StatusCode),
			zap.String(logging.KeyDestination, destination))
		return nil, nil
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read weather response: %w", err)
	}

	temp := gjson.GetBytes(body, "main.temp")
	condition := gjson.GetBytes(body, "weather.0.main")
	if !temp.Exists() || temp.Type != gjson.Number || condition.String() == "" {
		o.log.Debug("weather response missing temperature or condition",
			zap.String(logging.KeyDestination, destination))
		return nil, nil
	}

	return Estimate(temp.Float(), condition.String()), nil
}
