package places

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"slices"
	"time"

	"github.com/tidwall/gjson"
)

// DefaultGoogleURL is the Places web service root.
const DefaultGoogleURL = "https://maps.googleapis.com/maps/api/place"

const maxResponseSize = 1 << 20

// ErrNoAPIKey is returned by GoogleLoader when no key is configured.
var ErrNoAPIKey = errors.New("places: GOOGLE_PLACES_API_KEY not set")

// GoogleBackend queries the Google Places web service.
type GoogleBackend struct {
	APIKey  string
	BaseURL string
	Client  *http.Client
}

// GoogleLoader returns a Loader for a GoogleBackend. A nil client gets a 5s timeout.
func GoogleLoader(apiKey string, client *http.Client) Loader {
	return func(ctx context.Context) (Backend, error) {
		if apiKey == "" {
			return nil, ErrNoAPIKey
		}
		if client == nil {
			client = &http.Client{Timeout: 5 * time.Second}
		}
		return &GoogleBackend{APIKey: apiKey, BaseURL: DefaultGoogleURL, Client: client}, nil
	}
}

// Autocomplete implements Backend. Results are restricted to cities.
func (g *GoogleBackend) Autocomplete(ctx context.Context, input string) ([]Suggestion, error) {
	q := url.Values{}
	q.Set("input", input)
	q.Set("types", "(cities)")

	body, err := g.get(ctx, "/autocomplete/json", q)
	if err != nil {
		return nil, err
	}

	switch status := gjson.GetBytes(body, "status").String(); status {
	case "OK":
	case "ZERO_RESULTS":
		return []Suggestion{}, nil
	default:
		return nil, fmt.Errorf("places autocomplete status %q", status)
	}

	predictions := gjson.GetBytes(body, "predictions").Array()
	out := make([]Suggestion, 0, len(predictions))
	for _, p := range predictions {
		id := p.Get("place_id").String()
		types := []string{}
		for _, t := range p.Get("types").Array() {
			types = append(types, t.String())
		}
		out = append(out, Suggestion{
			ID:          id,
			Description: p.Get("description").String(),
			PlaceID:     id,
			Types:       types,
		})
	}
	return out, nil
}

// Details implements Backend. City is the first locality or first-level
// administrative area component.
func (g *GoogleBackend) Details(ctx context.Context, placeID string) (*PlaceDetails, error) {
	q := url.Values{}
	q.Set("place_id", placeID)
	q.Set("fields", "formatted_address,address_components,geometry")

	body, err := g.get(ctx, "/details/json", q)
	if err != nil {
		return nil, err
	}

	if status := gjson.GetBytes(body, "status").String(); status != "OK" {
		return nil, fmt.Errorf("places details status %q", status)
	}

	result := gjson.GetBytes(body, "result")
	details := &PlaceDetails{
		PlaceID:          placeID,
		FormattedAddress: result.Get("formatted_address").String(),
	}

	components := result.Get("address_components").Array()
	details.City = componentName(components, "locality", "administrative_area_level_1")
	details.Country = componentName(components, "country")

	loc := result.Get("geometry.location")
	if loc.Get("lat").Exists() && loc.Get("lng").Exists() {
		details.Coordinates = &LatLng{Lat: loc.Get("lat").Float(), Lng: loc.Get("lng").Float()}
	}
	return details, nil
}

func componentName(components []gjson.Result, types ...string) string {
	for _, c := range components {
		for _, t := range c.Get("types").Array() {
			if slices.Contains(types, t.String()) {
				return c.Get("long_name").String()
			}
		}
	}
	return ""
}

func (g *GoogleBackend) get(ctx context.Context, path string, q url.Values) ([]byte, error) {
	q.Set("key", g.APIKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.BaseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := g.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("network error during places lookup: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("places service returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read places response: %w", err)
	}
	return body, nil
}
