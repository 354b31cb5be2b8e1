package places

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubBackend struct {
	suggestions []Suggestion
	details     *PlaceDetails
	err         error
}

func (s *stubBackend) Autocomplete(ctx context.Context, input string) ([]Suggestion, error) {
	return s.suggestions, s.err
}

func (s *stubBackend) Details(ctx context.Context, placeID string) (*PlaceDetails, error) {
	return s.details, s.err
}

func loaderFor(b Backend, err error, calls *int32) Loader {
	return func(ctx context.Context) (Backend, error) {
		atomic.AddInt32(calls, 1)
		return b, err
	}
}

func TestFallback_FiltersCaseInsensitive(t *testing.T) {
	got := Fallback("PARIS")
	require.Len(t, got, 1)
	assert.Equal(t, Suggestion{
		ID:          "fallback-0",
		Description: "Paris, France",
		PlaceID:     "fallback-0",
		Types:       []string{"locality"},
	}, got[0])
}

func TestFallback_CapsAtFive(t *testing.T) {
	got := Fallback("usa")
	require.Len(t, got, FallbackLimit)
	assert.Equal(t, "New York, NY, USA", got[0].Description)
	assert.Equal(t, "Hawaii, USA", got[1].Description)
	for i, s := range got {
		assert.Equal(t, "fallback-"+string(rune('0'+i)), s.ID)
	}
}

func TestFallback_BlankAndNoMatch(t *testing.T) {
	assert.Empty(t, Fallback(""))
	assert.Empty(t, Fallback("   "))
	assert.Empty(t, Fallback("atlantis"))
	assert.NotNil(t, Fallback("atlantis"))
}

func TestCommonCities_Count(t *testing.T) {
	assert.Len(t, commonCities, 66)
}

func TestService_BlankInputSkipsLoader(t *testing.T) {
	var calls int32
	svc := NewService(loaderFor(&stubBackend{}, nil, &calls), zap.NewNop())

	assert.Empty(t, svc.Suggest(context.Background(), "  "))
	assert.Equal(t, int32(0), calls)
}

func TestService_BackendResults(t *testing.T) {
	var calls int32
	backend := &stubBackend{suggestions: []Suggestion{{ID: "abc", Description: "Kyoto, Japan", PlaceID: "abc"}}}
	svc := NewService(loaderFor(backend, nil, &calls), zap.NewNop())

	got := svc.Suggest(context.Background(), "kyo")
	require.Len(t, got, 1)
	assert.Equal(t, "abc", got[0].PlaceID)
}

func TestService_ZeroResultsIsEmpty(t *testing.T) {
	var calls int32
	svc := NewService(loaderFor(&stubBackend{suggestions: []Suggestion{}}, nil, &calls), zap.NewNop())

	got := svc.Suggest(context.Background(), "paris")
	assert.NotNil(t, got)
	assert.Empty(t, got, "zero results from the backend must not fall back")
}

func TestService_BackendErrorFallsBack(t *testing.T) {
	var calls int32
	svc := NewService(loaderFor(&stubBackend{err: errors.New("OVER_QUERY_LIMIT")}, nil, &calls), zap.NewNop())

	got := svc.Suggest(context.Background(), "paris")
	require.Len(t, got, 1)
	assert.Equal(t, "fallback-0", got[0].ID)
}

func TestService_LoaderErrorRemembered(t *testing.T) {
	var calls int32
	svc := NewService(loaderFor(nil, errors.New("no key"), &calls), zap.NewNop())

	for i := 0; i < 3; i++ {
		got := svc.Suggest(context.Background(), "rome")
		require.Len(t, got, 1)
		assert.Equal(t, "Rome, Italy", got[0].Description)
	}
	assert.Equal(t, int32(1), calls)
}

func TestService_LoadsOnceConcurrently(t *testing.T) {
	var calls int32
	svc := NewService(loaderFor(&stubBackend{suggestions: []Suggestion{}}, nil, &calls), zap.NewNop())

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			svc.Suggest(context.Background(), "oslo")
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), calls)
}

func TestService_NilLoader(t *testing.T) {
	svc := NewService(nil, nil)
	got := svc.Suggest(context.Background(), "tokyo")
	require.Len(t, got, 1)
	assert.Equal(t, "Tokyo, Japan", got[0].Description)
	assert.Nil(t, svc.Details(context.Background(), "ChIJ123"))
}

func TestService_Details(t *testing.T) {
	var calls int32
	want := &PlaceDetails{PlaceID: "p1", City: "Lisbon", Country: "Portugal"}
	svc := NewService(loaderFor(&stubBackend{details: want}, nil, &calls), zap.NewNop())

	assert.Equal(t, want, svc.Details(context.Background(), "p1"))
	assert.Nil(t, svc.Details(context.Background(), "fallback-2"))
	assert.Nil(t, svc.Details(context.Background(), ""))
}

func TestGoogleLoader_NoKey(t *testing.T) {
	_, err := GoogleLoader("", nil)(context.Background())
	assert.ErrorIs(t, err, ErrNoAPIKey)
}

func newGoogleServer(t *testing.T, handler http.HandlerFunc) *GoogleBackend {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	b, err := GoogleLoader("test-key", server.Client())(context.Background())
	require.NoError(t, err)
	gb := b.(*GoogleBackend)
	gb.BaseURL = server.URL
	return gb
}

func TestGoogleBackend_Autocomplete(t *testing.T) {
	gb := newGoogleServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/autocomplete/json", r.URL.Path)
		assert.Equal(t, "(cities)", r.URL.Query().Get("types"))
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		_, _ = w.Write([]byte(`{"status":"OK","predictions":[
			{"place_id":"ChIJ1","description":"Lisbon, Portugal","types":["locality","political"]},
			{"place_id":"ChIJ2","description":"Lisbon, ME, USA"}]}`))
	})

	got, err := gb.Autocomplete(context.Background(), "lisb")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, Suggestion{ID: "ChIJ1", Description: "Lisbon, Portugal", PlaceID: "ChIJ1", Types: []string{"locality", "political"}}, got[0])
	assert.Equal(t, []string{}, got[1].Types)
}

func TestGoogleBackend_AutocompleteStatuses(t *testing.T) {
	tests := []struct {
		status  string
		wantErr bool
	}{
		{"ZERO_RESULTS", false},
		{"REQUEST_DENIED", true},
		{"OVER_QUERY_LIMIT", true},
	}
	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			gb := newGoogleServer(t, func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"status":"` + tt.status + `"}`))
			})
			got, err := gb.Autocomplete(context.Background(), "x")
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Empty(t, got)
		})
	}
}

func TestGoogleBackend_HTTPError(t *testing.T) {
	gb := newGoogleServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	_, err := gb.Autocomplete(context.Background(), "x")
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "502"))
}

func TestGoogleBackend_Details(t *testing.T) {
	gb := newGoogleServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/details/json", r.URL.Path)
		assert.Equal(t, "ChIJ1", r.URL.Query().Get("place_id"))
		_, _ = w.Write([]byte(`{"status":"OK","result":{
			"formatted_address":"Lisbon, Portugal",
			"address_components":[
				{"long_name":"Lisboa","types":["administrative_area_level_1"]},
				{"long_name":"Lisbon","types":["locality","political"]},
				{"long_name":"Portugal","types":["country","political"]}],
			"geometry":{"location":{"lat":38.72,"lng":-9.14}}}}`))
	})

	got, err := gb.Details(context.Background(), "ChIJ1")
	require.NoError(t, err)
	assert.Equal(t, &PlaceDetails{
		PlaceID:          "ChIJ1",
		FormattedAddress: "Lisbon, Portugal",
		City:             "Lisboa",
		Country:          "Portugal",
		Coordinates:      &LatLng{Lat: 38.72, Lng: -9.14},
	}, got)
}

func TestGoogleBackend_DetailsNoGeometry(t *testing.T) {
	gb := newGoogleServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"OK","result":{"formatted_address":"Somewhere"}}`))
	})

	got, err := gb.Details(context.Background(), "x")
	require.NoError(t, err)
	assert.Nil(t, got.Coordinates)
	assert.Empty(t, got.City)
}

func TestGoogleBackend_DetailsNotFound(t *testing.T) {
	gb := newGoogleServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"NOT_FOUND"}`))
	})
	_, err := gb.Details(context.Background(), "x")
	assert.Error(t, err)
}
