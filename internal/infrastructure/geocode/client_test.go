package geocode

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tolmol/backend/internal/domain"
)

func TestNewClient(t *testing.T) {
	client := NewClient("test-api-key", "https://geocode.example.com")

	assert.NotNil(t, client)
	assert.Equal(t, "test-api-key", client.apiKey)
	assert.Equal(t, "https://geocode.example.com", client.baseURL)
	assert.NotNil(t, client.httpClient)
	assert.NotNil(t, client.rateLimiter)
	assert.False(t, client.debug)
}

func TestGeocode_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "Mumbai", r.URL.Query().Get("q"))
		assert.Equal(t, "test-api-key", r.URL.Query().Get("api_key"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"place_id": 1, "lat": "19.0760", "lon": "72.8777", "display_name": "Mumbai, Maharashtra, India"},
			{"place_id": 2, "lat": "18.9", "lon": "72.8", "display_name": "Mumbai Suburban"}
		]`))
	}))
	defer server.Close()

	client := NewClient("test-api-key", server.URL)
	loc, err := client.Geocode(context.Background(), "Mumbai")

	require.NoError(t, err)
	assert.Equal(t, 19.0760, loc.Lat)
	assert.Equal(t, 72.8777, loc.Long)
	assert.Equal(t, "Mumbai, Maharashtra, India", loc.DisplayName)
}

func TestGeocode_NoResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := NewClient("test-api-key", server.URL)
	_, err := client.Geocode(context.Background(), "Atlantis")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrLocationNotFound)
}

func TestGeocode_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewClient("test-api-key", server.URL)
	_, err := client.Geocode(context.Background(), "Mumbai")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrGeocodeFailure)
}

func TestGeocode_BadCoordinates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"place_id": 1, "lat": "not-a-number", "lon": "72.8", "display_name": "Somewhere"}]`))
	}))
	defer server.Close()

	client := NewClient("test-api-key", server.URL)
	_, err := client.Geocode(context.Background(), "Mumbai")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrGeocodeFailure)
}
