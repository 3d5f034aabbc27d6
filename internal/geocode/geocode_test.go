package geocode

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchReturnsFirstMatch(t *testing.T) {
	var gotQuery, gotUserAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		gotUserAgent = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"lat":"51.2211","lon":"4.3997","display_name":"Groenplaats, Antwerpen, Belgium"}]`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	result, err := client.Search(context.Background(), "Groenplaats")

	require.NoError(t, err)
	assert.Equal(t, "Groenplaats", gotQuery)
	assert.NotEmpty(t, gotUserAgent)
	assert.InDelta(t, 51.2211, result.Lat, 1e-9)
	assert.InDelta(t, 4.3997, result.Lon, 1e-9)
	assert.Equal(t, "Groenplaats, Antwerpen, Belgium", result.DisplayName)
}

func TestSearchNoResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	_, err := NewClient(server.URL).Search(context.Background(), "nowhere at all")
	assert.ErrorIs(t, err, ErrNoResults)
}

func TestSearchServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	_, err := NewClient(server.URL).Search(context.Background(), "Groenplaats")
	assert.Error(t, err)
}

func TestSearchBadCoordinates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"lat":"not-a-number","lon":"4.4","display_name":"x"}]`))
	}))
	defer server.Close()

	_, err := NewClient(server.URL).Search(context.Background(), "Groenplaats")
	assert.Error(t, err)
}
