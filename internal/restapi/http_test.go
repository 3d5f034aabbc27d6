package restapi

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"accessibility.antwerp.org/internal/app"
	"accessibility.antwerp.org/internal/appconf"
	"accessibility.antwerp.org/internal/dataset"
	"accessibility.antwerp.org/internal/describe"
	"accessibility.antwerp.org/internal/models"
)

// testNodeTable covers every category: three scorable nodes within a
// kilometer of the Groenplaats, one inert node, and one bus stop on the far
// side of the city.
const testNodeTable = `id,lat,lon,category,name
1,51.2194,4.4025,bus_stop,Groenplaats
2,51.2203,4.4030,tram_stop,Melkmarkt
3,51.2180,4.4000,velo_station,Velo Hoogstraat
4,51.2190,4.4020,other,Platform Sign
5,51.3000,4.5000,bus_stop,Far Depot
`

// createTestApi creates a RestAPI backed by a small in-memory node table.
// The GTFS manager is left nil so handlers exercise their degraded path.
func createTestApi(t *testing.T) *RestAPI {
	t.Helper()

	path := filepath.Join(t.TempDir(), "nodes.csv")
	require.NoError(t, os.WriteFile(path, []byte(testNodeTable), 0o644))

	manager, err := dataset.NewManager(dataset.Config{Source: path}, nil, testLogger())
	require.NoError(t, err)
	t.Cleanup(manager.Shutdown)

	application := &app.Application{
		Config: app.Config{
			Env:       appconf.Test,
			ApiKeys:   []string{"TEST"},
			RateLimit: 100,
		},
		Logger:    testLogger(),
		Dataset:   manager,
		Describer: describe.NewGenerator(describe.Config{}, nil),
	}

	return NewRestAPI(application)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// serveAndRetrieveEndpoint sets up a test server, makes a request to the specified endpoint, and returns the response
// and decoded model.
func serveAndRetrieveEndpoint(t *testing.T, endpoint string) (*RestAPI, *http.Response, models.ResponseModel) {
	api := createTestApi(t)
	resp, model := serveApiAndRetrieveEndpoint(t, api, endpoint)
	return api, resp, model
}

func serveApiAndRetrieveEndpoint(t *testing.T, api *RestAPI, endpoint string) (*http.Response, models.ResponseModel) {
	server := httptest.NewServer(api.Routes())
	defer server.Close()

	resp, err := http.Get(server.URL + endpoint)
	require.NoError(t, err)
	defer resp.Body.Close() // nolint:errcheck

	var response models.ResponseModel
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&response))

	return resp, response
}

// entryFromResponse unwraps the {"entry": ...} envelope.
func entryFromResponse(t *testing.T, model models.ResponseModel) map[string]interface{} {
	t.Helper()
	data, ok := model.Data.(map[string]interface{})
	require.True(t, ok)
	entry, ok := data["entry"].(map[string]interface{})
	require.True(t, ok)
	return entry
}

// listFromResponse unwraps the {"list": ...} envelope.
func listFromResponse(t *testing.T, model models.ResponseModel) []interface{} {
	t.Helper()
	data, ok := model.Data.(map[string]interface{})
	require.True(t, ok)
	list, ok := data["list"].([]interface{})
	require.True(t, ok)
	return list
}
