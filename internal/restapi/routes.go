package restapi

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

type handlerFunc func(w http.ResponseWriter, r *http.Request)

func validateAPIKey(api *RestAPI, finalHandler handlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if api.RequestHasInvalidAPIKey(r) {
			api.invalidAPIKeyResponse(w, r)
			return
		}
		finalHandler(w, r)
	})
}

// requireDataset guards handlers that cannot answer without the node table.
func requireDataset(api *RestAPI, finalHandler handlerFunc) http.Handler {
	return validateAPIKey(api, func(w http.ResponseWriter, r *http.Request) {
		if api.Dataset == nil || !api.Dataset.IsLoaded() {
			api.datasetUnavailableResponse(w, r)
			return
		}
		finalHandler(w, r)
	})
}

// Routes builds the service router. The health endpoint is unauthenticated
// so load balancers can probe it; everything under /api requires a key.
func (api *RestAPI) Routes() http.Handler {
	router := httprouter.New()

	router.Handler(http.MethodGet, "/api/score", requireDataset(api, api.scoreHandler))
	router.Handler(http.MethodGet, "/api/grade", requireDataset(api, api.gradeHandler))
	router.Handler(http.MethodGet, "/api/transport-nodes", requireDataset(api, api.transportNodesHandler))
	router.Handler(http.MethodGet, "/api/all-transport-nodes", requireDataset(api, api.allTransportNodesHandler))
	router.Handler(http.MethodGet, "/api/node/:id", requireDataset(api, api.nodeHandler))
	router.Handler(http.MethodGet, "/api/isochrone", validateAPIKey(api, api.isochroneHandler))
	router.Handler(http.MethodGet, "/api/geocode", validateAPIKey(api, api.geocodeHandler))
	router.Handler(http.MethodGet, "/health", http.HandlerFunc(api.healthHandler))

	var handler http.Handler = router
	handler = api.rateLimiter(handler)
	handler = CompressionMiddleware(handler)
	handler = api.WithSecurityHeaders(handler)
	handler = NewRequestLoggingMiddleware(api.Logger)(handler)

	return handler
}
