package restapi

import (
	"net/http"

	"accessibility.antwerp.org/internal/models"
)

// healthHandler reports readiness. It is unauthenticated and never rate
// limited away from load balancer probes.
func (api *RestAPI) healthHandler(w http.ResponseWriter, r *http.Request) {
	health := models.HealthModel{
		Status:        "ok",
		DatasetLoaded: api.Dataset != nil && api.Dataset.IsLoaded(),
		GTFSEnabled:   api.GtfsManager != nil,
	}
	if api.Dataset != nil {
		health.NodeCount = api.Dataset.NodeCount()
		if counts, err := api.Dataset.CategoryCounts(r.Context()); err == nil {
			health.CategoryCounts = make(map[string]int, len(counts))
			for category, count := range counts {
				health.CategoryCounts[string(category)] = count
			}
		}
	}
	if api.GtfsManager != nil {
		health.GTFSStopCount = api.GtfsManager.StopCount()
	}

	if !health.DatasetLoaded {
		health.Status = "degraded"
	}

	api.sendResponse(w, r, models.NewEntryResponse(health))
}
