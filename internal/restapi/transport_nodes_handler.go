package restapi

import (
	"net/http"

	"accessibility.antwerp.org/internal/models"
	"accessibility.antwerp.org/internal/utils"
)

// transportNodesHandler lists transport nodes around a location, nearest
// first, with GTFS route details when the route index is available.
func (api *RestAPI) transportNodesHandler(w http.ResponseWriter, r *http.Request) {
	queryParams := r.URL.Query()

	lat, fieldErrors := utils.RequireFloatParam(queryParams, "lat", nil)
	lon, _ := utils.RequireFloatParam(queryParams, "lon", fieldErrors)

	radius := utils.DefaultRadiusKM
	if queryParams.Get("radius") != "" {
		radius, _ = utils.ParseFloatParam(queryParams, "radius", fieldErrors)
	}

	if len(fieldErrors) > 0 {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	locationErrors := utils.ValidateLocationParams(lat, lon, radius)
	if len(locationErrors) > 0 {
		api.validationErrorResponse(w, r, locationErrors)
		return
	}

	nearby, err := api.Dataset.NodesForLocation(r.Context(), lat, lon, radius)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}
	if api.GtfsManager != nil {
		nearby = api.GtfsManager.EnrichNodes(nearby)
	}

	api.sendResponse(w, r, models.NewListResponse(models.NewNodeModels(nearby, lat, lon)))
}

// allTransportNodesHandler lists every scorable node in the dataset. The
// frontend uses it to draw the full station layer; responses are large and
// lean on the compression middleware.
func (api *RestAPI) allTransportNodesHandler(w http.ResponseWriter, r *http.Request) {
	nodes := api.Dataset.Snapshot()

	scorable := nodes[:0:0]
	for _, node := range nodes {
		if node.Category.Scorable() {
			scorable = append(scorable, node)
		}
	}

	api.sendResponse(w, r, models.NewListResponse(scorable))
}
