package restapi

import (
	"net/http"

	"accessibility.antwerp.org/internal/models"
	"accessibility.antwerp.org/internal/scoring"
	"accessibility.antwerp.org/internal/utils"
)

// scoreHandler computes the continuous accessibility score for a location.
// Query parameters: lat, lon, radius (km, optional), describe (optional).
func (api *RestAPI) scoreHandler(w http.ResponseWriter, r *http.Request) {
	queryParams := r.URL.Query()

	lat, fieldErrors := utils.RequireFloatParam(queryParams, "lat", nil)
	lon, _ := utils.RequireFloatParam(queryParams, "lon", fieldErrors)
	describe, _ := utils.ParseBoolParam(queryParams, "describe", fieldErrors)

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

	ctx := r.Context()
	if ctx.Err() != nil {
		api.serverErrorResponse(w, r, ctx.Err())
		return
	}

	score, details, err := scoring.AccessibilityScore(api.Dataset.Snapshot(), lat, lon, radius)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	nearby, err := api.Dataset.NodesForLocation(ctx, lat, lon, radius)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}
	if api.GtfsManager != nil {
		nearby = api.GtfsManager.EnrichNodes(nearby)
	}

	var description string
	if describe && api.Describer.Enabled() {
		description = api.Describer.Describe(ctx, lat, lon, radius, details)
	}

	entry := models.ScoreModel{
		Score:       score,
		Details:     details,
		Nodes:       models.NewNodeModels(nearby, lat, lon),
		Description: description,
		RadiusKM:    radius,
	}

	api.sendResponse(w, r, models.NewEntryResponse(entry))
}
