package restapi

import (
	"net/http"

	"accessibility.antwerp.org/internal/models"
	"accessibility.antwerp.org/internal/scoring"
	"accessibility.antwerp.org/internal/utils"
)

// gradeHandler computes the discrete letter grade for a location. The grade
// always uses a fixed 1 km search radius; the tunable parameters are which
// node categories participate.
func (api *RestAPI) gradeHandler(w http.ResponseWriter, r *http.Request) {
	queryParams := r.URL.Query()

	lat, fieldErrors := utils.RequireFloatParam(queryParams, "lat", nil)
	lon, _ := utils.RequireFloatParam(queryParams, "lon", fieldErrors)
	includeUnnamed, _ := utils.ParseBoolParam(queryParams, "includeUnnamed", fieldErrors)
	includeStopPositions, _ := utils.ParseBoolParam(queryParams, "includeStopPositions", fieldErrors)
	excluded := utils.ParseCategoriesParam(queryParams, "excludeCategories")

	if len(fieldErrors) > 0 {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	// The grade radius is fixed, so only the coordinates are validated.
	locationErrors := utils.ValidateLocationParams(lat, lon, utils.DefaultRadiusKM)
	if len(locationErrors) > 0 {
		api.validationErrorResponse(w, r, locationErrors)
		return
	}

	result := scoring.AreaGrade(api.Dataset.Snapshot(), lat, lon, scoring.GradeOptions{
		ExcludeCategories:    excluded,
		IncludeUnnamed:       includeUnnamed,
		IncludeStopPositions: includeStopPositions,
	})

	api.sendResponse(w, r, models.NewEntryResponse(models.NewGradeModel(result, lat, lon)))
}
