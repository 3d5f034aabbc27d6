package restapi

import (
	"errors"
	"net/http"

	"accessibility.antwerp.org/internal/geocode"
	"accessibility.antwerp.org/internal/models"
	"accessibility.antwerp.org/internal/utils"
)

// geocodeHandler resolves a free-form address to coordinates so the
// frontend can score a typed street name.
func (api *RestAPI) geocodeHandler(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")

	sanitizedQuery, err := utils.ValidateAndSanitizeQuery(query)
	if err != nil || sanitizedQuery == "" {
		fieldErrors := map[string][]string{
			"query": {"A non-empty query is required."},
		}
		if err != nil {
			fieldErrors["query"] = []string{err.Error()}
		}
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	result, err := api.Geocoder.Search(r.Context(), sanitizedQuery)
	if errors.Is(err, geocode.ErrNoResults) {
		api.sendNotFound(w, r)
		return
	}
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	entry := models.GeocodeModel{
		Lat:         result.Lat,
		Lon:         result.Lon,
		DisplayName: result.DisplayName,
	}

	api.sendResponse(w, r, models.NewEntryResponse(entry))
}
