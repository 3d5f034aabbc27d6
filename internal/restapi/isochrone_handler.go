package restapi

import (
	"net/http"

	"github.com/twpayne/go-polyline"

	"accessibility.antwerp.org/internal/models"
	"accessibility.antwerp.org/internal/scoring"
	"accessibility.antwerp.org/internal/utils"
)

// isochroneSegments is the number of points on the encoded circle. 60 keeps
// the polyline under 1 KB at city-scale radii.
const isochroneSegments = 60

// isochroneHandler returns the search radius around a location as an encoded
// polyline circle. It is a drawing aid for the map frontend, not a
// travel-time isochrone.
func (api *RestAPI) isochroneHandler(w http.ResponseWriter, r *http.Request) {
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

	ring := scoring.CircleRing(lat, lon, radius, isochroneSegments)

	entry := models.IsochroneModel{
		Polyline: string(polyline.EncodeCoords(ring)),
		RadiusKM: radius,
	}

	api.sendResponse(w, r, models.NewEntryResponse(entry))
}
