package restapi

import (
	"errors"
	"net/http"
	"strconv"

	"accessibility.antwerp.org/internal/dataset"
	"accessibility.antwerp.org/internal/models"
	"accessibility.antwerp.org/internal/utils"
)

// nodeHandler returns a single transport node by its OSM ID.
func (api *RestAPI) nodeHandler(w http.ResponseWriter, r *http.Request) {
	rawID := utils.ExtractIDFromParams(r, "id")

	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		api.validationErrorResponse(w, r, map[string][]string{
			"id": {"Invalid field value for field \"id\"."},
		})
		return
	}

	node, err := api.Dataset.Node(r.Context(), id)
	if errors.Is(err, dataset.ErrNodeNotFound) {
		api.sendNotFound(w, r)
		return
	}
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	if api.GtfsManager != nil && len(node.Routes) == 0 {
		node.Routes = api.GtfsManager.RoutesNear(node.Lat, node.Lon)
	}

	api.sendResponse(w, r, models.NewEntryResponse(node))
}
