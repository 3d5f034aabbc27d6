package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"

	"accessibility.antwerp.org/internal/scoring"
)

// rawNodeData reads the node table bytes from either a URL or a local file.
func rawNodeData(source string, isLocalFile bool) (io.ReadCloser, error) {
	if isLocalFile {
		f, err := os.Open(source)
		if err != nil {
			return nil, fmt.Errorf("error reading local node table: %w", err)
		}
		return f, nil
	}

	resp, err := http.Get(source)
	if err != nil {
		return nil, fmt.Errorf("error downloading node table: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close() // nolint:errcheck
		return nil, fmt.Errorf("error downloading node table: status %d", resp.StatusCode)
	}
	return resp.Body, nil
}

// loadNodeTable parses the cleaned transport node table: a CSV of
// id,lat,lon,category,name with a header row. Rows with malformed or
// out-of-range coordinates are dropped; unrecognized categories are kept as
// inert "other" so they survive a dataset refresh without ever scoring.
func loadNodeTable(r io.Reader) ([]scoring.TransportNode, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("error parsing node table: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	var nodes []scoring.TransportNode
	for i, record := range records {
		if i == 0 && isHeaderRow(record) {
			continue
		}
		if len(record) < 4 {
			continue
		}

		id, err := strconv.ParseInt(strings.TrimSpace(record[0]), 10, 64)
		if err != nil {
			continue
		}
		lat, err := strconv.ParseFloat(strings.TrimSpace(record[1]), 64)
		if err != nil {
			continue
		}
		lon, err := strconv.ParseFloat(strings.TrimSpace(record[2]), 64)
		if err != nil {
			continue
		}
		if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
			continue
		}

		category := parseCategory(strings.TrimSpace(record[3]))
		var name string
		if len(record) > 4 {
			name = strings.TrimSpace(record[4])
		}

		nodes = append(nodes, scoring.TransportNode{
			ID:       id,
			Lat:      lat,
			Lon:      lon,
			Category: category,
			Name:     name,
		})
	}

	return nodes, nil
}

func isHeaderRow(record []string) bool {
	if len(record) == 0 {
		return false
	}
	_, err := strconv.ParseInt(strings.TrimSpace(record[0]), 10, 64)
	return err != nil
}

func parseCategory(s string) scoring.Category {
	switch scoring.Category(s) {
	case scoring.CategoryBusStop, scoring.CategoryTramStop, scoring.CategoryVeloStation,
		scoring.CategoryStopPosition, scoring.CategoryUnknown:
		return scoring.Category(s)
	default:
		return scoring.CategoryOther
	}
}
