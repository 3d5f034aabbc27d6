package gtfs

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/jamespfennell/gtfs"
)

func rawGtfsData(ctx context.Context, source string, isLocalFile bool) ([]byte, error) {
	var b []byte
	var err error

	if isLocalFile {
		b, err = os.ReadFile(source)
		if err != nil {
			return nil, fmt.Errorf("error reading local GTFS file: %w", err)
		}
	} else {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
		if err != nil {
			return nil, fmt.Errorf("error building GTFS request: %w", err)
		}

		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("error downloading GTFS data: %w", err)
		}
		defer resp.Body.Close() // nolint

		b, err = io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("error reading GTFS data: %w", err)
		}
	}
	return b, nil
}

// loadGTFSData loads and parses GTFS data from either a URL or a local file.
// The context bounds the download, not the parse.
func loadGTFSData(ctx context.Context, source string, isLocalFile bool) (*gtfs.Static, error) {
	b, err := rawGtfsData(ctx, source, isLocalFile)
	if err != nil {
		return nil, fmt.Errorf("error reading GTFS data: %w", err)
	}

	staticData, err := gtfs.ParseStatic(b, gtfs.ParseStaticOptions{})
	if err != nil {
		return nil, fmt.Errorf("error parsing GTFS data: %w", err)
	}

	return staticData, nil
}

// displayType collapses the GTFS route type onto the two display categories
// this city serves: trams (tram and cable tram) and buses (everything else).
func displayType(routeType int) string {
	switch routeType {
	case 0, 5:
		return "tram"
	default:
		return "bus"
	}
}
