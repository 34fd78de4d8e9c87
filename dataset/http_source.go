package dataset

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/tomnetutc/tmd-sub000/config"
	"github.com/tomnetutc/tmd-sub000/csv"
	"hermannm.dev/wrap"
)

// HTTPSource fetches each dataset family as a CSV export from a fixed URL.
// Fetch failures are propagated to the caller; retrying is the caller's call.
type HTTPSource struct {
	client *http.Client
	urls   map[Family]string
}

func NewHTTPSource(config config.DatasetURLs) HTTPSource {
	return HTTPSource{
		client: &http.Client{Timeout: 2 * time.Minute},
		urls: map[Family]string{
			FamilyTimeUse:    config.TimeUse,
			FamilyTravel:     config.Travel,
			FamilyTrips:      config.Trips,
			FamilyDayPattern: config.DayPattern,
		},
	}
}

func (source HTTPSource) FetchRows(ctx context.Context, family Family) ([]Row, error) {
	url, ok := source.urls[family]
	if !ok || url == "" {
		return nil, fmt.Errorf("no dataset URL configured for family '%v'", family)
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, wrap.Error(err, "failed to create dataset request")
	}

	response, err := source.client.Do(request)
	if err != nil {
		return nil, wrap.Error(err, "dataset request failed")
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("dataset request returned status %s", response.Status)
	}

	// The CSV reader needs a seekable stream for delimiter deduction, so the body
	// is buffered in full before parsing.
	body, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, wrap.Error(err, "failed to read dataset response body")
	}

	return parseCSVRows(bytes.NewReader(body))
}

func parseCSVRows(csvFile io.ReadSeeker) ([]Row, error) {
	reader, err := csv.NewReader(csvFile)
	if err != nil {
		return nil, wrap.Error(err, "failed to create CSV reader for dataset")
	}

	header, records, err := reader.ReadAll()
	if err != nil {
		return nil, wrap.Error(err, "failed to read dataset CSV")
	}

	rows := make([]Row, 0, len(records))
	for _, record := range records {
		rows = append(rows, NewRow(header, record))
	}

	return rows, nil
}
