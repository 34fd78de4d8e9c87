package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/tomnetutc/tmd-sub000/api"
	"github.com/tomnetutc/tmd-sub000/config"
	"github.com/tomnetutc/tmd-sub000/dataset"
)

type fakeSource struct {
	rows []dataset.Row
}

func (source fakeSource) FetchRows(
	ctx context.Context,
	family dataset.Family,
) ([]dataset.Row, error) {
	return source.rows, nil
}

func newTestServer(rows []dataset.Row) *httptest.Server {
	analysisAPI := api.NewAnalysisAPI(
		dataset.NewStore(fakeSource{rows: rows}),
		http.NewServeMux(),
		config.API{Port: "0"},
	)
	return httptest.NewServer(analysisAPI.Router())
}

func TestGetCatalog(t *testing.T) {
	server := newTestServer(nil)
	defer server.Close()

	res, err := http.Get(server.URL + "/catalog")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", res.StatusCode)
	}

	var response api.CatalogResponse
	if err := json.NewDecoder(res.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if response.Version == "" || len(response.Groups) == 0 || len(response.Metrics) == 0 {
		t.Errorf("expected populated catalog response, got %+v", response)
	}
}

func TestBetweenYearsEndpoint(t *testing.T) {
	server := newTestServer([]dataset.Row{
		{"year": "2019", "tr_work": "2"},
		{"year": "2019", "tr_work": "4"},
		{"year": "2020", "tr_work": "6"},
	})
	defer server.Close()

	body := `{
		"sequence": 7,
		"dataset": "travel",
		"startYear": 2019,
		"endYear": 2020,
		"includeDecember": true,
		"metrics": ["trips_work"],
		"segmentOptions": [],
		"week": "All"
	}`
	res, err := http.Post(server.URL+"/between-years", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", res.StatusCode)
	}

	var response api.BetweenYearsResponse
	if err := json.NewDecoder(res.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if response.Sequence != 7 {
		t.Errorf("expected sequence echoed back, got %d", response.Sequence)
	}
	if len(response.Series.Labels) != 2 || response.Series.Labels[0] != "2019" {
		t.Errorf("unexpected year labels: %v", response.Series.Labels)
	}
	data := response.Series.Datasets[0].Data
	if len(data) != 2 || data[0] != 3 || data[1] != 6 {
		t.Errorf("unexpected series data: %v", data)
	}
}

func TestBetweenYearsRejectsUnknownMetric(t *testing.T) {
	server := newTestServer(nil)
	defer server.Close()

	body := `{"dataset": "travel", "metrics": ["no-such-metric"]}`
	res, err := http.Post(server.URL+"/between-years", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusBadRequest {
		t.Errorf("expected status 400 for unknown metric, got %d", res.StatusCode)
	}
}

func TestBetweenYearsRequiresMetric(t *testing.T) {
	server := newTestServer(nil)
	defer server.Close()

	body := `{"dataset": "travel", "metrics": []}`
	res, err := http.Post(server.URL+"/between-years", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusBadRequest {
		t.Errorf("expected status 400 for empty metric selection, got %d", res.StatusCode)
	}
}

func TestBetweenYearsRejectsUnknownWeek(t *testing.T) {
	server := newTestServer(nil)
	defer server.Close()

	body := `{"dataset": "travel", "metrics": ["trips_work"], "week": "weekdays"}`
	res, err := http.Post(server.URL+"/between-years", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusBadRequest {
		t.Errorf("expected status 400 for unrecognized week option, got %d", res.StatusCode)
	}
}

func TestBetweenYearsBaselineSampleSize(t *testing.T) {
	server := newTestServer([]dataset.Row{
		{"year": "2019", "tr_work": "2", "female": "1.0"},
		{"year": "2019", "tr_work": "4", "female": "0.0"},
	})
	defer server.Close()

	body := `{
		"dataset": "travel",
		"startYear": 2019,
		"endYear": 2019,
		"includeDecember": true,
		"metrics": ["trips_work"],
		"segmentOptions": ["female"]
	}`
	res, err := http.Post(server.URL+"/between-years", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", res.StatusCode)
	}

	var response api.BetweenYearsResponse
	if err := json.NewDecoder(res.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	// The series covers the selected row, the baseline counts every 2019 row.
	if data := response.Series.Datasets[0].Data; len(data) != 1 || data[0] != 2 {
		t.Errorf("unexpected series data: %v", data)
	}
	counts := response.SampleSizes.Counts
	if len(counts) != 2 || counts[0].SegmentLabel != "All" || counts[0].Total != 2 {
		t.Fatalf("expected baseline counting 2 rows, got %+v", counts)
	}
	if counts[1].SegmentLabel != "Selection" || counts[1].Total != 1 {
		t.Errorf("expected selection entry counting 1 row, got %+v", counts[1])
	}
}

func TestCrossSegmentsEndpoint(t *testing.T) {
	server := newTestServer([]dataset.Row{
		{"year": "2019", "tr_work": "2", "female": "1.0"},
		{"year": "2019", "tr_work": "4", "female": "0.0"},
	})
	defer server.Close()

	body := `{
		"dataset": "travel",
		"startYear": 2019,
		"endYear": 2019,
		"includeDecember": true,
		"metric": "trips_work",
		"segments": [["female"]]
	}`
	res, err := http.Post(server.URL+"/cross-segments", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", res.StatusCode)
	}

	var response api.CrossSegmentsResponse
	if err := json.NewDecoder(res.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	datasets := response.Series.Datasets
	if len(datasets) != 2 || datasets[0].Label != "All" || datasets[1].Label != "Segment 1" {
		t.Fatalf("unexpected datasets: %+v", datasets)
	}
	if datasets[0].Data[0] != 3 || datasets[1].Data[0] != 2 {
		t.Errorf(
			"unexpected values: all=%v, segment=%v", datasets[0].Data, datasets[1].Data,
		)
	}
}

func TestTripLevelEndpoint(t *testing.T) {
	server := newTestServer([]dataset.Row{
		{"year": "2021", "TUCASEID": "p1", "duration": "5", "purpose_work": "1.0"},
		{"year": "2021", "TUCASEID": "p2", "duration": "25", "purpose_work": "0.0"},
	})
	defer server.Close()

	body := `{
		"dataset": "trips",
		"analysisYear": 2021,
		"includeDecember": true,
		"options": ["purpose_work"],
		"segmentOptions": [],
		"week": "All"
	}`
	res, err := http.Post(server.URL+"/trip-level", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", res.StatusCode)
	}

	var response api.TripLevelResponse
	if err := json.NewDecoder(res.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	histograms := response.DurationHistogram.Datasets
	if len(histograms) != 2 || histograms[0].Label != "All" || histograms[1].Label != "Work" {
		t.Fatalf("expected universal bucket before selected categories, got %+v", histograms)
	}
	if response.SegmentSize != 2 {
		t.Errorf("expected 2 distinct persons, got %d", response.SegmentSize)
	}
}

func TestDayPatternsEndpoint(t *testing.T) {
	server := newTestServer([]dataset.Row{
		{"year": "2021", "TUCASEID": "p1", "day_pattern": "H-W-H", "chain_count": "2"},
		{"year": "2021", "TUCASEID": "p2", "day_pattern": "H", "chain_count": "0"},
	})
	defer server.Close()

	body := `{
		"dataset": "day-pattern",
		"analysisYear": 2021,
		"includeDecember": true,
		"segmentOptions": [],
		"week": "All"
	}`
	res, err := http.Post(server.URL+"/day-patterns", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", res.StatusCode)
	}

	var response api.DayPatternsResponse
	if err := json.NewDecoder(res.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if response.SegmentSize != 2 {
		t.Errorf("expected 2 distinct persons, got %d", response.SegmentSize)
	}
	if len(response.TopPatterns.Labels) != 2 {
		t.Errorf("unexpected top patterns: %v", response.TopPatterns.Labels)
	}
}

func TestInvalidDatasetFamilyRejected(t *testing.T) {
	server := newTestServer(nil)
	defer server.Close()

	body := `{"dataset": "no-such-family", "metrics": ["trips_work"]}`
	res, err := http.Post(server.URL+"/between-years", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusBadRequest {
		t.Errorf("expected status 400 for unknown dataset family, got %d", res.StatusCode)
	}
}
