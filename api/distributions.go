package api

import (
	"encoding/json"
	"net/http"

	"github.com/tomnetutc/tmd-sub000/aggregate"
	"github.com/tomnetutc/tmd-sub000/catalog"
	"github.com/tomnetutc/tmd-sub000/dataset"
	"github.com/tomnetutc/tmd-sub000/segment"
)

// Expects:
//   - body: JSON-encoded TripLevelRequest
//
// Returns:
//   - JSON-encoded TripLevelResponse
func (api AnalysisAPI) TripLevel(res http.ResponseWriter, req *http.Request) {
	var request TripLevelRequest
	if err := json.NewDecoder(req.Body).Decode(&request); err != nil {
		sendClientError(res, err, "failed to parse trip-level request from body")
		return
	}

	options, err := catalog.OptionsByValues(request.Options)
	if err != nil {
		sendClientError(res, err, "invalid trip category selection")
		return
	}
	// The universal bucket always leads, so every chart carries the full-sample
	// distribution next to the selected categories.
	options = append([]segment.Option{{Value: "All", Label: "All"}}, options...)

	segmentOptions, err := catalog.OptionsByValues(request.SegmentOptions)
	if err != nil {
		sendClientError(res, err, "invalid segment selection")
		return
	}

	week, ok := segment.WeekOptionByValue(request.Week)
	if !ok {
		sendClientError(res, nil, "unrecognized week option in request")
		return
	}

	rows, err := api.selectionRows(
		req, request.Dataset, segmentOptions, week, request.ExcludeUnemployed,
	)
	if err != nil {
		sendServerError(res, err, "failed to load dataset")
		return
	}

	result := aggregate.TripLevel(rows, request.AnalysisYear, options, request.IncludeDecember)
	sendJSON(res, TripLevelResponse{Sequence: request.Sequence, TripLevelResult: result})
}

// Expects:
//   - body: JSON-encoded DayPatternsRequest
//
// Returns:
//   - JSON-encoded DayPatternsResponse
func (api AnalysisAPI) DayPatterns(res http.ResponseWriter, req *http.Request) {
	var request DayPatternsRequest
	if err := json.NewDecoder(req.Body).Decode(&request); err != nil {
		sendClientError(res, err, "failed to parse day-patterns request from body")
		return
	}

	segmentOptions, err := catalog.OptionsByValues(request.SegmentOptions)
	if err != nil {
		sendClientError(res, err, "invalid segment selection")
		return
	}

	week, ok := segment.WeekOptionByValue(request.Week)
	if !ok {
		sendClientError(res, nil, "unrecognized week option in request")
		return
	}

	rows, err := api.selectionRows(
		req, request.Dataset, segmentOptions, week, request.ExcludeUnemployed,
	)
	if err != nil {
		sendServerError(res, err, "failed to load dataset")
		return
	}

	result := aggregate.DayPatterns(rows, request.AnalysisYear, request.IncludeDecember)
	sendJSON(res, DayPatternsResponse{Sequence: request.Sequence, DayPatternsResult: result})
}

// Returns:
//   - JSON-encoded catalog version, groups and metrics
func (api AnalysisAPI) GetCatalog(res http.ResponseWriter, req *http.Request) {
	sendJSON(res, CatalogResponse{
		Version: catalog.Version(),
		Groups:  catalog.Groups(),
		Metrics: catalog.Metrics(),
	})
}

type TripLevelRequest struct {
	Sequence        int            `json:"sequence"`
	Dataset         dataset.Family `json:"dataset"`
	AnalysisYear    int            `json:"analysisYear"`
	IncludeDecember bool           `json:"includeDecember"`
	// Options are catalog option values for the trip categories to distribute
	// over (e.g. travel modes or trip purposes).
	Options []string `json:"options"`
	Selection
}

type TripLevelResponse struct {
	Sequence int `json:"sequence"`
	aggregate.TripLevelResult
}

type DayPatternsRequest struct {
	Sequence        int            `json:"sequence"`
	Dataset         dataset.Family `json:"dataset"`
	AnalysisYear    int            `json:"analysisYear"`
	IncludeDecember bool           `json:"includeDecember"`
	Selection
}

type DayPatternsResponse struct {
	Sequence int `json:"sequence"`
	aggregate.DayPatternsResult
}

type CatalogResponse struct {
	Version string                  `json:"version"`
	Groups  []catalog.Group         `json:"groups"`
	Metrics []catalog.CatalogMetric `json:"metrics"`
}
