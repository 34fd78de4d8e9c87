package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/tomnetutc/tmd-sub000/aggregate"
	"github.com/tomnetutc/tmd-sub000/catalog"
	"github.com/tomnetutc/tmd-sub000/dataset"
	"github.com/tomnetutc/tmd-sub000/segment"
)

// Sequence is echoed back untouched on every response, so clients firing rapid
// selection changes can discard responses that arrive out of order.

// Expects:
//   - body: JSON-encoded BetweenYearsRequest
//
// Returns:
//   - JSON-encoded BetweenYearsResponse
func (api AnalysisAPI) BetweenYears(res http.ResponseWriter, req *http.Request) {
	var request BetweenYearsRequest
	if err := json.NewDecoder(req.Body).Decode(&request); err != nil {
		sendClientError(res, err, "failed to parse between-years request from body")
		return
	}

	metrics, err := catalog.MetricsByValues(request.Metrics)
	if err != nil {
		sendClientError(res, err, "invalid metric selection")
		return
	}
	if len(metrics) == 0 {
		sendClientError(res, nil, "between-years request must select at least one metric")
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

	if !request.Dataset.IsValid() {
		sendClientError(res, nil, "unrecognized dataset family in request")
		return
	}
	rows, err := api.datasets.Load(req.Context(), request.Dataset)
	if err != nil {
		sendServerError(res, err, "failed to load dataset")
		return
	}

	result := aggregate.BetweenYears(
		rows,
		selectionPredicate(segmentOptions, week, request.ExcludeUnemployed),
		request.StartYear,
		request.EndYear,
		request.IncludeDecember,
		metrics,
	)
	sendJSON(res, BetweenYearsResponse{Sequence: request.Sequence, BetweenYearsResult: result})
}

// Expects:
//   - body: JSON-encoded CrossSegmentsRequest
//
// Returns:
//   - JSON-encoded CrossSegmentsResponse
func (api AnalysisAPI) CrossSegments(res http.ResponseWriter, req *http.Request) {
	var request CrossSegmentsRequest
	if err := json.NewDecoder(req.Body).Decode(&request); err != nil {
		sendClientError(res, err, "failed to parse cross-segments request from body")
		return
	}

	metric, ok := catalog.MetricByValue(request.Metric)
	if !ok {
		sendClientError(res, nil, "unrecognized metric in cross-segments request")
		return
	}

	userSegments := make([]segment.Segment, 0, len(request.Segments))
	for _, optionValues := range request.Segments {
		options, err := catalog.OptionsByValues(optionValues)
		if err != nil {
			sendClientError(res, err, "invalid segment selection")
			return
		}
		userSegments = append(userSegments, segment.NewSegment("", options))
	}

	rows, err := api.datasets.Load(req.Context(), request.Dataset)
	if err != nil {
		sendServerError(res, err, "failed to load dataset")
		return
	}

	result := aggregate.CrossSegments(
		rows,
		segment.WithBaseline(userSegments),
		request.StartYear,
		request.EndYear,
		request.IncludeDecember,
		metric,
	)
	sendJSON(res, CrossSegmentsResponse{Sequence: request.Sequence, CrossSegmentsResult: result})
}

// selectionRows loads the requested dataset family and applies the shared
// selection filters (segment options, week, unemployment).
func (api AnalysisAPI) selectionRows(
	req *http.Request,
	family dataset.Family,
	options []segment.Option,
	week segment.WeekOption,
	excludeUnemployed bool,
) ([]dataset.Row, error) {
	if !family.IsValid() {
		return nil, errors.New("unrecognized dataset family in request")
	}

	rows, err := api.datasets.Load(req.Context(), family)
	if err != nil {
		return nil, err
	}

	predicate := segment.BuildPredicate(options, "", week, excludeUnemployed)
	return segment.Filter(rows, predicate), nil
}

// selectionPredicate builds the selection filter, or nil for an empty selection.
// Aggregators that keep a pre-selection baseline use nil to tell the two apart.
func selectionPredicate(
	options []segment.Option,
	week segment.WeekOption,
	excludeUnemployed bool,
) segment.Predicate {
	if len(options) == 0 && week.Value == segment.WeekAll.Value && !excludeUnemployed {
		return nil
	}
	return segment.BuildPredicate(options, "", week, excludeUnemployed)
}

type Selection struct {
	SegmentOptions    []string `json:"segmentOptions"`
	Week              string   `json:"week"`
	ExcludeUnemployed bool     `json:"excludeUnemployed"`
}

type BetweenYearsRequest struct {
	Sequence        int            `json:"sequence"`
	Dataset         dataset.Family `json:"dataset"`
	StartYear       int            `json:"startYear"`
	EndYear         int            `json:"endYear"`
	IncludeDecember bool           `json:"includeDecember"`
	Metrics         []string       `json:"metrics"`
	Selection
}

type BetweenYearsResponse struct {
	Sequence int `json:"sequence"`
	aggregate.BetweenYearsResult
}

type CrossSegmentsRequest struct {
	Sequence        int            `json:"sequence"`
	Dataset         dataset.Family `json:"dataset"`
	StartYear       int            `json:"startYear"`
	EndYear         int            `json:"endYear"`
	IncludeDecember bool           `json:"includeDecember"`
	Metric          string         `json:"metric"`
	// Segments are catalog option values, one list per user-defined segment. The
	// full-sample baseline is implicit and always included.
	Segments [][]string `json:"segments"`
}

type CrossSegmentsResponse struct {
	Sequence int `json:"sequence"`
	aggregate.CrossSegmentsResult
}
