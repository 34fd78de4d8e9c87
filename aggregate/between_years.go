package aggregate

import (
	"github.com/tomnetutc/tmd-sub000/dataset"
	"github.com/tomnetutc/tmd-sub000/segment"
)

// BetweenYearsResult is a year-over-year time series of one or more metrics,
// with the sample sizes behind every plotted point.
type BetweenYearsResult struct {
	Series ChartSeries `json:"series"`
	// MinYear/MaxYear are the windowed data's year extremes: with sparse data they
	// can lie strictly inside the requested [startYear, endYear] range.
	MinYear     int             `json:"minYear"`
	MaxYear     int             `json:"maxYear"`
	SampleSizes SampleSizeTable `json:"sampleSizes"`
}

// BetweenYears computes each metric per year over rows in [startYear, endYear]
// (inclusive), after the December rule. selection is the caller's segment
// predicate, or nil for the full sample.
//
// The year window and December rule are applied before the selection predicate:
// the ledger's "All" entry counts the windowed rows per year regardless of
// selection, and a non-nil selection adds a second entry counting the rows the
// metrics are actually computed over.
//
// Labels are the ascending distinct years present in the window. A year where the
// selection has no parsable data still yields a value (0 for empty years): series
// never contain NaN.
func BetweenYears(
	rows []dataset.Row,
	selection segment.Predicate,
	startYear int,
	endYear int,
	includeDecember bool,
	metrics []Metric,
) BetweenYearsResult {
	windowed := segment.Window(rows, startYear, endYear, includeDecember)
	windowedByYear, years := groupByYear(windowed)

	selected := windowed
	selectedByYear := windowedByYear
	if selection != nil {
		selected = segment.Filter(windowed, selection)
		selectedByYear, _ = groupByYear(selected)
	}

	series := ChartSeries{Labels: yearLabels(years)}
	for _, metric := range metrics {
		data := make([]float64, 0, len(years))
		for _, year := range years {
			data = append(data, metric.valueForYear(selectedByYear[year]))
		}

		series.Datasets = append(series.Datasets, Dataset{
			Label:    metric.Label,
			Data:     data,
			TotalNum: len(selected),
		})
	}

	sampleSizes := SampleSizeTable{
		Years:  series.Labels,
		Counts: []CountEntry{newCountEntry("All", years, rowCountsByYear(windowedByYear))},
	}
	if selection != nil {
		sampleSizes.Counts = append(
			sampleSizes.Counts,
			newCountEntry("Selection", years, rowCountsByYear(selectedByYear)),
		)
	}

	result := BetweenYearsResult{Series: series, SampleSizes: sampleSizes}
	if len(years) > 0 {
		result.MinYear = years[0]
		result.MaxYear = years[len(years)-1]
	}

	return result
}
