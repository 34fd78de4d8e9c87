package aggregate

import (
	"fmt"

	"github.com/tomnetutc/tmd-sub000/dataset"
	"github.com/tomnetutc/tmd-sub000/segment"
)

// CrossSegmentsResult compares one metric, across years, between user-defined
// segments and the full-sample baseline.
type CrossSegmentsResult struct {
	Series      ChartSeries     `json:"series"`
	SampleSizes SampleSizeTable `json:"sampleSizes"`
}

// CrossSegments computes the metric once per segment over the shared year window.
// segments[0] is expected to be the implicit baseline with zero options (see
// segment.WithBaseline); any segment count >= 1 is tolerated. Dataset 0 is always
// labeled "All" and dataset N "Segment N" — ordinals are positional, so removing
// a segment shifts later ordinals down rather than leaving gaps.
//
// The year window and December rule are applied once to the full row set; every
// segment shares the resulting year labels, with 0 filled in for years where a
// segment has no rows. The sample-size table gets one entry per segment, counted
// after that segment's predicate.
func CrossSegments(
	rows []dataset.Row,
	segments []segment.Segment,
	startYear int,
	endYear int,
	includeDecember bool,
	metric Metric,
) CrossSegmentsResult {
	windowed := segment.Window(rows, startYear, endYear, includeDecember)
	_, years := groupByYear(windowed)

	series := ChartSeries{Labels: yearLabels(years)}
	sampleSizes := SampleSizeTable{Years: series.Labels}

	for i, seg := range segments {
		predicate := segment.BuildPredicate(seg.Options, "", segment.WeekAll, false)
		segmentRows := segment.Filter(windowed, predicate)
		byYear, _ := groupByYear(segmentRows)

		data := make([]float64, 0, len(years))
		for _, year := range years {
			data = append(data, metric.valueForYear(byYear[year]))
		}

		label := segmentLabel(i)
		series.Datasets = append(series.Datasets, Dataset{
			Label:    label,
			Data:     data,
			TotalNum: len(segmentRows),
		})
		sampleSizes.Counts = append(
			sampleSizes.Counts,
			newCountEntry(label, years, rowCountsByYear(byYear)),
		)
	}

	return CrossSegmentsResult{Series: series, SampleSizes: sampleSizes}
}

func segmentLabel(index int) string {
	if index == 0 {
		return "All"
	}
	return fmt.Sprintf("Segment %d", index)
}
