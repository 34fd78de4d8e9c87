package aggregate

// ChartSeries is the chart-ready output shape shared by every aggregator: one
// label per x-axis slot, one dataset per plotted option or segment.
type ChartSeries struct {
	Labels   []string  `json:"labels"`
	Datasets []Dataset `json:"datasets"`
}

type Dataset struct {
	Label string    `json:"label"`
	Data  []float64 `json:"data"`
	// TotalNum is the row count behind this dataset, for sample-size displays.
	TotalNum int `json:"totalNum,omitempty"`
}

// SampleSizeTable records row counts per year per segment, parallel to the chart
// series produced in the same aggregation call. Entry 0 is always the baseline.
// Counts are taken after year and month filtering: the baseline reflects how many
// rows exist in the analysis window regardless of segment choice, while segment
// entries additionally apply that segment's predicate.
type SampleSizeTable struct {
	Years  []string     `json:"years"`
	Counts []CountEntry `json:"counts"`
}

type CountEntry struct {
	SegmentLabel string      `json:"segmentLabel"`
	CountsByYear []YearCount `json:"countsByYear"`
	Total        int         `json:"total"`
}

type YearCount struct {
	Year  string `json:"year"`
	Count int    `json:"count"`
}

func newCountEntry(label string, years []int, rowCountsByYear map[int]int) CountEntry {
	entry := CountEntry{
		SegmentLabel: label,
		CountsByYear: make([]YearCount, 0, len(years)),
	}

	for _, year := range years {
		count := rowCountsByYear[year]
		entry.CountsByYear = append(entry.CountsByYear, YearCount{Year: yearLabel(year), Count: count})
		entry.Total += count
	}

	return entry
}
