package aggregate

import (
	"strconv"

	"github.com/tomnetutc/tmd-sub000/dataset"
	"github.com/tomnetutc/tmd-sub000/segment"
)

// Trip-level analysis works within a single year at individual-trip granularity,
// so one person usually contributes several rows.
const (
	durationColumn  = "duration"
	startTimeColumn = "start_time"
	personColumn    = "TUCASEID"
)

// Duration bins in minutes. The lower edge is exclusive, the upper inclusive:
// a 5-minute trip falls in "1-5", a 6-minute trip in "6-10". Durations of zero
// or less fall outside every bin and are excluded.
var (
	durationBinEdges  = []float64{0, 5, 10, 15, 20, 30, 45, 60, 90, 120, 1440}
	DurationBinLabels = []string{
		"1-5", "6-10", "11-15", "16-20", "21-30", "31-45", "46-60", "61-90", "91-120", "120+",
	}
)

// StartHourLabels are the 24 integer-hour buckets for trip start times.
var StartHourLabels = buildStartHourLabels()

func buildStartHourLabels() []string {
	labels := make([]string, 24)
	for hour := range labels {
		labels[hour] = strconv.Itoa(hour)
	}
	return labels
}

// TripLevelResult holds the single-year trip distributions. Each histogram
// dataset is normalized to percentages of its own option's trip total, so every
// non-empty dataset sums to 100 independently.
type TripLevelResult struct {
	DurationHistogram    ChartSeries `json:"durationHistogram"`
	StartTimeHistogram   ChartSeries `json:"startTimeHistogram"`
	CategoryDistribution ChartSeries `json:"categoryDistribution"`
	// SegmentSize counts distinct persons, not rows: one person contributes one
	// count no matter how many trips they made.
	SegmentSize int `json:"segmentSize"`
}

// TripLevel bins the analysis year's trips by duration and start hour, for each
// given option (an option with an empty ColumnID is the universal "All" bucket
// and matches every trip).
func TripLevel(
	rows []dataset.Row,
	analysisYear int,
	options []segment.Option,
	includeDecember bool,
) TripLevelResult {
	filtered := segment.SingleYear(rows, analysisYear, includeDecember)

	durationCounts := make([][]int, len(options))
	startHourCounts := make([][]int, len(options))
	optionRowTotals := make([]int, len(options))
	for i := range options {
		durationCounts[i] = make([]int, len(DurationBinLabels))
		startHourCounts[i] = make([]int, len(StartHourLabels))
	}

	for _, row := range filtered {
		durationBin := -1
		if duration, ok := row.Float(durationColumn); ok {
			durationBin = durationBinIndex(duration)
		}

		startHour := -1
		if minutes, ok := row.Float(startTimeColumn); ok {
			startHour = startHourIndex(minutes)
		}

		for i, option := range options {
			if !optionMatchesRow(option, row) {
				continue
			}

			optionRowTotals[i]++
			if durationBin >= 0 {
				durationCounts[i][durationBin]++
			}
			if startHour >= 0 {
				startHourCounts[i][startHour]++
			}
		}
	}

	result := TripLevelResult{
		DurationHistogram:  ChartSeries{Labels: DurationBinLabels},
		StartTimeHistogram: ChartSeries{Labels: StartHourLabels},
		SegmentSize:        countDistinctPersons(filtered),
	}

	for i, option := range options {
		result.DurationHistogram.Datasets = append(result.DurationHistogram.Datasets, Dataset{
			Label:    option.Label,
			Data:     normalizeCounts(durationCounts[i]),
			TotalNum: optionRowTotals[i],
		})
		result.StartTimeHistogram.Datasets = append(result.StartTimeHistogram.Datasets, Dataset{
			Label:    option.Label,
			Data:     normalizeCounts(startHourCounts[i]),
			TotalNum: optionRowTotals[i],
		})
	}

	result.CategoryDistribution = categoryDistribution(options, optionRowTotals, len(filtered))
	return result
}

func durationBinIndex(duration float64) int {
	if duration <= 0 {
		return -1
	}
	for i := 0; i < len(durationBinEdges)-1; i++ {
		if duration <= durationBinEdges[i+1] {
			return i
		}
	}
	return -1
}

// Start times arrive as minutes from midnight; hours past the end of the day
// clamp into the last bucket.
func startHourIndex(minutes float64) int {
	if minutes < 0 {
		return -1
	}
	hour := int(minutes / 60)
	if hour > 23 {
		hour = 23
	}
	return hour
}

func optionMatchesRow(option segment.Option, row dataset.Row) bool {
	if option.ColumnID == "" {
		return true
	}
	return row[option.ColumnID] == option.MatchValue
}

// normalizeCounts converts bin counts to percentages of the bins' own total. An
// all-zero histogram stays all-zero rather than dividing by zero.
func normalizeCounts(counts []int) []float64 {
	total := 0
	for _, count := range counts {
		total += count
	}

	percentages := make([]float64, len(counts))
	if total == 0 {
		return percentages
	}

	for i, count := range counts {
		percentages[i] = round2(100 * float64(count) / float64(total))
	}
	return percentages
}

func categoryDistribution(
	options []segment.Option,
	optionRowTotals []int,
	totalRows int,
) ChartSeries {
	labels := make([]string, 0, len(options))
	data := make([]float64, 0, len(options))

	for i, option := range options {
		labels = append(labels, option.Label)
		if totalRows == 0 {
			data = append(data, 0)
		} else {
			data = append(data, round2(100*float64(optionRowTotals[i])/float64(totalRows)))
		}
	}

	return ChartSeries{
		Labels:   labels,
		Datasets: []Dataset{{Label: "Share", Data: data, TotalNum: totalRows}},
	}
}

func countDistinctPersons(rows []dataset.Row) int {
	persons := make(map[string]struct{}, len(rows))
	for _, row := range rows {
		persons[row[personColumn]] = struct{}{}
	}
	return len(persons)
}
