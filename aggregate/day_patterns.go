package aggregate

import (
	"slices"

	"github.com/tomnetutc/tmd-sub000/dataset"
	"github.com/tomnetutc/tmd-sub000/segment"
)

const (
	dayPatternColumn = "day_pattern"
	chainCountColumn = "chain_count"
	stopCountColumn  = "stop_count"
	zeroTripColumn   = "zero_trip"
)

// Columns holding the number of chains with exactly k stops per person-day; the
// last one counts chains with 3 or more.
var stopChainColumns = []string{"0stop_chains", "1stop_chains", "2stop_chains", "3stop_chains"}

// CountBucketLabels are the {0, 1, 2, 3+} buckets shared by the chain and stop
// distributions.
var CountBucketLabels = []string{"0", "1", "2", "3+"}

const topPatternLimit = 15

// DayPatternsResult holds single-year day-pattern distributions and the
// chain/stop summary figures. The summary figures are explicit return values:
// callers thread them to wherever they are displayed instead of reading them
// from shared state.
type DayPatternsResult struct {
	// TopPatterns are the most frequent day patterns (at most 15), as percentages
	// of the year's person-days.
	TopPatterns ChartSeries `json:"topPatterns"`
	// ChainDistribution buckets persons-days by chain count, normalized by
	// SegmentSize.
	ChainDistribution ChartSeries `json:"chainDistribution"`
	// StopDistribution buckets chains by stop count, normalized by the chain total
	// of trip-making (zero_trip == 0) person-days.
	StopDistribution   ChartSeries `json:"stopDistribution"`
	SegmentSize        int         `json:"segmentSize"`
	AvgChainsPerPerson float64     `json:"avgChainsPerPerson"`
	AvgStopsPerChain   float64     `json:"avgStopsPerChain"`
	TotalChainCount    int         `json:"totalChainCount"`
}

// DayPatterns analyzes one year of person-day rows: which full-day activity
// patterns occur most, and how trip chains and their stops distribute.
func DayPatterns(rows []dataset.Row, analysisYear int, includeDecember bool) DayPatternsResult {
	filtered := segment.SingleYear(rows, analysisYear, includeDecember)
	segmentSize := countDistinctPersons(filtered)

	result := DayPatternsResult{
		TopPatterns:       topPatterns(filtered),
		ChainDistribution: chainDistribution(filtered, segmentSize),
		SegmentSize:       segmentSize,
	}

	var totalChains, totalStops, tripMakerChains float64
	for _, row := range filtered {
		chains, _ := row.Float(chainCountColumn)
		totalChains += chains

		if stops, ok := row.Float(stopCountColumn); ok {
			totalStops += stops
		}
		if zeroTrip, ok := row.Float(zeroTripColumn); ok && zeroTrip == 0 {
			tripMakerChains += chains
		}
	}

	result.StopDistribution = stopDistribution(filtered, tripMakerChains)
	result.TotalChainCount = int(totalChains)
	if segmentSize > 0 {
		result.AvgChainsPerPerson = round2(totalChains / float64(segmentSize))
	}
	if tripMakerChains > 0 {
		result.AvgStopsPerChain = round2(totalStops / tripMakerChains)
	}

	return result
}

func topPatterns(rows []dataset.Row) ChartSeries {
	counts := make(map[string]int)
	var order []string

	for _, row := range rows {
		pattern := row[dayPatternColumn]
		if pattern == "" {
			continue
		}
		if _, seen := counts[pattern]; !seen {
			order = append(order, pattern)
		}
		counts[pattern]++
	}

	// Stable sort keeps first-encountered order between equal counts, making the
	// top-15 cutoff deterministic.
	slices.SortStableFunc(order, func(a, b string) int {
		return counts[b] - counts[a]
	})
	if len(order) > topPatternLimit {
		order = order[:topPatternLimit]
	}

	data := make([]float64, 0, len(order))
	for _, pattern := range order {
		if len(rows) == 0 {
			data = append(data, 0)
		} else {
			data = append(data, round2(100*float64(counts[pattern])/float64(len(rows))))
		}
	}

	return ChartSeries{
		Labels:   order,
		Datasets: []Dataset{{Label: "Share", Data: data, TotalNum: len(rows)}},
	}
}

func chainDistribution(rows []dataset.Row, segmentSize int) ChartSeries {
	buckets := make([]float64, len(CountBucketLabels))

	for _, row := range rows {
		chains, ok := row.Float(chainCountColumn)
		if !ok || chains < 0 {
			continue
		}
		buckets[countBucketIndex(int(chains))]++
	}

	data := make([]float64, len(buckets))
	if segmentSize > 0 {
		for i, count := range buckets {
			data[i] = round2(100 * count / float64(segmentSize))
		}
	}

	return ChartSeries{
		Labels:   CountBucketLabels,
		Datasets: []Dataset{{Label: "Chains", Data: data, TotalNum: segmentSize}},
	}
}

func stopDistribution(rows []dataset.Row, tripMakerChains float64) ChartSeries {
	buckets := make([]float64, len(stopChainColumns))

	for _, row := range rows {
		for i, column := range stopChainColumns {
			if chains, ok := row.Float(column); ok {
				buckets[i] += chains
			}
		}
	}

	data := make([]float64, len(buckets))
	if tripMakerChains > 0 {
		for i, count := range buckets {
			data[i] = round2(100 * count / tripMakerChains)
		}
	}

	return ChartSeries{
		Labels:   CountBucketLabels,
		Datasets: []Dataset{{Label: "Stops", Data: data, TotalNum: int(tripMakerChains)}},
	}
}

func countBucketIndex(count int) int {
	if count >= len(CountBucketLabels)-1 {
		return len(CountBucketLabels) - 1
	}
	return count
}
