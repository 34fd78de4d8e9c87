package aggregate

import (
	"math"
	"slices"
	"strconv"

	"github.com/tomnetutc/tmd-sub000/dataset"
)

func round2(value float64) float64 {
	return math.Round(value*100) / 100
}

func round1(value float64) float64 {
	return math.Round(value*10) / 10
}

func yearLabel(year int) string {
	return strconv.Itoa(year)
}

// groupByYear buckets rows by parsed year, dropping rows without one, and
// returns the distinct years in ascending order.
func groupByYear(rows []dataset.Row) (byYear map[int][]dataset.Row, years []int) {
	byYear = make(map[int][]dataset.Row)

	for _, row := range rows {
		year, ok := row.Year()
		if !ok {
			continue
		}
		if _, seen := byYear[year]; !seen {
			years = append(years, year)
		}
		byYear[year] = append(byYear[year], row)
	}

	slices.Sort(years)
	return byYear, years
}

func yearLabels(years []int) []string {
	labels := make([]string, 0, len(years))
	for _, year := range years {
		labels = append(labels, yearLabel(year))
	}
	return labels
}

func rowCountsByYear(byYear map[int][]dataset.Row) map[int]int {
	counts := make(map[int]int, len(byYear))
	for year, rows := range byYear {
		counts[year] = len(rows)
	}
	return counts
}
