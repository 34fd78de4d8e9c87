package aggregate

import (
	"strconv"

	"github.com/tomnetutc/tmd-sub000/dataset"
	"gopkg.in/yaml.v3"
	"hermannm.dev/enumnames"
)

// MetricKind selects how a metric column is turned into a yearly value.
type MetricKind uint8

const (
	// MetricMeanCount averages an additive count column over the rows of a year,
	// giving a per-person average (e.g. work trips per surveyed person).
	// Displayed with 2 decimals.
	MetricMeanCount MetricKind = iota + 1
	// MetricMeanDuration averages a duration column (minutes) over the rows of a
	// year. Displayed with 1 decimal.
	MetricMeanDuration
	// MetricCategoryShare counts rows whose column equals the category value, as a
	// percentage of the year's rows (e.g. zero-trip share, day-pattern share).
	// Displayed with 2 decimals.
	MetricCategoryShare
)

var metricKindMap = enumnames.NewMap(map[MetricKind]string{
	MetricMeanCount:     "MEAN_COUNT",
	MetricMeanDuration:  "MEAN_DURATION",
	MetricCategoryShare: "CATEGORY_SHARE",
})

func (kind MetricKind) IsValid() bool {
	return metricKindMap.ContainsEnumValue(kind)
}

func (kind MetricKind) String() string {
	return metricKindMap.GetNameOrFallback(kind, "INVALID_METRIC_KIND")
}

func (kind MetricKind) MarshalJSON() ([]byte, error) {
	return metricKindMap.MarshalToNameJSON(kind)
}

func (kind *MetricKind) UnmarshalJSON(bytes []byte) error {
	return metricKindMap.UnmarshalFromNameJSON(bytes, kind)
}

// Metric kinds appear by name in the option catalog data file.
func (kind *MetricKind) UnmarshalYAML(value *yaml.Node) error {
	return metricKindMap.UnmarshalFromNameJSON([]byte(strconv.Quote(value.Value)), kind)
}

// Metric describes one plotted quantity: which column feeds it and how it
// aggregates. The four analysis lenses (trip purpose, travel mode, zero-trip,
// day pattern) all drive the same aggregation engine through these descriptors.
type Metric struct {
	Label  string     `json:"label" yaml:"label"`
	Column string     `json:"column" yaml:"column"`
	Kind   MetricKind `json:"kind" yaml:"kind"`
	// CategoryValue is the literal the column is compared against for
	// MetricCategoryShare; ignored for the mean kinds.
	CategoryValue string `json:"categoryValue,omitempty" yaml:"categoryValue,omitempty"`
}

// valueForYear computes the metric over one year's rows, at full floating-point
// precision with a single rounding step at the end. No rows yields 0, never NaN.
func (metric Metric) valueForYear(rows []dataset.Row) float64 {
	if len(rows) == 0 {
		return 0
	}

	switch metric.Kind {
	case MetricCategoryShare:
		matched := 0
		for _, row := range rows {
			if row[metric.Column] == metric.CategoryValue {
				matched++
			}
		}
		return round2(100 * float64(matched) / float64(len(rows)))

	case MetricMeanDuration:
		return round1(metric.meanOverRows(rows))

	default:
		return round2(metric.meanOverRows(rows))
	}
}

// The denominator is the row count, not the metric sum: this yields a per-person
// average, not a per-trip one. Malformed values contribute zero.
func (metric Metric) meanOverRows(rows []dataset.Row) float64 {
	var sum float64
	for _, row := range rows {
		if value, ok := row.Float(metric.Column); ok {
			sum += value
		}
	}
	return sum / float64(len(rows))
}
