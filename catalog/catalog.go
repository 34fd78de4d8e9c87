// Package catalog holds the static option catalog: the selectable attributes and
// metrics the dashboard offers. It is reference data, embedded at build time and
// versioned alongside the code.
package catalog

import (
	_ "embed"
	"fmt"

	"github.com/tomnetutc/tmd-sub000/aggregate"
	"github.com/tomnetutc/tmd-sub000/segment"
	"gopkg.in/yaml.v3"
	"hermannm.dev/wrap"
)

//go:embed catalog.yaml
var catalogFile []byte

// Group is one semantic attribute (e.g. Age) whose options are mutually
// exclusive alternatives sharing a group ID.
type Group struct {
	ID      string           `json:"id" yaml:"id"`
	Name    string           `json:"name" yaml:"name"`
	Options []segment.Option `json:"options" yaml:"options"`
}

// CatalogMetric is a metric descriptor the API can reference by value.
type CatalogMetric struct {
	Value            string `json:"value" yaml:"value"`
	aggregate.Metric `yaml:",inline"`
}

type Catalog struct {
	Version string          `json:"version" yaml:"version"`
	Groups  []Group         `json:"groups" yaml:"groups"`
	Metrics []CatalogMetric `json:"metrics" yaml:"metrics"`
}

var catalog = mustParseCatalog()

func mustParseCatalog() Catalog {
	parsed, err := parseCatalog(catalogFile)
	if err != nil {
		panic(wrap.Error(err, "embedded option catalog is invalid"))
	}
	return parsed
}

func parseCatalog(file []byte) (Catalog, error) {
	var parsed Catalog
	if err := yaml.Unmarshal(file, &parsed); err != nil {
		return Catalog{}, wrap.Error(err, "failed to parse catalog YAML")
	}

	// The group ID/name live on the group entry in the data file; options carry
	// them at runtime so the predicate engine can partition by group ID alone.
	for g, group := range parsed.Groups {
		for o := range group.Options {
			parsed.Groups[g].Options[o].GroupID = group.ID
			parsed.Groups[g].Options[o].GroupName = group.Name
		}
	}

	for _, metric := range parsed.Metrics {
		if !metric.Kind.IsValid() {
			return Catalog{}, fmt.Errorf("metric '%s' has invalid kind", metric.Value)
		}
	}

	return parsed, nil
}

func Version() string {
	return catalog.Version
}

func Groups() []Group {
	return catalog.Groups
}

func Metrics() []CatalogMetric {
	return catalog.Metrics
}

func GroupByID(id string) (Group, bool) {
	for _, group := range catalog.Groups {
		if group.ID == id {
			return group, true
		}
	}
	return Group{}, false
}

// OptionByValue resolves a selection value from the UI to its catalog option.
func OptionByValue(value string) (segment.Option, bool) {
	for _, group := range catalog.Groups {
		for _, option := range group.Options {
			if option.Value == value {
				return option, true
			}
		}
	}
	return segment.Option{}, false
}

// OptionsByValues resolves a list of selection values, failing on the first
// unrecognized one.
func OptionsByValues(values []string) ([]segment.Option, error) {
	options := make([]segment.Option, 0, len(values))
	for _, value := range values {
		option, ok := OptionByValue(value)
		if !ok {
			return nil, fmt.Errorf("unrecognized catalog option '%s'", value)
		}
		options = append(options, option)
	}
	return options, nil
}

// MetricByValue resolves a metric selection value to its descriptor.
func MetricByValue(value string) (aggregate.Metric, bool) {
	for _, metric := range catalog.Metrics {
		if metric.Value == value {
			return metric.Metric, true
		}
	}
	return aggregate.Metric{}, false
}

// MetricsByValues resolves a list of metric values, failing on the first
// unrecognized one.
func MetricsByValues(values []string) ([]aggregate.Metric, error) {
	metrics := make([]aggregate.Metric, 0, len(values))
	for _, value := range values {
		metric, ok := MetricByValue(value)
		if !ok {
			return nil, fmt.Errorf("unrecognized catalog metric '%s'", value)
		}
		metrics = append(metrics, metric)
	}
	return metrics, nil
}
