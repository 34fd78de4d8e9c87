package segment

import "github.com/google/uuid"

// Option is one selectable value of one attribute, e.g. "Female" under "Gender".
// A row matches the option when row[ColumnID] equals MatchValue exactly — match
// values are raw string literals from the option catalog, never parsed numbers.
type Option struct {
	Value      string `json:"value" yaml:"value"`
	Label      string `json:"label" yaml:"label"`
	ColumnID   string `json:"columnId" yaml:"columnId"`
	MatchValue string `json:"matchValue" yaml:"matchValue"`
	GroupID    string `json:"groupId" yaml:"groupId"`
	GroupName  string `json:"groupName,omitempty" yaml:"groupName,omitempty"`
}

// Segment is a population subgroup defined by a handful of attribute options.
// Matching is AND across group IDs, OR within a group ID; a segment with no
// options matches every row (the full-sample baseline).
type Segment struct {
	ID      uuid.UUID `json:"id"`
	Label   string    `json:"label,omitempty"`
	Options []Option  `json:"options"`
}

func NewSegment(label string, options []Option) Segment {
	return Segment{ID: uuid.New(), Label: label, Options: options}
}

// WithBaseline prepends the implicit full-sample segment, which every
// cross-segment aggregation carries at index 0.
func WithBaseline(segments []Segment) []Segment {
	withBaseline := make([]Segment, 0, len(segments)+1)
	withBaseline = append(withBaseline, Segment{Label: "All"})
	return append(withBaseline, segments...)
}

// WeekOption selects all days, weekdays only, or weekend days only. The "All"
// option short-circuits without any column check.
type WeekOption struct {
	Value      string `json:"value"`
	Label      string `json:"label"`
	ColumnID   string `json:"columnId,omitempty"`
	MatchValue string `json:"matchValue,omitempty"`
}

var (
	WeekAll     = WeekOption{Value: "All", Label: "All"}
	WeekWeekday = WeekOption{Value: "Weekday", Label: "Weekday", ColumnID: "weekday", MatchValue: "1.0"}
	WeekWeekend = WeekOption{Value: "Weekend", Label: "Weekend", ColumnID: "weekday", MatchValue: "0.0"}
)

// WeekOptionByValue resolves "All"/"Weekday"/"Weekend". An empty value means no
// week selection and resolves to WeekAll; anything else unrecognized does not
// resolve, so callers can reject it instead of silently widening the selection.
func WeekOptionByValue(value string) (WeekOption, bool) {
	switch value {
	case "", WeekAll.Value:
		return WeekAll, true
	case WeekWeekday.Value:
		return WeekWeekday, true
	case WeekWeekend.Value:
		return WeekWeekend, true
	default:
		return WeekOption{}, false
	}
}
