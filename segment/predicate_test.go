package segment_test

import (
	"testing"

	"github.com/tomnetutc/tmd-sub000/dataset"
	"github.com/tomnetutc/tmd-sub000/segment"
)

var (
	female = segment.Option{
		Value: "female", Label: "Female", ColumnID: "female", MatchValue: "1.0", GroupID: "Gender",
	}
	age20s = segment.Option{
		Value: "age_20_29", Label: "20 to 29", ColumnID: "age_20_29", MatchValue: "1.0", GroupID: "Age",
	}
	age30s = segment.Option{
		Value: "age_30_49", Label: "30 to 49", ColumnID: "age_30_49", MatchValue: "1.0", GroupID: "Age",
	}
)

func TestPredicateIsANDAcrossGroupsAndORWithinGroup(t *testing.T) {
	predicate := segment.BuildPredicate(
		[]segment.Option{female, age20s, age30s}, "", segment.WeekAll, false,
	)

	testCases := []struct {
		name    string
		row     dataset.Row
		matches bool
	}{
		{
			name:    "matches one option from every group",
			row:     dataset.Row{"female": "1.0", "age_20_29": "1.0"},
			matches: true,
		},
		{
			name:    "matches the other age alternative",
			row:     dataset.Row{"female": "1.0", "age_30_49": "1.0"},
			matches: true,
		},
		{
			name:    "fails the gender group",
			row:     dataset.Row{"female": "0.0", "age_20_29": "1.0"},
			matches: false,
		},
		{
			name:    "fails the age group",
			row:     dataset.Row{"female": "1.0", "age_20_29": "0.0", "age_30_49": "0.0"},
			matches: false,
		},
		{
			name:    "missing columns are non-matches",
			row:     dataset.Row{"female": "1.0"},
			matches: false,
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			if predicate(testCase.row) != testCase.matches {
				t.Errorf("expected match=%v for row %v", testCase.matches, testCase.row)
			}
		})
	}
}

func TestEmptySegmentMatchesEveryRow(t *testing.T) {
	predicate := segment.BuildPredicate(nil, "", segment.WeekAll, false)

	rows := []dataset.Row{
		{"female": "1.0"},
		{},
		{"year": "2019", "unemployed": "1.0"},
	}
	for _, row := range rows {
		if !predicate(row) {
			t.Errorf("expected empty segment to match row %v", row)
		}
	}
}

func TestMatchValuesCompareAsRawStrings(t *testing.T) {
	predicate := segment.BuildPredicate([]segment.Option{female}, "", segment.WeekAll, false)

	// "1" and "1.0" are numerically equal but must not match.
	if predicate(dataset.Row{"female": "1"}) {
		t.Error("expected '1' not to match declared literal '1.0'")
	}
	if !predicate(dataset.Row{"female": "1.0"}) {
		t.Error("expected '1.0' to match declared literal '1.0'")
	}
}

func TestYearFilter(t *testing.T) {
	predicate := segment.BuildPredicate(nil, "2019", segment.WeekAll, false)

	if !predicate(dataset.Row{"year": "2019"}) {
		t.Error("expected year 2019 to pass filter for 2019")
	}
	if predicate(dataset.Row{"year": "2020"}) {
		t.Error("expected year 2020 to fail filter for 2019")
	}
	if predicate(dataset.Row{}) {
		t.Error("expected row without year to fail year filter")
	}
}

func TestWeekFilter(t *testing.T) {
	predicate := segment.BuildPredicate(nil, "", segment.WeekWeekday, false)

	if !predicate(dataset.Row{"weekday": "1.0"}) {
		t.Error("expected weekday row to pass weekday filter")
	}
	if predicate(dataset.Row{"weekday": "0.0"}) {
		t.Error("expected weekend row to fail weekday filter")
	}

	// "All" short-circuits without a column check.
	all := segment.BuildPredicate(nil, "", segment.WeekAll, false)
	if !all(dataset.Row{}) {
		t.Error("expected All week option to pass rows without a weekday column")
	}
}

func TestExcludeUnemployed(t *testing.T) {
	predicate := segment.BuildPredicate(nil, "", segment.WeekAll, true)

	if predicate(dataset.Row{"unemployed": "1.0"}) {
		t.Error("expected unemployed row to be excluded")
	}
	if !predicate(dataset.Row{"unemployed": "0.0"}) {
		t.Error("expected employed row to be kept")
	}
	if !predicate(dataset.Row{}) {
		t.Error("expected row without unemployed column to be kept")
	}
}

func TestFilterIsIdempotent(t *testing.T) {
	rows := []dataset.Row{
		{"female": "1.0", "age_20_29": "1.0"},
		{"female": "0.0"},
		{"male": "1.0", "age_30_49": "1.0"},
	}
	predicate := segment.BuildPredicate([]segment.Option{female}, "", segment.WeekAll, false)

	filtered := segment.Filter(rows, predicate)
	refiltered := segment.Filter(filtered, predicate)

	if len(filtered) != 1 || len(refiltered) != len(filtered) {
		t.Fatalf("expected idempotent filtering, got %d then %d rows", len(filtered), len(refiltered))
	}
	for i := range filtered {
		if &filtered[i] != &refiltered[i] {
			// Same backing rows, just reselected.
			if filtered[i]["female"] != refiltered[i]["female"] {
				t.Error("refiltering changed the selected rows")
			}
		}
	}
}
