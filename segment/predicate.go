package segment

import (
	"strconv"

	"github.com/tomnetutc/tmd-sub000/dataset"
)

// Predicate decides whether a row belongs to a segment.
type Predicate func(dataset.Row) bool

// BuildPredicate composes the segment-matching predicate:
//
//  1. If yearFilter is non-empty, rows from other years are rejected.
//  2. If week is not "All", rows where week.ColumnID != week.MatchValue are rejected.
//  3. If excludeUnemployed is set, rows with unemployed == "1.0" are rejected.
//  4. The remaining options are partitioned by group ID; a row matches when every
//     group has at least one option whose column equals its match value exactly.
//
// An empty option list passes every row. The predicate is total: missing or
// malformed columns are non-matches, never an error.
func BuildPredicate(
	options []Option,
	yearFilter string,
	week WeekOption,
	excludeUnemployed bool,
) Predicate {
	var filterYear int
	hasYearFilter := yearFilter != ""
	if hasYearFilter {
		parsed, err := strconv.Atoi(yearFilter)
		if err != nil {
			// An unparsable year filter can never equal a row's year.
			parsed = -1
		}
		filterYear = parsed
	}

	groups := groupOptionsByID(options)

	return func(row dataset.Row) bool {
		if hasYearFilter {
			year, ok := row.Year()
			if !ok || year != filterYear {
				return false
			}
		}

		if week.Value != WeekAll.Value && row[week.ColumnID] != week.MatchValue {
			return false
		}

		if excludeUnemployed && row["unemployed"] == "1.0" {
			return false
		}

		for _, group := range groups {
			if !anyOptionMatches(row, group) {
				return false
			}
		}

		return true
	}
}

func groupOptionsByID(options []Option) [][]Option {
	indexByGroup := make(map[string]int)
	var groups [][]Option

	for _, option := range options {
		index, seen := indexByGroup[option.GroupID]
		if !seen {
			index = len(groups)
			indexByGroup[option.GroupID] = index
			groups = append(groups, nil)
		}
		groups[index] = append(groups[index], option)
	}

	return groups
}

func anyOptionMatches(row dataset.Row, options []Option) bool {
	for _, option := range options {
		if row[option.ColumnID] == option.MatchValue {
			return true
		}
	}
	return false
}

// Filter returns the rows matching the predicate, preserving input order.
func Filter(rows []dataset.Row, predicate Predicate) []dataset.Row {
	var filtered []dataset.Row
	for _, row := range rows {
		if predicate(row) {
			filtered = append(filtered, row)
		}
	}
	return filtered
}
