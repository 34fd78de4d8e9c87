package segment

import "github.com/tomnetutc/tmd-sub000/dataset"

// Time-window filters run before any segment attribute predicate, so that
// sample-size ledgers can count rows per year independent of segment choice.

// Window keeps rows whose year lies in [startYear, endYear] (both inclusive),
// applying the December rule. Rows with unparsable years are dropped.
func Window(
	rows []dataset.Row,
	startYear int,
	endYear int,
	includeDecember bool,
) []dataset.Row {
	var windowed []dataset.Row
	for _, row := range rows {
		year, ok := row.Year()
		if !ok || year < startYear || year > endYear {
			continue
		}
		if excludedDecemberRow(row, includeDecember) {
			continue
		}
		windowed = append(windowed, row)
	}
	return windowed
}

// SingleYear keeps rows from exactly the given analysis year, applying the
// December rule.
func SingleYear(rows []dataset.Row, analysisYear int, includeDecember bool) []dataset.Row {
	var filtered []dataset.Row
	for _, row := range rows {
		year, ok := row.Year()
		if !ok || year != analysisYear {
			continue
		}
		if excludedDecemberRow(row, includeDecember) {
			continue
		}
		filtered = append(filtered, row)
	}
	return filtered
}

// December is excluded by default: survey weeks overlapping the holidays skew
// travel behavior. Rows with unparsable months are kept.
func excludedDecemberRow(row dataset.Row, includeDecember bool) bool {
	if includeDecember {
		return false
	}
	month, ok := row.Month()
	return ok && month == 12
}
