package dataset

import "strconv"

// Row is a single survey record, keyed by column name. Every value is a string,
// even for numeric and boolean fields (e.g. "1.0", "0.0", "2019") — category
// matching compares these as raw strings against catalog-declared literals, and
// must never coerce them. Rows are immutable once loaded.
type Row map[string]string

// Missing columns read as the empty string, which parses as nothing and matches
// nothing. That keeps every consumer total over arbitrary row shapes.

func (row Row) Int(column string) (value int, ok bool) {
	parsed, err := strconv.Atoi(row[column])
	if err != nil {
		return 0, false
	}
	return parsed, true
}

func (row Row) Float(column string) (value float64, ok bool) {
	parsed, err := strconv.ParseFloat(row[column], 64)
	if err != nil {
		return 0, false
	}
	return parsed, true
}

// Year parses the row's survey year. Year filtering always compares parsed
// integers: string comparison happens to order 4-digit years correctly, but
// breaks the moment a year is not zero-padded to the same width.
func (row Row) Year() (year int, ok bool) {
	return row.Int("year")
}

// Month parses the row's survey month. Some exports write months as "12", others
// as "12.0", so this goes through float parsing.
func (row Row) Month() (month int, ok bool) {
	parsed, ok := row.Float("month")
	if !ok {
		return 0, false
	}
	return int(parsed), true
}

// NewRow zips a CSV header and record into a Row. Ragged records are tolerated:
// extra header columns stay absent, extra record fields are dropped.
func NewRow(header []string, record []string) Row {
	row := make(Row, len(header))
	for i, column := range header {
		if i >= len(record) {
			break
		}
		row[column] = record[i]
	}
	return row
}
