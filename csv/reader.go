package csv

import (
	"encoding/csv"
	"errors"
	"io"

	"hermannm.dev/wrap"
)

// Reader reads survey dataset CSV files. The field delimiter is deduced from the
// file's first rows, since the upstream survey exports are not consistent about it.
type Reader struct {
	inner      *csv.Reader
	file       io.ReadSeeker
	currentRow int
}

func NewReader(csvFile io.ReadSeeker) (*Reader, error) {
	delimiter, err := DeduceFieldDelimiter(csvFile, 20, DefaultDelimitersToCheck)
	if err != nil {
		return nil, err
	}

	return &Reader{inner: newInnerReader(csvFile, delimiter), file: csvFile, currentRow: 0}, nil
}

func newInnerReader(csvFile io.ReadSeeker, delimiter rune) *csv.Reader {
	reader := csv.NewReader(csvFile)
	reader.Comma = delimiter
	// Survey exports occasionally carry ragged trailing fields.
	reader.FieldsPerRecord = -1
	return reader
}

func (reader *Reader) ReadRow() (row []string, rowNumber int, done bool, err error) {
	reader.currentRow++

	row, err = reader.inner.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, 0, true, nil
		} else {
			return nil, 0, false, err
		}
	}

	return row, reader.currentRow, false, nil
}

func (reader *Reader) ReadHeaderRow() (row []string, err error) {
	row, rowNumber, done, err := reader.ReadRow()
	if err != nil {
		return nil, err
	}
	if rowNumber != 1 {
		return nil, errors.New("tried to read header row after reading previous rows")
	}
	if done {
		return nil, errors.New("csv file ended before header row")
	}
	return row, nil
}

// ReadAll reads the header row followed by every record in the file.
func (reader *Reader) ReadAll() (header []string, records [][]string, err error) {
	header, err = reader.ReadHeaderRow()
	if err != nil {
		return nil, nil, wrap.Error(err, "failed to read CSV header row")
	}

	for {
		row, rowNumber, done, err := reader.ReadRow()
		if done {
			return header, records, nil
		}
		if err != nil {
			return nil, nil, wrap.Errorf(err, "failed to read CSV row %d", rowNumber)
		}

		record := make([]string, len(row))
		copy(record, row)
		records = append(records, record)
	}
}

func (reader *Reader) ResetReadPosition() error {
	if _, err := reader.file.Seek(0, io.SeekStart); err != nil {
		return err
	}

	reader.currentRow = 0
	reader.inner = newInnerReader(reader.file, reader.inner.Comma)
	return nil
}
