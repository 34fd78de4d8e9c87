package csv

import (
	"bufio"
	"io"

	"hermannm.dev/wrap"
)

var DefaultDelimitersToCheck = []rune{',', ';', '\t', '|'}

// DeduceFieldDelimiter finds the delimiter candidate with the most consistent
// per-line count over the first maxRowsToCheck lines of the file.
func DeduceFieldDelimiter(
	csvFile io.ReadSeeker,
	maxRowsToCheck int,
	delimitersToCheck []rune,
) (delimiter rune, err error) {
	// Resets reader position in file before returning, so its data can be read subsequently
	defer func() {
		if _, seekErr := csvFile.Seek(0, io.SeekStart); seekErr != nil {
			err = wrap.Error(seekErr, "failed to reset CSV reader after deducing field delimiter")
		}
	}()

	if len(delimitersToCheck) == 0 {
		delimitersToCheck = DefaultDelimitersToCheck
	}

	candidates := make([]delimiterCandidate, 0, len(delimitersToCheck))
	for _, delimiter := range delimitersToCheck {
		candidates = append(
			candidates,
			delimiterCandidate{delimiter: delimiter, highestCount: -1, lowestCount: -1},
		)
	}

	scanner := bufio.NewScanner(csvFile)
	for i := 0; scanner.Scan() && i < maxRowsToCheck; i++ {
		line := scanner.Text()

		for i, candidate := range candidates {
			candidate.updateCounts(line)
			candidates[i] = candidate
		}
	}

	return bestCandidate(candidates), nil
}

type delimiterCandidate struct {
	delimiter    rune
	highestCount int
	lowestCount  int
}

func (candidate *delimiterCandidate) updateCounts(line string) {
	count := 0
	for _, char := range line {
		if char == candidate.delimiter {
			count++
		}
	}

	if candidate.highestCount == -1 || candidate.highestCount < count {
		candidate.highestCount = count
	}
	if candidate.lowestCount == -1 || candidate.lowestCount > count {
		candidate.lowestCount = count
	}
}

func bestCandidate(candidates []delimiterCandidate) rune {
	var best delimiterCandidate

	for _, candidate := range candidates {
		consistent := candidate.highestCount == candidate.lowestCount
		bestConsistent := best.highestCount == best.lowestCount

		switch {
		case consistent && bestConsistent && candidate.highestCount > best.highestCount:
			best = candidate
		case consistent && !bestConsistent && candidate.highestCount > 0:
			best = candidate
		case !consistent && !bestConsistent &&
			candidate.highestCount > best.highestCount &&
			(candidate.lowestCount != 0 || best.lowestCount == 0):
			best = candidate
		}
	}

	return best.delimiter
}
