// Package tsv tokenizes delimited text tables into raw cell records.
//
// The formats handled here predate CSV conventions: cells are split on the
// delimiter verbatim, `#` lines are data (header conventions are decided by
// the caller), and there is no quoting. encoding/csv would mangle both, so
// records are split line-by-line instead.
package tsv

import (
	"bufio"
	"io"
	"strings"
)

// Scanner line limit; community tables can carry thousands of sample columns.
const maxLine = 16 * 1024 * 1024

// Records reads all lines from r and splits each on delim.
// Trailing carriage returns are stripped; fully empty trailing lines are
// dropped.
func Records(r io.Reader, delim string) ([][]string, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), maxLine)

	var records [][]string
	for sc.Scan() {
		line := strings.TrimSuffix(sc.Text(), "\r")
		records = append(records, strings.Split(line, delim))
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	for len(records) > 0 && isEmpty(records[len(records)-1]) {
		records = records[:len(records)-1]
	}
	return records, nil
}

func isEmpty(cells []string) bool {
	for _, c := range cells {
		if c != "" {
			return false
		}
	}
	return true
}
