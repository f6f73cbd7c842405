package google

import (
	"fmt"
	"strings"
)

// findKey locates key in column A of a values matrix as returned by the
// Sheets API. row is 1-based, matching A1 notation. The last row wins if a key
// appears twice.
func findKey(rows [][]any, key string) (row int, value string, ok bool) {
	for i, r := range rows {
		if len(r) == 0 || cell(r, 0) != key {
			continue
		}
		row, value, ok = i+1, cell(r, 1), true
	}
	return row, value, ok
}

func cell(r []any, idx int) string {
	if idx >= len(r) || r[idx] == nil {
		return ""
	}
	return fmt.Sprint(r[idx])
}

// quoteSheet quotes a tab name for use in A1 notation.
func quoteSheet(name string) string {
	return "'" + strings.ReplaceAll(name, "'", "''") + "'"
}
