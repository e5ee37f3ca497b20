package output

import (
	"strconv"
	"strings"
)

// sqlString renders a single-quoted SQL string literal with embedded
// quotes doubled.
func sqlString(val string) string {
	return "'" + strings.ReplaceAll(val, "'", "''") + "'"
}

// sqlValue renders a value for a known column, typed by column name.
// Unparseable numerics and empty strings become NULL.
func sqlValue(column, value string) string {
	if value == "" {
		return "NULL"
	}

	switch column {
	case "number_of_units", "year_completed":
		if n, err := strconv.Atoi(value); err == nil {
			return strconv.Itoa(n)
		}
		return "NULL"
	case "latitude", "longitude":
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return strconv.FormatFloat(f, 'f', -1, 64)
		}
		return "NULL"
	}

	return sqlString(value)
}
