package view

import (
	"math"
	"sort"
	"strconv"
	"strings"
)

// Sort orders rows by column col. Numeric columns compare by value and
// put empty cells first; ties keep their previous order.
func Sort(rows [][]string, cols []Column, col int, asc bool) {
	if col < 0 || col >= len(cols) {
		return
	}
	numeric := cols[col].Numeric

	sort.SliceStable(rows, func(i, j int) bool {
		a, b := cell(rows[i], col), cell(rows[j], col)
		if numeric {
			x, y := number(a), number(b)
			if x == y {
				return false
			}
			if asc {
				return x < y
			}
			return x > y
		}
		la, lb := strings.ToLower(a), strings.ToLower(b)
		if la == lb {
			return false
		}
		if asc {
			return la < lb
		}
		return la > lb
	})
}

func cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}

// number parses "12.50 MB", "3.00%" and plain integers.
func number(s string) float64 {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "%")
	s = strings.TrimSuffix(s, " MB")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.Inf(-1)
	}
	return v
}

// Filter keeps rows matching query. "column:value" restricts the match to
// one column when the prefix names a column; otherwise the whole query is
// matched against every cell. Matching is a case-insensitive substring test.
func Filter(rows [][]string, cols []Column, query string) [][]string {
	query = strings.TrimSpace(strings.ToLower(query))
	if query == "" {
		return rows
	}

	col := -1
	value := query
	if prefix, rest, ok := strings.Cut(query, ":"); ok {
		for i, c := range cols {
			if squash(c.Title) == squash(prefix) {
				col, value = i, strings.TrimSpace(rest)
				break
			}
		}
	}

	var out [][]string
	for _, row := range rows {
		if matches(row, col, value) {
			out = append(out, row)
		}
	}
	return out
}

func matches(row []string, col int, value string) bool {
	if col >= 0 {
		return strings.Contains(strings.ToLower(cell(row, col)), value)
	}
	for _, c := range row {
		if strings.Contains(strings.ToLower(c), value) {
			return true
		}
	}
	return false
}
