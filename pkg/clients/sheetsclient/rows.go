package sheetsclient

import (
	"fmt"
	"strconv"
	"strings"
)

// table gives access to data rows by header name
type table struct {
	index map[string]int
	rows  [][]interface{}
}

// newTable indexes the header row, failing if any required column is missing
func newTable(raw [][]interface{}, required []string) (*table, error) {
	if len(raw) < 1 {
		return nil, fmt.Errorf("no header row found")
	}

	index := make(map[string]int, len(required))
	for i, cell := range raw[0] {
		if name, ok := cell.(string); ok {
			index[strings.TrimSpace(name)] = i
		}
	}
	for _, field := range required {
		if _, ok := index[field]; !ok {
			return nil, fmt.Errorf("missing required field in header: %s", field)
		}
	}

	return &table{index: index, rows: raw[1:]}, nil
}

// get returns the trimmed cell of a row, "" when the row is short
func (t *table) get(row []interface{}, field string) string {
	i, ok := t.index[field]
	if !ok || i >= len(row) {
		return ""
	}
	switch v := row[i].(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

func (t *table) getInt(row []interface{}, field string) (int, error) {
	s := t.get(row, field)
	if s == "" {
		return 0, fmt.Errorf("%s is empty", field)
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%s: %q is not an integer", field, s)
	}
	return n, nil
}

func (t *table) getBool(row []interface{}, field string) (bool, error) {
	switch strings.ToLower(t.get(row, field)) {
	case "", "no", "false", "n":
		return false, nil
	case "yes", "true", "y":
		return true, nil
	default:
		return false, fmt.Errorf("%s: %q is not yes/no", field, t.get(row, field))
	}
}

// splitList splits a comma separated cell, dropping blanks
func splitList(cell string) []string {
	var items []string
	for _, item := range strings.Split(cell, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
