package sheetsclient

import (
	"fmt"

	"github.com/jakechorley/nurse-roster/internal/config"
	"github.com/jakechorley/nurse-roster/pkg/instancefile"
)

// Expected column names in the nurses sheet
var nurseFields = []string{
	"Name",
	"Contract",
	"Skills",
}

// ListNurses retrieves and parses the nurses tab
func (c *Client) ListNurses(cfg config.SheetsConfig) ([]instancefile.NurseEntry, error) {
	values, err := c.readTab(cfg.SpreadsheetID, cfg.NursesTab)
	if err != nil {
		return nil, err
	}

	nurses, err := parseNurses(values)
	if err != nil {
		return nil, fmt.Errorf("failed to parse nurses: %w", err)
	}
	return nurses, nil
}

// parseNurses converts raw rows into nurse entries; Skills is a comma separated list
func parseNurses(raw [][]interface{}) ([]instancefile.NurseEntry, error) {
	t, err := newTable(raw, nurseFields)
	if err != nil {
		return nil, err
	}

	nurses := make([]instancefile.NurseEntry, 0, len(t.rows))
	for i, row := range t.rows {
		name := t.get(row, "Name")
		if name == "" {
			continue
		}

		entry := instancefile.NurseEntry{
			Name:     name,
			Contract: t.get(row, "Contract"),
			Skills:   splitList(t.get(row, "Skills")),
		}
		if entry.Contract == "" {
			return nil, fmt.Errorf("nurse %q in row %d has no contract", name, i+2)
		}
		if len(entry.Skills) == 0 {
			return nil, fmt.Errorf("nurse %q in row %d has no skills", name, i+2)
		}

		nurses = append(nurses, entry)
	}

	return nurses, nil
}
