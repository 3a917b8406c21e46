package sheetsclient

import (
	"fmt"

	"github.com/jakechorley/nurse-roster/internal/config"
	"github.com/jakechorley/nurse-roster/pkg/instancefile"
)

// Expected column names in the wishes sheet. Shift may be left blank for a whole day off.
var wishFields = []string{
	"Nurse",
	"Day",
	"Shift",
}

// ListWishes retrieves and parses the wishes-off tab
func (c *Client) ListWishes(cfg config.SheetsConfig) ([]instancefile.WishEntry, error) {
	values, err := c.readTab(cfg.SpreadsheetID, cfg.WishesTab)
	if err != nil {
		return nil, err
	}

	wishes, err := parseWishes(values)
	if err != nil {
		return nil, fmt.Errorf("failed to parse wishes: %w", err)
	}
	return wishes, nil
}

func parseWishes(raw [][]interface{}) ([]instancefile.WishEntry, error) {
	t, err := newTable(raw, wishFields)
	if err != nil {
		return nil, err
	}

	wishes := make([]instancefile.WishEntry, 0, len(t.rows))
	for i, row := range t.rows {
		nurse := t.get(row, "Nurse")
		if nurse == "" {
			continue
		}

		day, err := t.getInt(row, "Day")
		if err != nil {
			return nil, fmt.Errorf("wish of %q in row %d: %w", nurse, i+2, err)
		}
		if day < 0 {
			return nil, fmt.Errorf("wish of %q in row %d: negative day %d", nurse, i+2, day)
		}

		wishes = append(wishes, instancefile.WishEntry{
			Nurse: nurse,
			Day:   day,
			Shift: t.get(row, "Shift"),
		})
	}

	return wishes, nil
}
