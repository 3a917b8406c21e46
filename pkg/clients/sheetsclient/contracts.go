package sheetsclient

import (
	"fmt"

	"github.com/jakechorley/nurse-roster/internal/config"
	"github.com/jakechorley/nurse-roster/pkg/core/model"
)

// Expected column names in the contracts sheet, in constructor order
var contractFields = []string{
	"Name",
	"Min total shifts",
	"Max total shifts",
	"Min consecutive days worked",
	"Max consecutive days worked",
	"Min consecutive days off",
	"Max consecutive days off",
	"Max weekends",
	"Complete weekends",
}

// ListContracts retrieves and parses the contracts tab
func (c *Client) ListContracts(cfg config.SheetsConfig) ([]model.Contract, error) {
	values, err := c.readTab(cfg.SpreadsheetID, cfg.ContractsTab)
	if err != nil {
		return nil, err
	}

	contracts, err := parseContracts(values)
	if err != nil {
		return nil, fmt.Errorf("failed to parse contracts: %w", err)
	}
	return contracts, nil
}

// parseContracts converts raw rows into contracts numbered in row order
func parseContracts(raw [][]interface{}) ([]model.Contract, error) {
	t, err := newTable(raw, contractFields)
	if err != nil {
		return nil, err
	}

	contracts := make([]model.Contract, 0, len(t.rows))
	for i, row := range t.rows {
		name := t.get(row, "Name")
		// Skip empty rows
		if name == "" {
			continue
		}

		bounds := make([]int, 0, 7)
		for _, field := range contractFields[1:8] {
			n, err := t.getInt(row, field)
			if err != nil {
				return nil, fmt.Errorf("contract %q in row %d: %w", name, i+2, err)
			}
			bounds = append(bounds, n)
		}
		complete, err := t.getBool(row, "Complete weekends")
		if err != nil {
			return nil, fmt.Errorf("contract %q in row %d: %w", name, i+2, err)
		}

		contracts = append(contracts, *model.NewContract(len(contracts), name,
			bounds[0], bounds[1], bounds[2], bounds[3], bounds[4], bounds[5], bounds[6], complete))
	}

	return contracts, nil
}
