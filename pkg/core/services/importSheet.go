package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jakechorley/nurse-roster/internal/config"
	"github.com/jakechorley/nurse-roster/pkg/core/model"
	"github.com/jakechorley/nurse-roster/pkg/core/scenario"
	"github.com/jakechorley/nurse-roster/pkg/instancefile"
)

// InstanceReader reads the rows of a problem instance from a spreadsheet
type InstanceReader interface {
	ListContracts(cfg config.SheetsConfig) ([]model.Contract, error)
	ListNurses(cfg config.SheetsConfig) ([]instancefile.NurseEntry, error)
	ListWishes(cfg config.SheetsConfig) ([]instancefile.WishEntry, error)
}

// ImportSheet builds a scenario from the configured spreadsheet tabs and the
// configured horizon, then stores it. It returns the new id and the scenario.
func ImportSheet(ctx context.Context, reader InstanceReader, store ScenarioWriter, logger *zap.Logger, cfg *config.Config, name string) (string, *scenario.Scenario, error) {
	if err := cfg.ValidateSheets(); err != nil {
		return "", nil, err
	}

	logger.Debug("Reading spreadsheet", zap.String("spreadsheet_id", cfg.Sheets.SpreadsheetID))

	contracts, err := reader.ListContracts(cfg.Sheets)
	if err != nil {
		return "", nil, fmt.Errorf("failed to read contracts: %w", err)
	}
	nurses, err := reader.ListNurses(cfg.Sheets)
	if err != nil {
		return "", nil, fmt.Errorf("failed to read nurses: %w", err)
	}
	wishes, err := reader.ListWishes(cfg.Sheets)
	if err != nil {
		return "", nil, fmt.Errorf("failed to read wishes: %w", err)
	}

	logger.Debug("Spreadsheet read",
		zap.Int("contracts", len(contracts)),
		zap.Int("nurses", len(nurses)),
		zap.Int("wishes", len(wishes)))

	file := instancefile.File{
		Name:         name,
		NbWeeks:      cfg.Horizon.NbWeeks,
		HorizonStart: cfg.Horizon.HorizonStart,
		Skills:       cfg.Horizon.Skills,
		Shifts:       cfg.Horizon.Shifts,
		Contracts:    contracts,
		Nurses:       nurses,
		Wishes:       wishes,
	}

	input, err := file.ToInput()
	if err != nil {
		return "", nil, err
	}
	scn, err := scenario.New(*input)
	if err != nil {
		return "", nil, fmt.Errorf("invalid spreadsheet instance: %w", err)
	}

	id, err := ImportScenario(ctx, store, logger, scn)
	if err != nil {
		return "", nil, err
	}
	return id, scn, nil
}
