package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jakechorley/nurse-roster/pkg/core/scenario"
	"github.com/jakechorley/nurse-roster/pkg/db"
)

// ScenarioWriter is the store needed to import scenarios
type ScenarioWriter interface {
	InsertScenario(ctx context.Context, s *scenario.Scenario) (string, error)
}

// ImportScenario stores a scenario and returns its new id
func ImportScenario(ctx context.Context, store ScenarioWriter, logger *zap.Logger, scn *scenario.Scenario) (string, error) {
	logger.Debug("Importing scenario",
		zap.String("name", scn.Name),
		zap.Int("nurses", len(scn.Nurses)),
		zap.Int("nb_days", scn.NbDays))

	id, err := store.InsertScenario(ctx, scn)
	if err != nil {
		return "", fmt.Errorf("failed to insert scenario %s: %w", scn.Name, err)
	}

	logger.Info("Scenario imported", zap.String("id", id), zap.String("name", scn.Name))
	return id, nil
}

// ScenarioLister is the store needed to list scenarios
type ScenarioLister interface {
	ListScenarios(ctx context.Context) ([]db.ScenarioSummary, error)
}

// ListScenarios returns every stored scenario, most recent first
func ListScenarios(ctx context.Context, store ScenarioLister, logger *zap.Logger) ([]db.ScenarioSummary, error) {
	summaries, err := store.ListScenarios(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list scenarios: %w", err)
	}
	logger.Debug("Listed scenarios", zap.Int("count", len(summaries)))
	return summaries, nil
}
