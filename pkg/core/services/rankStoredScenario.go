package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jakechorley/nurse-roster/pkg/core/scenario"
	"github.com/jakechorley/nurse-roster/pkg/db"
)

// RankStoredScenarioStore is the store needed to rank a stored scenario
type RankStoredScenarioStore interface {
	GetScenario(ctx context.Context, id string) (*scenario.Scenario, error)
	SavePositionRanks(ctx context.Context, scenarioID string, ranks []db.PositionRank) error
}

// RankStoredScenario loads a scenario, ranks its positions and persists the ranks,
// replacing any previous ranking of the same scenario
func RankStoredScenario(ctx context.Context, store RankStoredScenarioStore, logger *zap.Logger, scenarioID string) (*RankResult, error) {
	logger.Debug("Loading scenario", zap.String("id", scenarioID))

	scn, err := store.GetScenario(ctx, scenarioID)
	if err != nil {
		return nil, fmt.Errorf("failed to load scenario %s: %w", scenarioID, err)
	}

	result, err := RankScenario(ctx, logger, scn)
	if err != nil {
		return nil, err
	}

	ranks := db.PositionRanksFromResult(scenarioID, scn, result.Ranking)
	if err := store.SavePositionRanks(ctx, scenarioID, ranks); err != nil {
		return nil, fmt.Errorf("failed to save position ranks: %w", err)
	}

	logger.Info("Position ranks saved", zap.String("id", scenarioID), zap.Int("count", len(ranks)))
	return result, nil
}

// StoredRankingReader is the store needed to read a saved ranking
type StoredRankingReader interface {
	GetPositionRanks(ctx context.Context, scenarioID string) ([]db.PositionRank, error)
}

// GetStoredRanking returns the saved ranking of a scenario, in ranking order.
// It fails if the scenario has never been ranked.
func GetStoredRanking(ctx context.Context, store StoredRankingReader, logger *zap.Logger, scenarioID string) ([]db.PositionRank, error) {
	ranks, err := store.GetPositionRanks(ctx, scenarioID)
	if err != nil {
		return nil, fmt.Errorf("failed to get position ranks: %w", err)
	}
	if len(ranks) == 0 {
		return nil, fmt.Errorf("scenario %s has not been ranked yet", scenarioID)
	}
	logger.Debug("Loaded stored ranking", zap.String("id", scenarioID), zap.Int("positions", len(ranks)))
	return ranks, nil
}
