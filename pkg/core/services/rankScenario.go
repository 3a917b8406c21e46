package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jakechorley/nurse-roster/pkg/core/ranking"
	"github.com/jakechorley/nurse-roster/pkg/core/scenario"
)

// RankResult represents the ranking of a scenario's positions
type RankResult struct {
	Scenario *scenario.Scenario
	Ranking  *ranking.Result
	// NursesByPosition lists the nurses holding each position
	NursesByPosition map[int][]int
}

// RankScenario ranks every position of the scenario by skill dominance and rarity
func RankScenario(ctx context.Context, logger *zap.Logger, scn *scenario.Scenario) (*RankResult, error) {
	if scn == nil {
		return nil, fmt.Errorf("scenario is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	logger.Debug("Ranking positions",
		zap.String("scenario", scn.Name),
		zap.Int("positions", len(scn.Positions)),
		zap.Int("nurses", len(scn.Nurses)))

	result, err := scn.Rank()
	if err != nil {
		return nil, fmt.Errorf("failed to rank positions of %s: %w", scn.Name, err)
	}

	for rank, ids := range result.ByRank() {
		logger.Debug("Rank layer", zap.Int("rank", rank), zap.Ints("positions", ids))
	}
	logger.Info("Positions ranked",
		zap.String("scenario", scn.Name),
		zap.Int("positions", len(result.Order)),
		zap.Int("ranks", result.NbRanks))

	return &RankResult{
		Scenario:         scn,
		Ranking:          result,
		NursesByPosition: scn.NursesByPosition(),
	}, nil
}
