package db

import (
	"context"

	"github.com/jakechorley/nurse-roster/pkg/core/scenario"
)

// ScenarioStore defines the interface for scenario database operations
type ScenarioStore interface {
	InsertScenario(ctx context.Context, s *scenario.Scenario) (string, error)
	GetScenario(ctx context.Context, id string) (*scenario.Scenario, error)
	ListScenarios(ctx context.Context) ([]ScenarioSummary, error)
}

// RankingStore defines the interface for position ranking database operations
type RankingStore interface {
	SavePositionRanks(ctx context.Context, scenarioID string, ranks []PositionRank) error
	GetPositionRanks(ctx context.Context, scenarioID string) ([]PositionRank, error)
}

// Database defines the interface for all database operations.
// postgres.DB implements this interface.
type Database interface {
	ScenarioStore
	RankingStore
}
