package db

import (
	"time"

	"github.com/jakechorley/nurse-roster/pkg/core/ranking"
	"github.com/jakechorley/nurse-roster/pkg/core/scenario"
)

// ScenarioSummary represents a stored scenario without its entities
type ScenarioSummary struct {
	ID           string
	Name         string
	NbDays       int
	HorizonStart string // empty when unknown
	NbNurses     int
	CreatedAt    time.Time
}

// PositionRank represents the stored ranking of one position
type PositionRank struct {
	ScenarioID string
	PositionID int
	Skills     []int
	Rank       int
	OrderIndex int
	Below      []int
	Above      []int
}

// PositionRanksFromResult flattens a ranking result into records, in ranking order
func PositionRanksFromResult(scenarioID string, s *scenario.Scenario, result *ranking.Result) []PositionRank {
	skillsByID := make(map[int][]int, len(s.Positions))
	for _, p := range s.Positions {
		skillsByID[p.ID] = p.Skills
	}

	ranks := make([]PositionRank, 0, len(result.Order))
	for i, id := range result.Order {
		node := result.Node(id)
		ranks = append(ranks, PositionRank{
			ScenarioID: scenarioID,
			PositionID: id,
			Skills:     skillsByID[id],
			Rank:       node.Rank,
			OrderIndex: i,
			Below:      node.Below,
			Above:      node.Above,
		})
	}
	return ranks
}
