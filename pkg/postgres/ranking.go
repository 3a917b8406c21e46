package postgres

import (
	"context"
	"fmt"

	"github.com/jakechorley/nurse-roster/pkg/db"
)

// SavePositionRanks replaces the stored ranking of a scenario
func (d *DB) SavePositionRanks(ctx context.Context, scenarioID string, ranks []db.PositionRank) error {
	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `DELETE FROM position_rank WHERE scenario_id = $1`, scenarioID)
	if err != nil {
		return fmt.Errorf("failed to clear position ranks: %w", err)
	}

	for _, r := range ranks {
		_, err = tx.Exec(ctx, `
			INSERT INTO position_rank (scenario_id, position_id, rank, order_index, below, above)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, scenarioID, r.PositionID, r.Rank, r.OrderIndex, toInt32s(r.Below), toInt32s(r.Above))
		if err != nil {
			return fmt.Errorf("failed to insert rank of position %d: %w", r.PositionID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit position ranks: %w", err)
	}
	return nil
}

// GetPositionRanks retrieves the stored ranking of a scenario in ranking order
func (d *DB) GetPositionRanks(ctx context.Context, scenarioID string) ([]db.PositionRank, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT r.position_id, p.skills, r.rank, r.order_index, r.below, r.above
		FROM position_rank r
		JOIN position p ON p.scenario_id = r.scenario_id AND p.position_id = r.position_id
		WHERE r.scenario_id = $1
		ORDER BY r.order_index
	`, scenarioID)
	if err != nil {
		return nil, fmt.Errorf("failed to query position ranks: %w", err)
	}
	defer rows.Close()

	var ranks []db.PositionRank
	for rows.Next() {
		r := db.PositionRank{ScenarioID: scenarioID}
		var skills, below, above []int32
		if err := rows.Scan(&r.PositionID, &skills, &r.Rank, &r.OrderIndex, &below, &above); err != nil {
			return nil, fmt.Errorf("failed to scan position rank: %w", err)
		}
		r.Skills = toInts(skills)
		r.Below = toInts(below)
		r.Above = toInts(above)
		ranks = append(ranks, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating position ranks: %w", err)
	}
	return ranks, nil
}
