package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jakechorley/nurse-roster/pkg/core/model"
	"github.com/jakechorley/nurse-roster/pkg/core/scenario"
	"github.com/jakechorley/nurse-roster/pkg/db"
)

// ErrScenarioNotFound is returned when no scenario has the requested id
var ErrScenarioNotFound = errors.New("postgres: scenario not found")

// InsertScenario stores a scenario with all its entities and returns its new id
func (d *DB) InsertScenario(ctx context.Context, s *scenario.Scenario) (string, error) {
	id := uuid.New().String()

	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var horizonStart *time.Time
	if !s.HorizonStart.IsZero() {
		horizonStart = &s.HorizonStart
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO scenario (id, name, nb_days, horizon_start, skills, shifts)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, id, s.Name, s.NbDays, horizonStart, s.Skills, s.Shifts)
	if err != nil {
		return "", fmt.Errorf("failed to insert scenario: %w", err)
	}

	for _, c := range s.Contracts {
		_, err = tx.Exec(ctx, `
			INSERT INTO contract (scenario_id, contract_id, name, min_total_shifts, max_total_shifts,
				min_cons_days_work, max_cons_days_work, min_cons_days_off, max_cons_days_off,
				max_total_weekends, need_complete_weekends)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		`, id, c.ID, c.Name, c.MinTotalShifts, c.MaxTotalShifts, c.MinConsDaysWork, c.MaxConsDaysWork,
			c.MinConsDaysOff, c.MaxConsDaysOff, c.MaxTotalWeekends, c.NeedCompleteWeekends)
		if err != nil {
			return "", fmt.Errorf("failed to insert contract %d: %w", c.ID, err)
		}
	}

	for _, n := range s.Nurses {
		_, err = tx.Exec(ctx, `
			INSERT INTO nurse (scenario_id, nurse_id, name, contract_id, skills)
			VALUES ($1, $2, $3, $4, $5)
		`, id, n.ID, n.Name, n.Contract.ID, toInt32s(n.Skills))
		if err != nil {
			return "", fmt.Errorf("failed to insert nurse %d: %w", n.ID, err)
		}
	}

	for _, p := range s.Positions {
		_, err = tx.Exec(ctx, `
			INSERT INTO position (scenario_id, position_id, skills)
			VALUES ($1, $2, $3)
		`, id, p.ID, toInt32s(p.Skills))
		if err != nil {
			return "", fmt.Errorf("failed to insert position %d: %w", p.ID, err)
		}
	}

	wishRows := wishOffRows(id, s)
	if len(wishRows) > 0 {
		_, err = tx.CopyFrom(ctx,
			pgx.Identifier{"wish_off"},
			[]string{"scenario_id", "nurse_id", "day", "shift"},
			pgx.CopyFromRows(wishRows),
		)
		if err != nil {
			return "", fmt.Errorf("failed to copy wishes off: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return "", fmt.Errorf("failed to commit scenario: %w", err)
	}
	return id, nil
}

// wishOffRows flattens the preferences into (scenario, nurse, day, shift) rows
func wishOffRows(id string, s *scenario.Scenario) [][]any {
	var rows [][]any
	for _, n := range s.Nurses {
		for day, shifts := range s.Preferences.NurseWishesOff(n.ID) {
			for _, shift := range shifts {
				rows = append(rows, []any{id, n.ID, day, shift})
			}
		}
	}
	return rows
}

// GetScenario loads a scenario and rebuilds it through scenario.New
func (d *DB) GetScenario(ctx context.Context, id string) (*scenario.Scenario, error) {
	input := scenario.Input{}

	var horizonStart *time.Time
	err := d.pool.QueryRow(ctx, `
		SELECT name, nb_days, horizon_start, skills, shifts
		FROM scenario
		WHERE id = $1
	`, id).Scan(&input.Name, &input.NbDays, &horizonStart, &input.Skills, &input.Shifts)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("scenario %s: %w", id, ErrScenarioNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query scenario: %w", err)
	}
	if horizonStart != nil {
		input.HorizonStart = horizonStart.UTC()
	}

	if input.Contracts, err = d.getContracts(ctx, id); err != nil {
		return nil, err
	}
	if input.Nurses, err = d.getNurses(ctx, id); err != nil {
		return nil, err
	}
	if input.Positions, err = d.getPositions(ctx, id); err != nil {
		return nil, err
	}
	if input.Wishes, err = d.getWishes(ctx, id); err != nil {
		return nil, err
	}

	s, err := scenario.New(input)
	if err != nil {
		return nil, fmt.Errorf("stored scenario %s is invalid: %w", id, err)
	}
	return s, nil
}

func (d *DB) getContracts(ctx context.Context, id string) ([]model.Contract, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT contract_id, name, min_total_shifts, max_total_shifts, min_cons_days_work, max_cons_days_work,
			min_cons_days_off, max_cons_days_off, max_total_weekends, need_complete_weekends
		FROM contract
		WHERE scenario_id = $1
		ORDER BY contract_id
	`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query contracts: %w", err)
	}
	defer rows.Close()

	var contracts []model.Contract
	for rows.Next() {
		var c model.Contract
		if err := rows.Scan(&c.ID, &c.Name, &c.MinTotalShifts, &c.MaxTotalShifts, &c.MinConsDaysWork,
			&c.MaxConsDaysWork, &c.MinConsDaysOff, &c.MaxConsDaysOff, &c.MaxTotalWeekends,
			&c.NeedCompleteWeekends); err != nil {
			return nil, fmt.Errorf("failed to scan contract: %w", err)
		}
		contracts = append(contracts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating contracts: %w", err)
	}
	return contracts, nil
}

func (d *DB) getNurses(ctx context.Context, id string) ([]scenario.NurseInput, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT nurse_id, name, contract_id, skills
		FROM nurse
		WHERE scenario_id = $1
		ORDER BY nurse_id
	`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query nurses: %w", err)
	}
	defer rows.Close()

	var nurses []scenario.NurseInput
	for rows.Next() {
		var n scenario.NurseInput
		var skills []int32
		if err := rows.Scan(&n.ID, &n.Name, &n.ContractID, &skills); err != nil {
			return nil, fmt.Errorf("failed to scan nurse: %w", err)
		}
		n.Skills = toInts(skills)
		nurses = append(nurses, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating nurses: %w", err)
	}
	return nurses, nil
}

func (d *DB) getPositions(ctx context.Context, id string) ([][]int, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT skills
		FROM position
		WHERE scenario_id = $1
		ORDER BY position_id
	`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query positions: %w", err)
	}
	defer rows.Close()

	var positions [][]int
	for rows.Next() {
		var skills []int32
		if err := rows.Scan(&skills); err != nil {
			return nil, fmt.Errorf("failed to scan position: %w", err)
		}
		positions = append(positions, toInts(skills))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating positions: %w", err)
	}
	return positions, nil
}

func (d *DB) getWishes(ctx context.Context, id string) ([]scenario.Wish, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT nurse_id, day, shift
		FROM wish_off
		WHERE scenario_id = $1
		ORDER BY nurse_id, day, shift
	`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query wishes off: %w", err)
	}
	defer rows.Close()

	var wishes []scenario.Wish
	for rows.Next() {
		var w scenario.Wish
		var shift int
		if err := rows.Scan(&w.Nurse, &w.Day, &shift); err != nil {
			return nil, fmt.Errorf("failed to scan wish off: %w", err)
		}
		w.Shift = &shift
		wishes = append(wishes, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating wishes off: %w", err)
	}
	return wishes, nil
}

// ListScenarios retrieves a summary of every stored scenario, newest first
func (d *DB) ListScenarios(ctx context.Context) ([]db.ScenarioSummary, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT s.id, s.name, s.nb_days, s.horizon_start, s.created_at,
			(SELECT COUNT(*) FROM nurse n WHERE n.scenario_id = s.id)
		FROM scenario s
		ORDER BY s.created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query scenarios: %w", err)
	}
	defer rows.Close()

	var summaries []db.ScenarioSummary
	for rows.Next() {
		var s db.ScenarioSummary
		var horizonStart *time.Time
		if err := rows.Scan(&s.ID, &s.Name, &s.NbDays, &horizonStart, &s.CreatedAt, &s.NbNurses); err != nil {
			return nil, fmt.Errorf("failed to scan scenario: %w", err)
		}
		if horizonStart != nil {
			s.HorizonStart = horizonStart.Format("2006-01-02")
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating scenarios: %w", err)
	}
	return summaries, nil
}

func toInt32s(values []int) []int32 {
	result := make([]int32, len(values))
	for i, v := range values {
		result[i] = int32(v)
	}
	return result
}

func toInts(values []int32) []int {
	result := make([]int, len(values))
	for i, v := range values {
		result[i] = int(v)
	}
	return result
}
