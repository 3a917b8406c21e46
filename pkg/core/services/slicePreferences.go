package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jakechorley/nurse-roster/pkg/core/scenario"
)

// SlicePreferences returns a copy of the scenario whose horizon is restricted
// to the days in [begin, end). end < 0 means the end of the horizon.
func SlicePreferences(ctx context.Context, logger *zap.Logger, scn *scenario.Scenario, begin, end int) (*scenario.Scenario, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if end < 0 {
		end = scn.NbDays
	}

	logger.Debug("Slicing preferences",
		zap.String("scenario", scn.Name),
		zap.Int("begin", begin),
		zap.Int("end", end),
		zap.Int("nb_days", scn.NbDays))

	sliced, err := scn.Slice(begin, end)
	if err != nil {
		return nil, fmt.Errorf("failed to slice days [%d, %d) of %s: %w", begin, end, scn.Name, err)
	}

	logger.Info("Preferences sliced", zap.String("scenario", scn.Name), zap.Int("nb_days", sliced.NbDays))
	return sliced, nil
}

// ExtendHorizon appends the days of each following scenario to the horizon of
// base, in order. base is modified in place.
func ExtendHorizon(ctx context.Context, logger *zap.Logger, base *scenario.Scenario, following ...*scenario.Scenario) error {
	for _, next := range following {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := base.Append(next); err != nil {
			return fmt.Errorf("failed to append %s to %s: %w", next.Name, base.Name, err)
		}
		logger.Debug("Horizon extended",
			zap.String("scenario", base.Name),
			zap.String("appended", next.Name),
			zap.Int("nb_days", base.NbDays))
	}
	return nil
}
