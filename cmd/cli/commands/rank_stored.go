package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jakechorley/nurse-roster/pkg/core/services"
)

// RankStoredCmd creates the rankStored command
func RankStoredCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "rankStored <scenario_id>",
		Short: "Rank the positions of a stored scenario and save the ranking",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			database, err := app.Database()
			if err != nil {
				return err
			}

			result, err := services.RankStoredScenario(app.Ctx, database, app.Logger, args[0])
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Ranking of %s saved (%d positions, %d layers)\n\n",
				result.Scenario.Name, len(result.Ranking.Order), result.Ranking.NbRanks)
			fmt.Print(formatRanking(result))
			fmt.Println()
			return nil
		},
	}
}
