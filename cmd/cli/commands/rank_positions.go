package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jakechorley/nurse-roster/pkg/core/services"
	"github.com/jakechorley/nurse-roster/pkg/instancefile"
)

// RankPositionsCmd creates the rankPositions command
func RankPositionsCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "rankPositions <instance.yaml>",
		Short: "Rank the positions of an instance file by skill dominance and rarity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scn, err := instancefile.Load(args[0])
			if err != nil {
				return err
			}

			result, err := services.RankScenario(app.Ctx, app.Logger, scn)
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Ranked %d positions of %s in %d layers\n\n",
				len(result.Ranking.Order), scn.Name, result.Ranking.NbRanks)
			fmt.Print(formatRanking(result))
			fmt.Println()

			return nil
		},
	}
}
