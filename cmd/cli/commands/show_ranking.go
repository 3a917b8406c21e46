package commands

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jakechorley/nurse-roster/pkg/core/services"
	"github.com/jakechorley/nurse-roster/pkg/db"
)

// ShowRankingCmd creates the showRanking command
func ShowRankingCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "showRanking <scenario_id>",
		Short: "Print the saved position ranking of a stored scenario",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			database, err := app.Database()
			if err != nil {
				return err
			}

			ranks, err := services.GetStoredRanking(app.Ctx, database, app.Logger, args[0])
			if err != nil {
				return err
			}

			fmt.Println()
			fmt.Print(formatStoredRanks(ranks))
			fmt.Println()
			return nil
		},
	}
}

// formatStoredRanks renders saved ranks with their dominance neighbours
func formatStoredRanks(ranks []db.PositionRank) string {
	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "#\tPosition\tRank\tSkills\tAbove\tBelow")
	for _, r := range ranks {
		fmt.Fprintf(w, "%d\t%d\t%d\t%s\t%s\t%s\n",
			r.OrderIndex+1, r.PositionID, r.Rank, joinInts(r.Skills), joinInts(r.Above), joinInts(r.Below))
	}
	w.Flush()
	return b.String()
}

func joinInts(values []int) string {
	if len(values) == 0 {
		return "-"
	}
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprint(v)
	}
	return strings.Join(parts, ",")
}
