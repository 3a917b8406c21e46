package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jakechorley/nurse-roster/pkg/core/scenario"
	"github.com/jakechorley/nurse-roster/pkg/instancefile"
)

// ShowScenarioCmd creates the showScenario command
func ShowScenarioCmd(app *AppContext) *cobra.Command {
	var stored bool

	cmd := &cobra.Command{
		Use:   "showScenario <instance.yaml | scenario_id>",
		Short: "Print every entity of a scenario",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var scn *scenario.Scenario
			if stored {
				database, err := app.Database()
				if err != nil {
					return err
				}
				if scn, err = database.GetScenario(app.Ctx, args[0]); err != nil {
					return err
				}
			} else {
				var err error
				if scn, err = instancefile.Load(args[0]); err != nil {
					return err
				}
			}

			fmt.Println()
			fmt.Print(scn.String())
			fmt.Println()
			return nil
		},
	}

	cmd.Flags().BoolVar(&stored, "stored", false, "Treat the argument as the id of a stored scenario")
	return cmd
}
