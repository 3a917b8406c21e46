package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jakechorley/nurse-roster/pkg/core/services"
)

// ImportSheetCmd creates the importSheet command
func ImportSheetCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "importSheet <name>",
		Short: "Build a scenario from the configured spreadsheet and store it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.Config()
			if err != nil {
				return err
			}
			client, err := app.SheetsClient()
			if err != nil {
				return err
			}
			database, err := app.Database()
			if err != nil {
				return err
			}

			id, scn, err := services.ImportSheet(app.Ctx, client, database, app.Logger, cfg, args[0])
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Spreadsheet imported successfully!\n\n")
			fmt.Printf("Scenario ID: %s\n", id)
			fmt.Printf("Contracts:   %d\n", len(scn.Contracts))
			fmt.Printf("Nurses:      %d\n", len(scn.Nurses))
			fmt.Printf("Positions:   %d\n", len(scn.Positions))
			fmt.Printf("Days:        %d\n\n", scn.NbDays)
			return nil
		},
	}
}
