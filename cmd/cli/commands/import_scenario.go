package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jakechorley/nurse-roster/pkg/core/services"
	"github.com/jakechorley/nurse-roster/pkg/instancefile"
)

// ImportScenarioCmd creates the importScenario command
func ImportScenarioCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "importScenario <instance.yaml>",
		Short: "Store an instance file in the database",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scn, err := instancefile.Load(args[0])
			if err != nil {
				return err
			}

			database, err := app.Database()
			if err != nil {
				return err
			}

			id, err := services.ImportScenario(app.Ctx, database, app.Logger, scn)
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Scenario imported successfully!\n\n")
			fmt.Printf("Scenario ID: %s\n", id)
			fmt.Printf("Name:        %s\n", scn.Name)
			fmt.Printf("Nurses:      %d\n", len(scn.Nurses))
			fmt.Printf("Days:        %d\n\n", scn.NbDays)
			return nil
		},
	}
}

// ListScenariosCmd creates the listScenarios command
func ListScenariosCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "listScenarios",
		Short: "List the stored scenarios",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			database, err := app.Database()
			if err != nil {
				return err
			}

			summaries, err := services.ListScenarios(app.Ctx, database, app.Logger)
			if err != nil {
				return err
			}

			if len(summaries) == 0 {
				fmt.Println("No scenarios stored yet")
				return nil
			}
			fmt.Println()
			fmt.Print(formatSummaries(summaries))
			fmt.Println()
			return nil
		},
	}
}
