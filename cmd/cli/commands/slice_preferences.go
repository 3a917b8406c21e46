package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jakechorley/nurse-roster/pkg/core/scenario"
	"github.com/jakechorley/nurse-roster/pkg/core/services"
	"github.com/jakechorley/nurse-roster/pkg/instancefile"
)

// SlicePreferencesCmd creates the slicePreferences command
func SlicePreferencesCmd(app *AppContext) *cobra.Command {
	var appendFiles []string

	cmd := &cobra.Command{
		Use:   "slicePreferences <instance.yaml> <begin> [end]",
		Short: "Restrict the wishes off of an instance to the days in [begin, end)",
		Long: `Restrict the wishes off of an instance to the days in [begin, end).
Instances given with --append are added after the horizon before slicing,
so a window can span several consecutive instance files.`,
		Args: cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			begin, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("begin must be a number: %w", err)
			}
			end := -1
			if len(args) == 3 {
				if end, err = strconv.Atoi(args[2]); err != nil {
					return fmt.Errorf("end must be a number: %w", err)
				}
			}

			scn, err := instancefile.Load(args[0])
			if err != nil {
				return err
			}

			following := make([]*scenario.Scenario, 0, len(appendFiles))
			for _, path := range appendFiles {
				next, err := instancefile.Load(path)
				if err != nil {
					return err
				}
				following = append(following, next)
			}
			if err := services.ExtendHorizon(app.Ctx, app.Logger, scn, following...); err != nil {
				return err
			}

			sliced, err := services.SlicePreferences(app.Ctx, app.Logger, scn, begin, end)
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Kept %d of %d days\n\n", sliced.NbDays, scn.NbDays)
			fmt.Print(sliced.Preferences.String())
			fmt.Println()
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&appendFiles, "append", nil, "Instance files appended to the horizon, in order")
	return cmd
}
