package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.json>",
		Short: "Import a project from a JSON schema file",
		Long: "Validates and imports a whole project in one transaction: phases,\n" +
			"nested subphases, dependency edges, and staff/equipment assignments.\n" +
			"A validation or insert failure imports nothing.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			result, err := app.Import.ImportProject(ctx, args[0])
			if err != nil {
				return err
			}

			loggerFrom(ctx).Debug("project imported", "id", result.Project.ID)
			fmt.Fprintf(cmd.OutOrStdout(),
				"Imported %q: %d phases, %d subphases, %d dependencies, %d assignments\n",
				result.Project.Name, result.PhaseCount, result.SubphaseCount,
				result.DependencyCount, result.AssignmentCount)
			return nil
		},
	}
}
