// Package cli implements the planline command-line interface.
//
// Commands are thin adapters over the service layer: they parse flags,
// resolve human-friendly identifiers to UUIDs, call a service, and render
// the result with lipgloss. The timeline command additionally offers an
// interactive Bubbletea viewer.
package cli

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/mwhitford/planline/internal/service"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Projects    service.ProjectService
	Phases      service.PhaseService
	Subphases   service.SubphaseService
	Assignments service.AssignmentService
	Tree        service.TreeService
	Deps        service.DependencyService
	Schedule    service.ScheduleService
	Timeline    service.TimelineService
	Critical    service.CriticalPathService
	Import      service.ImportService

	// IsInteractive reports whether stdin is attached to a terminal.
	// Nil means "assume non-interactive".
	IsInteractive func() bool
}

func (app *App) interactive() bool {
	return app.IsInteractive != nil && app.IsInteractive()
}

// NewRootCmd creates the top-level "planline" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:   "planline",
		Short: "Project timeline planner with typed dependencies and cascades",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := log.WarnLevel
			if verbose {
				level = log.DebugLevel
			}
			logger := newLogger(os.Stderr, level)
			cmd.SetContext(withLogger(cmd.Context(), logger))
		},
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	root.AddCommand(
		newProjectCmd(app),
		newPhaseCmd(app),
		newSubphaseCmd(app),
		newAssignCmd(app),
		newDepCmd(app),
		newMoveCmd(app),
		newTimelineCmd(app),
		newCriticalCmd(app),
		newCompletionCmd(app),
		newImportCmd(app),
	)

	return root
}
