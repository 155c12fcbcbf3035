package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mwhitford/planline/internal/cli/formatter"
	"github.com/mwhitford/planline/internal/dateutil"
	"github.com/mwhitford/planline/internal/domain"
)

func newAssignCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "assign",
		Short: "Manage staff and equipment assignments",
	}
	cmd.AddCommand(
		newAssignStaffCmd(app),
		newAssignEquipmentCmd(app),
		newAssignListCmd(app),
	)
	return cmd
}

// resolveOwner maps the --on flag to the assignment's owner columns. Absent
// --on means the assignment hangs on the project itself.
func resolveOwner(cmd *cobra.Command, app *App, project, on string) (projID, phaseID, subID *string, err error) {
	ctx := cmd.Context()

	projectID, err := resolveProjectID(ctx, app, project)
	if err != nil {
		return nil, nil, nil, err
	}
	if on == "" {
		return &projectID, nil, nil, nil
	}

	match, err := resolveEntity(ctx, app, projectID, on)
	if err != nil {
		return nil, nil, nil, err
	}
	if match.Type == domain.EntityPhase {
		return nil, &match.ID, nil, nil
	}
	return nil, nil, &match.ID, nil
}

func newAssignStaffCmd(app *App) *cobra.Command {
	var project, on, person, role, start, end string

	cmd := &cobra.Command{
		Use:   "staff",
		Short: "Assign a person to a project, phase, or subphase",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			projID, phaseID, subID, err := resolveOwner(cmd, app, project, on)
			if err != nil {
				return err
			}
			startDate, err := dateutil.ParseISO(start)
			if err != nil {
				return fmt.Errorf("parsing --start: %w", err)
			}
			endDate, err := dateutil.ParseISO(end)
			if err != nil {
				return fmt.Errorf("parsing --end: %w", err)
			}

			a := &domain.StaffAssignment{
				ProjectID:  projID,
				PhaseID:    phaseID,
				SubphaseID: subID,
				PersonName: person,
				Role:       role,
				StartDate:  startDate,
				EndDate:    endDate,
			}
			if err := app.Assignments.CreateStaff(ctx, a); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Assigned %s (%s)\n", a.PersonName, a.ID[:8])
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project name or ID")
	cmd.Flags().StringVar(&on, "on", "", "Phase or subphase to assign to (default: project)")
	cmd.Flags().StringVar(&person, "person", "", "Person name")
	cmd.Flags().StringVar(&role, "role", "", "Role")
	cmd.Flags().StringVar(&start, "start", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "End date (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("person")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")

	return cmd
}

func newAssignEquipmentCmd(app *App) *cobra.Command {
	var project, on, equipment, start, end string

	cmd := &cobra.Command{
		Use:   "equipment",
		Short: "Book equipment on a project, phase, or subphase",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			projID, phaseID, subID, err := resolveOwner(cmd, app, project, on)
			if err != nil {
				return err
			}
			startDate, err := dateutil.ParseISO(start)
			if err != nil {
				return fmt.Errorf("parsing --start: %w", err)
			}
			endDate, err := dateutil.ParseISO(end)
			if err != nil {
				return fmt.Errorf("parsing --end: %w", err)
			}

			a := &domain.EquipmentAssignment{
				ProjectID:     projID,
				PhaseID:       phaseID,
				SubphaseID:    subID,
				EquipmentName: equipment,
				StartDate:     startDate,
				EndDate:       endDate,
			}
			if err := app.Assignments.CreateEquipment(ctx, a); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Booked %s (%s)\n", a.EquipmentName, a.ID[:8])
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project name or ID")
	cmd.Flags().StringVar(&on, "on", "", "Phase or subphase to book on (default: project)")
	cmd.Flags().StringVar(&equipment, "equipment", "", "Equipment name")
	cmd.Flags().StringVar(&start, "start", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "End date (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("equipment")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")

	return cmd
}

func newAssignListCmd(app *App) *cobra.Command {
	var project, on string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List assignments on a project, phase, or subphase",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			projectID, err := resolveProjectID(ctx, app, project)
			if err != nil {
				return err
			}

			ownerType := domain.EntityProject
			ownerID := projectID
			if on != "" {
				match, err := resolveEntity(ctx, app, projectID, on)
				if err != nil {
					return err
				}
				ownerType = match.Type
				ownerID = match.ID
			}

			staff, err := app.Assignments.ListStaff(ctx, ownerType, ownerID)
			if err != nil {
				return err
			}
			equipment, err := app.Assignments.ListEquipment(ctx, ownerType, ownerID)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(staff) == 0 && len(equipment) == 0 {
				fmt.Fprintln(out, formatter.Dim("No assignments."))
				return nil
			}

			headers := []string{"Kind", "Name", "Role", "Start", "End"}
			rows := make([][]string, 0, len(staff)+len(equipment))
			for _, a := range staff {
				rows = append(rows, []string{"staff", a.PersonName, a.Role,
					dateutil.FormatISO(a.StartDate), dateutil.FormatISO(a.EndDate)})
			}
			for _, a := range equipment {
				rows = append(rows, []string{"equipment", a.EquipmentName, "",
					dateutil.FormatISO(a.StartDate), dateutil.FormatISO(a.EndDate)})
			}
			fmt.Fprint(out, formatter.RenderTable(headers, rows))
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project name or ID")
	cmd.Flags().StringVar(&on, "on", "", "Phase or subphase (default: project)")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}
