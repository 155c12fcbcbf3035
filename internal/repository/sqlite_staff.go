package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/mwhitford/planline/internal/db"
	"github.com/mwhitford/planline/internal/domain"
)

const staffColumns = `id, project_id, phase_id, subphase_id, person_name, role,
		start_date, end_date, created_at, updated_at`

// SQLiteStaffAssignmentRepo implements StaffAssignmentRepo using a SQLite database.
type SQLiteStaffAssignmentRepo struct {
	db db.DBTX
}

// NewSQLiteStaffAssignmentRepo creates a new SQLiteStaffAssignmentRepo.
func NewSQLiteStaffAssignmentRepo(dbtx db.DBTX) *SQLiteStaffAssignmentRepo {
	return &SQLiteStaffAssignmentRepo{db: dbtx}
}

func (r *SQLiteStaffAssignmentRepo) Create(ctx context.Context, a *domain.StaffAssignment) error {
	query := `INSERT INTO staff_assignments (id, project_id, phase_id, subphase_id,
		person_name, role, start_date, end_date, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		a.ID,
		a.ProjectID,
		a.PhaseID,
		a.SubphaseID,
		a.PersonName,
		a.Role,
		a.StartDate.Format(dateLayout),
		a.EndDate.Format(dateLayout),
		a.CreatedAt.Format(time.RFC3339),
		a.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting staff assignment: %w", err)
	}
	return nil
}

func (r *SQLiteStaffAssignmentRepo) GetByID(ctx context.Context, id string) (*domain.StaffAssignment, error) {
	query := `SELECT ` + staffColumns + ` FROM staff_assignments WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)

	a, err := scanStaffRow(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("staff assignment: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning staff assignment: %w", err)
	}
	return a, nil
}

func (r *SQLiteStaffAssignmentRepo) ListByOwner(ctx context.Context, entityType domain.EntityType, ownerID string) ([]*domain.StaffAssignment, error) {
	column, err := ownerColumn(entityType)
	if err != nil {
		return nil, err
	}
	query := `SELECT ` + staffColumns + ` FROM staff_assignments
		WHERE ` + column + ` = ? ORDER BY start_date, person_name`
	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("listing staff assignments: %w", err)
	}
	defer rows.Close()

	var assignments []*domain.StaffAssignment
	for rows.Next() {
		a, err := scanStaffRow(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning staff assignment: %w", err)
		}
		assignments = append(assignments, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating staff assignments: %w", err)
	}
	return assignments, nil
}

func (r *SQLiteStaffAssignmentRepo) UpdateDates(ctx context.Context, id, startDate, endDate string) error {
	query := `UPDATE staff_assignments SET start_date = ?, end_date = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, startDate, endDate, time.Now().UTC().Format(time.RFC3339), id)
	if err != nil {
		return fmt.Errorf("updating staff assignment dates: %w", err)
	}
	return requireRow(res, "staff assignment", id)
}

func (r *SQLiteStaffAssignmentRepo) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM staff_assignments WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting staff assignment: %w", err)
	}
	return nil
}

func scanStaffRow(scan func(dest ...any) error) (*domain.StaffAssignment, error) {
	var a domain.StaffAssignment
	var projectID, phaseID, subphaseID sql.NullString
	var start, end, created, updated string
	err := scan(
		&a.ID, &projectID, &phaseID, &subphaseID, &a.PersonName, &a.Role,
		&start, &end, &created, &updated,
	)
	if err != nil {
		return nil, err
	}
	a.ProjectID = nullableString(projectID)
	a.PhaseID = nullableString(phaseID)
	a.SubphaseID = nullableString(subphaseID)
	a.StartDate = parseDate(start)
	a.EndDate = parseDate(end)
	a.CreatedAt = parseTimestamp(created)
	a.UpdatedAt = parseTimestamp(updated)
	return &a, nil
}

// ownerColumn maps an owner entity type to the assignment column holding its id.
func ownerColumn(entityType domain.EntityType) (string, error) {
	switch entityType {
	case domain.EntityProject:
		return "project_id", nil
	case domain.EntityPhase:
		return "phase_id", nil
	case domain.EntitySubphase:
		return "subphase_id", nil
	default:
		return "", fmt.Errorf("entity type %q cannot own assignments", entityType)
	}
}
