package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/mwhitford/planline/internal/db"
	"github.com/mwhitford/planline/internal/domain"
)

const equipmentColumns = `id, project_id, phase_id, subphase_id, equipment_name,
		start_date, end_date, created_at, updated_at`

// SQLiteEquipmentAssignmentRepo implements EquipmentAssignmentRepo using a SQLite database.
type SQLiteEquipmentAssignmentRepo struct {
	db db.DBTX
}

// NewSQLiteEquipmentAssignmentRepo creates a new SQLiteEquipmentAssignmentRepo.
func NewSQLiteEquipmentAssignmentRepo(dbtx db.DBTX) *SQLiteEquipmentAssignmentRepo {
	return &SQLiteEquipmentAssignmentRepo{db: dbtx}
}

func (r *SQLiteEquipmentAssignmentRepo) Create(ctx context.Context, a *domain.EquipmentAssignment) error {
	query := `INSERT INTO equipment_assignments (id, project_id, phase_id, subphase_id,
		equipment_name, start_date, end_date, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		a.ID,
		a.ProjectID,
		a.PhaseID,
		a.SubphaseID,
		a.EquipmentName,
		a.StartDate.Format(dateLayout),
		a.EndDate.Format(dateLayout),
		a.CreatedAt.Format(time.RFC3339),
		a.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting equipment assignment: %w", err)
	}
	return nil
}

func (r *SQLiteEquipmentAssignmentRepo) GetByID(ctx context.Context, id string) (*domain.EquipmentAssignment, error) {
	query := `SELECT ` + equipmentColumns + ` FROM equipment_assignments WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)

	a, err := scanEquipmentRow(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("equipment assignment: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning equipment assignment: %w", err)
	}
	return a, nil
}

func (r *SQLiteEquipmentAssignmentRepo) ListByOwner(ctx context.Context, entityType domain.EntityType, ownerID string) ([]*domain.EquipmentAssignment, error) {
	column, err := ownerColumn(entityType)
	if err != nil {
		return nil, err
	}
	query := `SELECT ` + equipmentColumns + ` FROM equipment_assignments
		WHERE ` + column + ` = ? ORDER BY start_date, equipment_name`
	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("listing equipment assignments: %w", err)
	}
	defer rows.Close()

	var assignments []*domain.EquipmentAssignment
	for rows.Next() {
		a, err := scanEquipmentRow(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning equipment assignment: %w", err)
		}
		assignments = append(assignments, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating equipment assignments: %w", err)
	}
	return assignments, nil
}

func (r *SQLiteEquipmentAssignmentRepo) UpdateDates(ctx context.Context, id, startDate, endDate string) error {
	query := `UPDATE equipment_assignments SET start_date = ?, end_date = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, startDate, endDate, time.Now().UTC().Format(time.RFC3339), id)
	if err != nil {
		return fmt.Errorf("updating equipment assignment dates: %w", err)
	}
	return requireRow(res, "equipment assignment", id)
}

func (r *SQLiteEquipmentAssignmentRepo) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM equipment_assignments WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting equipment assignment: %w", err)
	}
	return nil
}

func scanEquipmentRow(scan func(dest ...any) error) (*domain.EquipmentAssignment, error) {
	var a domain.EquipmentAssignment
	var projectID, phaseID, subphaseID sql.NullString
	var start, end, created, updated string
	err := scan(
		&a.ID, &projectID, &phaseID, &subphaseID, &a.EquipmentName,
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
