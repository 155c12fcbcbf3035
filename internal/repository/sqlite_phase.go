package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/mwhitford/planline/internal/db"
	"github.com/mwhitford/planline/internal/domain"
)

const phaseColumns = `id, project_id, name, start_date, end_date, color,
		is_milestone, completion, order_index, created_at, updated_at`

// SQLitePhaseRepo implements PhaseRepo using a SQLite database.
type SQLitePhaseRepo struct {
	db db.DBTX
}

// NewSQLitePhaseRepo creates a new SQLitePhaseRepo.
func NewSQLitePhaseRepo(dbtx db.DBTX) *SQLitePhaseRepo {
	return &SQLitePhaseRepo{db: dbtx}
}

func (r *SQLitePhaseRepo) Create(ctx context.Context, ph *domain.Phase) error {
	query := `INSERT INTO phases (id, project_id, name, start_date, end_date, color,
		is_milestone, completion, order_index, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		ph.ID,
		ph.ProjectID,
		ph.Name,
		ph.StartDate.Format(dateLayout),
		ph.EndDate.Format(dateLayout),
		ph.Color,
		boolToInt(ph.IsMilestone),
		nullableFloatValue(ph.Completion),
		ph.OrderIndex,
		ph.CreatedAt.Format(time.RFC3339),
		ph.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting phase: %w", err)
	}
	return nil
}

func (r *SQLitePhaseRepo) GetByID(ctx context.Context, id string) (*domain.Phase, error) {
	query := `SELECT ` + phaseColumns + ` FROM phases WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)

	ph, err := scanPhaseRow(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("phase: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning phase: %w", err)
	}
	return ph, nil
}

func (r *SQLitePhaseRepo) ListByProject(ctx context.Context, projectID string) ([]*domain.Phase, error) {
	query := `SELECT ` + phaseColumns + ` FROM phases WHERE project_id = ? ORDER BY order_index, start_date`
	rows, err := r.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing phases: %w", err)
	}
	defer rows.Close()

	var phases []*domain.Phase
	for rows.Next() {
		ph, err := scanPhaseRow(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning phase: %w", err)
		}
		phases = append(phases, ph)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating phases: %w", err)
	}
	return phases, nil
}

func (r *SQLitePhaseRepo) Update(ctx context.Context, ph *domain.Phase) error {
	query := `UPDATE phases SET name = ?, start_date = ?, end_date = ?, color = ?,
		is_milestone = ?, completion = ?, order_index = ?, updated_at = ?
		WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query,
		ph.Name,
		ph.StartDate.Format(dateLayout),
		ph.EndDate.Format(dateLayout),
		ph.Color,
		boolToInt(ph.IsMilestone),
		nullableFloatValue(ph.Completion),
		ph.OrderIndex,
		ph.UpdatedAt.Format(time.RFC3339),
		ph.ID,
	)
	if err != nil {
		return fmt.Errorf("updating phase: %w", err)
	}
	return nil
}

func (r *SQLitePhaseRepo) UpdateDates(ctx context.Context, id, startDate, endDate string) error {
	query := `UPDATE phases SET start_date = ?, end_date = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, startDate, endDate, time.Now().UTC().Format(time.RFC3339), id)
	if err != nil {
		return fmt.Errorf("updating phase dates: %w", err)
	}
	return requireRow(res, "phase", id)
}

func (r *SQLitePhaseRepo) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM phases WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting phase: %w", err)
	}
	return nil
}

func scanPhaseRow(scan func(dest ...any) error) (*domain.Phase, error) {
	var ph domain.Phase
	var start, end, created, updated string
	var milestone int
	var completion sql.NullFloat64
	err := scan(
		&ph.ID, &ph.ProjectID, &ph.Name, &start, &end, &ph.Color,
		&milestone, &completion, &ph.OrderIndex, &created, &updated,
	)
	if err != nil {
		return nil, err
	}
	ph.StartDate = parseDate(start)
	ph.EndDate = parseDate(end)
	ph.IsMilestone = intToBool(milestone)
	ph.Completion = nullableFloat(completion)
	ph.CreatedAt = parseTimestamp(created)
	ph.UpdatedAt = parseTimestamp(updated)
	return &ph, nil
}
