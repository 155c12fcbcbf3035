package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/mwhitford/planline/internal/db"
	"github.com/mwhitford/planline/internal/domain"
)

const subphaseColumns = `id, phase_id, parent_subphase_id, name, start_date, end_date,
		color, is_milestone, completion, order_index, created_at, updated_at`

// SQLiteSubphaseRepo implements SubphaseRepo using a SQLite database.
type SQLiteSubphaseRepo struct {
	db db.DBTX
}

// NewSQLiteSubphaseRepo creates a new SQLiteSubphaseRepo.
func NewSQLiteSubphaseRepo(dbtx db.DBTX) *SQLiteSubphaseRepo {
	return &SQLiteSubphaseRepo{db: dbtx}
}

func (r *SQLiteSubphaseRepo) Create(ctx context.Context, sp *domain.Subphase) error {
	query := `INSERT INTO subphases (id, phase_id, parent_subphase_id, name, start_date, end_date,
		color, is_milestone, completion, order_index, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		sp.ID,
		sp.PhaseID,
		sp.ParentSubphaseID, // *string: nil becomes SQL NULL
		sp.Name,
		sp.StartDate.Format(dateLayout),
		sp.EndDate.Format(dateLayout),
		sp.Color,
		boolToInt(sp.IsMilestone),
		nullableFloatValue(sp.Completion),
		sp.OrderIndex,
		sp.CreatedAt.Format(time.RFC3339),
		sp.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting subphase: %w", err)
	}
	return nil
}

func (r *SQLiteSubphaseRepo) GetByID(ctx context.Context, id string) (*domain.Subphase, error) {
	query := `SELECT ` + subphaseColumns + ` FROM subphases WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)

	sp, err := scanSubphaseRow(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("subphase: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning subphase: %w", err)
	}
	return sp, nil
}

func (r *SQLiteSubphaseRepo) ListByPhase(ctx context.Context, phaseID string) ([]*domain.Subphase, error) {
	query := `SELECT ` + subphaseColumns + ` FROM subphases
		WHERE phase_id = ? AND parent_subphase_id IS NULL
		ORDER BY order_index, start_date`
	return r.list(ctx, query, phaseID)
}

func (r *SQLiteSubphaseRepo) ListChildren(ctx context.Context, parentSubphaseID string) ([]*domain.Subphase, error) {
	query := `SELECT ` + subphaseColumns + ` FROM subphases
		WHERE parent_subphase_id = ?
		ORDER BY order_index, start_date`
	return r.list(ctx, query, parentSubphaseID)
}

func (r *SQLiteSubphaseRepo) list(ctx context.Context, query string, arg any) ([]*domain.Subphase, error) {
	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("listing subphases: %w", err)
	}
	defer rows.Close()

	var subphases []*domain.Subphase
	for rows.Next() {
		sp, err := scanSubphaseRow(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning subphase: %w", err)
		}
		subphases = append(subphases, sp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating subphases: %w", err)
	}
	return subphases, nil
}

func (r *SQLiteSubphaseRepo) Update(ctx context.Context, sp *domain.Subphase) error {
	query := `UPDATE subphases SET phase_id = ?, parent_subphase_id = ?, name = ?,
		start_date = ?, end_date = ?, color = ?, is_milestone = ?, completion = ?,
		order_index = ?, updated_at = ?
		WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query,
		sp.PhaseID,
		sp.ParentSubphaseID,
		sp.Name,
		sp.StartDate.Format(dateLayout),
		sp.EndDate.Format(dateLayout),
		sp.Color,
		boolToInt(sp.IsMilestone),
		nullableFloatValue(sp.Completion),
		sp.OrderIndex,
		sp.UpdatedAt.Format(time.RFC3339),
		sp.ID,
	)
	if err != nil {
		return fmt.Errorf("updating subphase: %w", err)
	}
	return nil
}

func (r *SQLiteSubphaseRepo) UpdateDates(ctx context.Context, id, startDate, endDate string) error {
	query := `UPDATE subphases SET start_date = ?, end_date = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, startDate, endDate, time.Now().UTC().Format(time.RFC3339), id)
	if err != nil {
		return fmt.Errorf("updating subphase dates: %w", err)
	}
	return requireRow(res, "subphase", id)
}

func (r *SQLiteSubphaseRepo) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM subphases WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting subphase: %w", err)
	}
	return nil
}

func scanSubphaseRow(scan func(dest ...any) error) (*domain.Subphase, error) {
	var sp domain.Subphase
	var parent sql.NullString
	var start, end, created, updated string
	var milestone int
	var completion sql.NullFloat64
	err := scan(
		&sp.ID, &sp.PhaseID, &parent, &sp.Name, &start, &end,
		&sp.Color, &milestone, &completion, &sp.OrderIndex, &created, &updated,
	)
	if err != nil {
		return nil, err
	}
	sp.ParentSubphaseID = nullableString(parent)
	sp.StartDate = parseDate(start)
	sp.EndDate = parseDate(end)
	sp.IsMilestone = intToBool(milestone)
	sp.Completion = nullableFloat(completion)
	sp.CreatedAt = parseTimestamp(created)
	sp.UpdatedAt = parseTimestamp(updated)
	return &sp, nil
}
