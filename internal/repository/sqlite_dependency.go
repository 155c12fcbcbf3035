package repository

import (
	"context"
	"fmt"

	"github.com/mwhitford/planline/internal/db"
	"github.com/mwhitford/planline/internal/domain"
)

const dependencyColumns = `successor_id, predecessor_id, dep_type, lag_days`

// SQLiteDependencyRepo implements DependencyRepo using a SQLite database.
type SQLiteDependencyRepo struct {
	db db.DBTX
}

// NewSQLiteDependencyRepo creates a new SQLiteDependencyRepo.
func NewSQLiteDependencyRepo(dbtx db.DBTX) *SQLiteDependencyRepo {
	return &SQLiteDependencyRepo{db: dbtx}
}

func (r *SQLiteDependencyRepo) Create(ctx context.Context, e DependencyEdge) error {
	query := `INSERT INTO dependencies (successor_id, predecessor_id, dep_type, lag_days)
		VALUES (?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query, e.SuccessorID, e.PredecessorID, string(e.Type), e.LagDays)
	if err != nil {
		return fmt.Errorf("inserting dependency: %w", err)
	}
	return nil
}

func (r *SQLiteDependencyRepo) Delete(ctx context.Context, successorID, predecessorID string) error {
	query := `DELETE FROM dependencies WHERE successor_id = ? AND predecessor_id = ?`
	res, err := r.db.ExecContext(ctx, query, successorID, predecessorID)
	if err != nil {
		return fmt.Errorf("deleting dependency: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting dependency: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("dependency %s -> %s: %w", predecessorID, successorID, ErrNotFound)
	}
	return nil
}

func (r *SQLiteDependencyRepo) DeleteReferencing(ctx context.Context, entityID string) error {
	query := `DELETE FROM dependencies WHERE successor_id = ? OR predecessor_id = ?`
	_, err := r.db.ExecContext(ctx, query, entityID, entityID)
	if err != nil {
		return fmt.Errorf("deleting dependencies for %s: %w", entityID, err)
	}
	return nil
}

func (r *SQLiteDependencyRepo) ListBySuccessor(ctx context.Context, successorID string) ([]DependencyEdge, error) {
	query := `SELECT ` + dependencyColumns + ` FROM dependencies
		WHERE successor_id = ? ORDER BY predecessor_id`
	return r.list(ctx, query, successorID)
}

func (r *SQLiteDependencyRepo) ListByPredecessor(ctx context.Context, predecessorID string) ([]DependencyEdge, error) {
	query := `SELECT ` + dependencyColumns + ` FROM dependencies
		WHERE predecessor_id = ? ORDER BY successor_id`
	return r.list(ctx, query, predecessorID)
}

func (r *SQLiteDependencyRepo) list(ctx context.Context, query string, arg any) ([]DependencyEdge, error) {
	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("listing dependencies: %w", err)
	}
	defer rows.Close()

	var edges []DependencyEdge
	for rows.Next() {
		var e DependencyEdge
		var depType string
		if err := rows.Scan(&e.SuccessorID, &e.PredecessorID, &depType, &e.LagDays); err != nil {
			return nil, fmt.Errorf("scanning dependency: %w", err)
		}
		e.Type = domain.DependencyType(depType)
		edges = append(edges, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating dependencies: %w", err)
	}
	return edges, nil
}
