package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/votabien/votabien-engine/pkg/apperrors"
	"github.com/votabien/votabien-engine/pkg/database"
)

// rowScanner is satisfied by both pgx.Row and pgx.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// querier returns the request-scoped connection stored in ctx.
func querier(ctx context.Context) (database.Querier, error) {
	scope, ok := database.GetScope(ctx)
	if !ok {
		return nil, fmt.Errorf("%w: no database scope in context", apperrors.ErrDependencyFailure)
	}
	return scope.Conn, nil
}

// dependencyError tags a persistence error so callers can map it to 503
// while keeping the original cause for logs.
func dependencyError(op string, err error) error {
	return fmt.Errorf("%w: failed to %s: %w", apperrors.ErrDependencyFailure, op, err)
}

// notFoundOr maps pgx.ErrNoRows to apperrors.ErrNotFound.
func notFoundOr(op string, err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.ErrNotFound
	}
	return dependencyError(op, err)
}

// collect runs query and scans every row with scan.
func collect[T any](ctx context.Context, op, query string, scan func(rowScanner) (T, error), args ...any) ([]T, error) {
	q, err := querier(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, dependencyError(op, err)
	}
	defer rows.Close()

	items := []T{}
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, dependencyError(op, err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, dependencyError(op, err)
	}
	return items, nil
}

// count runs a single-value COUNT query.
func count(ctx context.Context, op, query string, args ...any) (int64, error) {
	q, err := querier(ctx)
	if err != nil {
		return 0, err
	}
	var total int64
	if err := q.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, dependencyError(op, err)
	}
	return total, nil
}

// whereClause accumulates AND-ed conditions with positional parameters.
type whereClause struct {
	conditions []string
	args       []any
}

// add appends a condition; each "?" in cond is replaced by the next $n.
func (w *whereClause) add(cond string, args ...any) {
	for _, arg := range args {
		w.args = append(w.args, arg)
		cond = strings.Replace(cond, "?", fmt.Sprintf("$%d", len(w.args)), 1)
	}
	w.conditions = append(w.conditions, cond)
}

// next reserves the placeholder for an argument that follows the conditions.
func (w *whereClause) next(arg any) string {
	w.args = append(w.args, arg)
	return fmt.Sprintf("$%d", len(w.args))
}

func (w *whereClause) String() string {
	if len(w.conditions) == 0 {
		return ""
	}
	return "WHERE " + strings.Join(w.conditions, " AND ")
}

// containsPattern builds an ILIKE pattern matching s anywhere, with LIKE
// metacharacters in s escaped.
func containsPattern(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(s) + "%"
}
