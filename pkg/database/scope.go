package database

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Querier is the subset of a pgx connection the repositories use.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

var _ Querier = (*pgxpool.Conn)(nil)

// Scope holds the connection a single request reads through.
// Every query of one request runs on the same pooled connection.
type Scope struct {
	Conn    Querier
	release func()
}

// Close releases the connection back to the pool. Safe to call more than once.
func (s *Scope) Close() {
	if s.release == nil {
		return
	}
	s.release()
	s.release = nil
}

// Acquire takes a connection from the pool for one request.
// The returned Scope MUST be closed with defer scope.Close().
func (db *DB) Acquire(ctx context.Context) (*Scope, error) {
	conn, err := db.Pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	return &Scope{Conn: conn, release: conn.Release}, nil
}

// NewScope wraps an existing querier (a pool, a transaction) without owning it.
func NewScope(q Querier) *Scope {
	return &Scope{Conn: q}
}

type contextKey string

// ScopeKey is the context key for storing the request-scoped connection.
const ScopeKey contextKey = "dbScope"

// GetScope retrieves the request-scoped connection from context.
// Returns nil and false if not present.
func GetScope(ctx context.Context) (*Scope, bool) {
	scope, ok := ctx.Value(ScopeKey).(*Scope)
	return scope, ok && scope != nil
}

// SetScope stores the request-scoped connection in context.
func SetScope(ctx context.Context, scope *Scope) context.Context {
	return context.WithValue(ctx, ScopeKey, scope)
}
