// internal/adapters/out/db/common/sqlutil.go
package common

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"
)

// RowScanner abstracts over *sql.Row and *sql.Rows.
type RowScanner interface {
	Scan(dest ...any) error
}

// Runner is the common interface of *sql.DB and *sql.Tx.
type Runner interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// TxKey stores a *sql.Tx in the context.
type TxKey struct{}

// CtxWithTx returns ctx carrying tx.
func CtxWithTx(ctx context.Context, tx *sql.Tx) context.Context {
	return context.WithValue(ctx, TxKey{}, tx)
}

// TxFromCtx extracts the *sql.Tx from ctx, or nil.
func TxFromCtx(ctx context.Context) *sql.Tx {
	if v := ctx.Value(TxKey{}); v != nil {
		if tx, ok := v.(*sql.Tx); ok {
			return tx
		}
	}
	return nil
}

// GetRunner returns the context transaction when present, else db.
func GetRunner(ctx context.Context, db *sql.DB) Runner {
	if tx := TxFromCtx(ctx); tx != nil {
		return tx
	}
	return db
}

// TxRunner runs fn inside one transaction; repositories pick the transaction
// up from the context via GetRunner.
type TxRunner struct {
	DB *sql.DB
}

func NewTxRunner(db *sql.DB) *TxRunner {
	return &TxRunner{DB: db}
}

// RunInTx begins a transaction, runs fn with the transaction bound to the
// context, and commits. Any error from fn rolls back.
func (r *TxRunner) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if err := fn(CtxWithTx(ctx, tx)); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// IsUniqueViolation detects a PostgreSQL duplicate-key error.
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

// AppendCond appends a condition to the WHERE parts, substituting the next
// $n placeholder index into exprFmt.
func AppendCond(where *[]string, args *[]any, exprFmt string, val any) {
	*where = append(*where, fmt.Sprintf(exprFmt, len(*args)+1))
	*args = append(*args, val)
}

// NullableTrim returns nil for nil/blank pointers, otherwise the trimmed
// string, producing SQL NULLs in INSERT/UPDATE args.
func NullableTrim(p *string) any {
	if p == nil {
		return nil
	}
	v := strings.TrimSpace(*p)
	if v == "" {
		return nil
	}
	return v
}
