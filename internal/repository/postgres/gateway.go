package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"club-finance-backend/internal/domain"
	"club-finance-backend/internal/logger"
	"club-finance-backend/internal/repository"
)

// ErrUnknownStatement is returned for statements missing from the catalog.
var ErrUnknownStatement = errors.New("statement not in catalog")

// PoolConfig bounds the connection pool shared by all callers.
type PoolConfig struct {
	MaxOpen         int
	ConnMaxLifetime time.Duration
}

// ConfigurePool applies pool limits. Callers beyond MaxOpen block until a
// connection is released.
func ConfigurePool(db *sql.DB, cfg PoolConfig) {
	db.SetMaxOpenConns(cfg.MaxOpen)
	db.SetMaxIdleConns(cfg.MaxOpen)
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}
}

type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

type gateway struct {
	db *sql.DB
}

func NewGateway(db *sql.DB) repository.Gateway {
	return &gateway{db: db}
}

// Execute runs a single statement in its own implicit transaction.
func (g *gateway) Execute(ctx context.Context, stmt repository.Statement, args ...any) (*repository.Result, error) {
	return execute(ctx, g.db, stmt, args...)
}

func (g *gateway) WithTransaction(ctx context.Context, work func(ex repository.Executor) error) (err error) {
	tx, err := g.db.BeginTx(ctx, nil)
	if err != nil {
		logger.TransactionEvent("begin", err)
		return wrapStoreError("begin", err)
	}
	logger.TransactionEvent("begin", nil)

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			logger.TransactionEvent("rollback", fmt.Errorf("panic: %v", p))
			panic(p)
		}
	}()

	if err := work(&txExecutor{tx: tx}); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			logger.TransactionEvent("rollback", rbErr, "cause", err)
		} else {
			logger.TransactionEvent("rollback", nil, "cause", err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		logger.TransactionEvent("commit", err)
		return wrapStoreError("commit", err)
	}
	logger.TransactionEvent("commit", nil)
	return nil
}

type txExecutor struct {
	tx *sql.Tx
}

func (e *txExecutor) Execute(ctx context.Context, stmt repository.Statement, args ...any) (*repository.Result, error) {
	return execute(ctx, e.tx, stmt, args...)
}

func execute(ctx context.Context, conn dbtx, stmt repository.Statement, args ...any) (*repository.Result, error) {
	spec, ok := lookup(stmt)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownStatement, stmt)
	}
	logger.DatabaseCall(stmt.String(), spec.query, "args", len(args))

	if !spec.returnsRows {
		res, err := conn.ExecContext(ctx, spec.query, args...)
		if err != nil {
			logger.DatabaseResult(stmt.String(), 0, err)
			return nil, wrapStoreError(stmt.String(), err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return nil, wrapStoreError(stmt.String(), err)
		}
		logger.DatabaseResult(stmt.String(), n, nil)
		return &repository.Result{RowsAffected: n}, nil
	}

	rows, err := conn.QueryContext(ctx, spec.query, args...)
	if err != nil {
		logger.DatabaseResult(stmt.String(), 0, err)
		return nil, wrapStoreError(stmt.String(), err)
	}
	defer rows.Close()

	result, err := collect(rows)
	if err != nil {
		logger.DatabaseResult(stmt.String(), 0, err)
		return nil, wrapStoreError(stmt.String(), err)
	}
	logger.DatabaseResult(stmt.String(), result.RowsAffected, nil)
	return result, nil
}

func collect(rows *sql.Rows) (*repository.Result, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	result := &repository.Result{Columns: cols}
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		result.Rows = append(result.Rows, values)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	result.RowsAffected = int64(len(result.Rows))
	return result, nil
}

// wrapStoreError attaches the SQLSTATE when the driver reports one.
func wrapStoreError(op string, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return &domain.StoreError{Op: op, Code: string(pqErr.Code), Err: err}
	}
	return &domain.StoreError{Op: op, Err: err}
}
