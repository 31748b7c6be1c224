package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"lunchline/internal/domain"
	"lunchline/internal/logger"
)

// Querier is the subset of pgx satisfied by both *pgxpool.Pool and
// pgx.Tx, so repository methods run the same inside and outside a
// transaction.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type Store struct {
	pool *pgxpool.Pool
	lg   *logger.Logger
}

func NewStore(pool *pgxpool.Pool, lg *logger.Logger) *Store {
	return &Store{pool: pool, lg: lg}
}

func (s *Store) Pool() *pgxpool.Pool { return s.pool }

// WithinTx runs fn inside a single transaction. Any error from fn
// rolls the transaction back and is returned unchanged; a rollback
// failure is logged but never replaces the original error.
func (s *Store) WithinTx(ctx context.Context, fn func(q Querier) error) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return domain.TransactionFailure("failed to begin transaction", err)
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			s.lg.Error("tx_rollback_failed", rbErr, nil)
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.TransactionFailure("failed to commit transaction", err)
	}
	return nil
}
