package tx

import (
	"context"
	"errors"
	"fmt"

	app_errors "github.com/Xenn-00/stufen-meister/internal/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxTxManager struct {
	db *pgxpool.Pool
}

func NewPgxTxManager(db *pgxpool.Pool) *PgxTxManager {
	return &PgxTxManager{db: db}
}

// Begin öffnet eine Transaktion mit READ COMMITTED; die Statusübergänge verlassen sich auf Zeilensperren.
func (m *PgxTxManager) Begin(ctx context.Context) (Tx, *app_errors.AppError) {
	tx, err := m.db.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return nil, app_errors.NewInternalError(err)
	}

	return &PgxTx{Tx: tx}, nil
}

type PgxTx struct {
	Tx pgx.Tx
}

func (t *PgxTx) Commit(ctx context.Context) *app_errors.AppError {
	if err := t.Tx.Commit(ctx); err != nil {
		return app_errors.NewInternalError(err)
	}
	return nil
}

// Rollback nach einem Commit ist ein No-op, daher kann es per defer aufgerufen werden.
func (t *PgxTx) Rollback(ctx context.Context) *app_errors.AppError {
	if err := t.Tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return app_errors.NewInternalError(err)
	}
	return nil
}

// Unwrap liefert die pgx-Transaktion hinter t für die Repositories.
func Unwrap(t Tx) (pgx.Tx, *app_errors.AppError) {
	pgxTx, ok := t.(*PgxTx)
	if !ok || pgxTx == nil {
		return nil, app_errors.NewInternalError(fmt.Errorf("unsupported transaction type %T", t))
	}
	return pgxTx.Tx, nil
}
