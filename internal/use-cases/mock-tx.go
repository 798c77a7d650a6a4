package use_cases

import (
	"context"

	"github.com/Xenn-00/stufen-meister/internal/abstraction/tx"
	app_errors "github.com/Xenn-00/stufen-meister/internal/errors"
	"github.com/stretchr/testify/mock"
)

var (
	_ tx.Tx        = (*MockTx)(nil)
	_ tx.TxManager = (*MockTxManager)(nil)
)

type MockTx struct {
	mock.Mock
}

func (m *MockTx) Commit(ctx context.Context) *app_errors.AppError {
	args := m.Called(ctx)
	return ret[*app_errors.AppError](args, 0)
}

func (m *MockTx) Rollback(ctx context.Context) *app_errors.AppError {
	args := m.Called(ctx)
	return ret[*app_errors.AppError](args, 0)
}

type MockTxManager struct {
	mock.Mock
}

func (m *MockTxManager) Begin(ctx context.Context) (tx.Tx, *app_errors.AppError) {
	args := m.Called(ctx)
	return ret[tx.Tx](args, 0), ret[*app_errors.AppError](args, 1)
}

// NewCommittingTx liefert einen TxManager, dessen Transaktion Commit und Rollback ohne Fehler annimmt.
func NewCommittingTx() (*MockTxManager, *MockTx) {
	t := new(MockTx)
	t.On("Commit", mock.Anything).Return(nil).Maybe()
	t.On("Rollback", mock.Anything).Return(nil).Maybe()

	txm := new(MockTxManager)
	txm.On("Begin", mock.Anything).Return(t, nil).Maybe()
	return txm, t
}
