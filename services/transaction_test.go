package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/upb/courses-api/repositories"
)

// MockTransactionManager is a mock implementation of TransactionManager
type MockTransactionManager struct {
	mock.Mock
}

func (m *MockTransactionManager) Begin(ctx context.Context) (repositories.Transaction, error) {
	args := m.Called(ctx)
	if tx := args.Get(0); tx != nil {
		return tx.(repositories.Transaction), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockTransaction is a mock implementation of Transaction
type MockTransaction struct {
	mock.Mock
	committed  bool
	rolledback bool
}

func (m *MockTransaction) Commit() error {
	m.committed = true
	return m.Called().Error(0)
}

func (m *MockTransaction) Rollback() error {
	m.rolledback = true
	return m.Called().Error(0)
}

func (m *MockTransaction) Context() context.Context {
	return m.Called().Get(0).(context.Context)
}

func TestWithTransaction(t *testing.T) {
	opErr := errors.New("operation failed")

	tests := []struct {
		name         string
		beginErr     error
		fnErr        error
		commitErr    error
		rollbackErr  error
		wantErr      []string
		wantCommit   bool
		wantRollback bool
	}{
		{
			name:       "commits on success",
			wantCommit: true,
		},
		{
			name:         "rolls back when fn fails",
			fnErr:        opErr,
			wantErr:      []string{"operation failed"},
			wantRollback: true,
		},
		{
			name:     "begin failure",
			beginErr: errors.New("connection refused"),
			wantErr:  []string{"failed to begin transaction", "connection refused"},
		},
		{
			name:       "commit failure",
			commitErr:  errors.New("commit failed"),
			wantErr:    []string{"failed to commit transaction"},
			wantCommit: true,
		},
		{
			name:         "rollback failure reports both errors",
			fnErr:        opErr,
			rollbackErr:  errors.New("rollback failed"),
			wantErr:      []string{"transaction error", "rollback error"},
			wantRollback: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			txMgr := new(MockTransactionManager)
			tx := new(MockTransaction)

			if tt.beginErr != nil {
				txMgr.On("Begin", ctx).Return(nil, tt.beginErr)
			} else {
				txMgr.On("Begin", ctx).Return(tx, nil)
				tx.On("Context").Return(ctx)
			}
			if tt.wantCommit {
				tx.On("Commit").Return(tt.commitErr)
			}
			if tt.wantRollback {
				tx.On("Rollback").Return(tt.rollbackErr)
			}

			err := WithTransaction(ctx, txMgr, func(ctx context.Context, tx repositories.Transaction) error {
				return tt.fnErr
			})

			if len(tt.wantErr) == 0 {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
				for _, msg := range tt.wantErr {
					assert.Contains(t, err.Error(), msg)
				}
			}
			if tt.fnErr != nil && tt.rollbackErr == nil {
				assert.ErrorIs(t, err, tt.fnErr)
			}
			assert.Equal(t, tt.wantCommit, tx.committed)
			assert.Equal(t, tt.wantRollback, tx.rolledback)
			txMgr.AssertExpectations(t)
			tx.AssertExpectations(t)
		})
	}
}

type txKey struct{}

func TestWithTransaction_PassesTransactionContext(t *testing.T) {
	ctx := context.Background()
	txCtx := context.WithValue(ctx, txKey{}, "tx")
	txMgr := new(MockTransactionManager)
	tx := new(MockTransaction)

	txMgr.On("Begin", ctx).Return(tx, nil)
	tx.On("Context").Return(txCtx)
	tx.On("Commit").Return(nil)

	var seen context.Context
	err := WithTransaction(ctx, txMgr, func(ctx context.Context, _ repositories.Transaction) error {
		seen = ctx
		return nil
	})

	assert.NoError(t, err)
	assert.Equal(t, "tx", seen.Value(txKey{}))
	tx.AssertExpectations(t)
}

func TestWithTransaction_PanicRollsBack(t *testing.T) {
	ctx := context.Background()
	txMgr := new(MockTransactionManager)
	tx := new(MockTransaction)

	txMgr.On("Begin", ctx).Return(tx, nil)
	tx.On("Context").Return(ctx)
	tx.On("Rollback").Return(nil)

	assert.Panics(t, func() {
		_ = WithTransaction(ctx, txMgr, func(context.Context, repositories.Transaction) error {
			panic("boom")
		})
	})
	assert.True(t, tx.rolledback)
	assert.False(t, tx.committed)
}
