package memory

import (
	"context"

	"github.com/upb/courses-api/repositories"
)

// TransactionManager satisfies repositories.TransactionManager for the memory store.
// Each repository call is atomic on its own; there is no rollback of earlier writes.
type TransactionManager struct{}

// NewTransactionManager creates a new transaction manager
func NewTransactionManager() repositories.TransactionManager {
	return TransactionManager{}
}

// Begin starts a new transaction
func (TransactionManager) Begin(ctx context.Context) (repositories.Transaction, error) {
	return &transaction{ctx: ctx}, nil
}

type transaction struct {
	ctx context.Context
}

func (t *transaction) Commit() error            { return nil }
func (t *transaction) Rollback() error          { return nil }
func (t *transaction) Context() context.Context { return t.ctx }
