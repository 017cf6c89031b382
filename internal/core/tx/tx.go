// Package tx defines transaction management abstractions so domain services
// do not depend on a specific database implementation.
package tx

import (
	"context"
)

// Manager defines the contract for transaction management.
// Implementations handle BEGIN, COMMIT and ROLLBACK; nested calls reuse the
// transaction already carried in ctx.
type Manager interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// ReadOnlyManager extends Manager with read-only transaction support.
type ReadOnlyManager interface {
	Manager

	// ReadOnly executes fn in a read-only transaction. Attempts to modify
	// data will fail.
	ReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}
