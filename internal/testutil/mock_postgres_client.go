package testutil

import (
	"context"

	"github.com/finbooks/finbooks/internal/logger"
	"github.com/finbooks/finbooks/internal/postgres"
)

var _ postgres.IClient = (*MockPostgresClient)(nil)

// MockPostgresClient satisfies postgres.IClient for tests that run
// against in-memory stores. WithTx just runs the function; the stores
// have no transactional semantics to coordinate.
type MockPostgresClient struct {
	logger *logger.Logger
}

// NewMockPostgresClient creates a new mock postgres client
func NewMockPostgresClient(logger *logger.Logger) postgres.IClient {
	return &MockPostgresClient{
		logger: logger,
	}
}

// WithTx executes the given function without a real transaction
func (c *MockPostgresClient) WithTx(ctx context.Context, fn func(context.Context) error) error {
	return fn(ctx)
}

// TxFromContext returns the transaction from context if it exists
func (c *MockPostgresClient) TxFromContext(ctx context.Context) *postgres.Tx {
	if tx, ok := postgres.GetTx(ctx); ok {
		return tx
	}
	return nil
}

// Querier returns nil; in-memory repositories never touch the database
func (c *MockPostgresClient) Querier(ctx context.Context) postgres.Querier {
	return nil
}
