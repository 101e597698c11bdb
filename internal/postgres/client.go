package postgres

import (
	"context"

	"github.com/finbooks/finbooks/internal/logger"
	"go.uber.org/fx"
)

// IClient defines the interface for postgres client operations
type IClient interface {
	// WithTx wraps the given function in a transaction
	WithTx(ctx context.Context, fn func(context.Context) error) error

	// TxFromContext returns the transaction from context if it exists
	TxFromContext(ctx context.Context) *Tx

	// Querier returns the transaction querier if in a transaction, or the base DB
	Querier(ctx context.Context) Querier
}

// Client wraps DB to expose transaction aware query routing
type Client struct {
	db     *DB
	logger *logger.Logger
}

// Module provides an fx.Option to integrate the postgres client with the application
func Module() fx.Option {
	return fx.Options(
		fx.Provide(
			NewDB,
			NewClient,
		),
	)
}

// NewClient creates a new client wrapper with transaction management
func NewClient(db *DB, logger *logger.Logger) IClient {
	return &Client{
		db:     db,
		logger: logger,
	}
}

// WithTx wraps the given function in a transaction. Nested calls are
// handled by the underlying savepoint support, so callers can compose
// transactional operations freely.
func (c *Client) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return c.db.WithTx(ctx, fn)
}

// TxFromContext returns the transaction from context if it exists
func (c *Client) TxFromContext(ctx context.Context) *Tx {
	if tx, ok := GetTx(ctx); ok {
		return tx
	}
	return nil
}

// Querier returns the current transaction querier if in a transaction, or the base DB
func (c *Client) Querier(ctx context.Context) Querier {
	return c.db.GetQuerier(ctx)
}
