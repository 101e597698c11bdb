package postgres

import (
	"context"

	"github.com/finbooks/finbooks/internal/logger"
	sentryService "github.com/finbooks/finbooks/internal/sentry"
)

// SentryClient wraps the standard postgres client with Sentry monitoring
type SentryClient struct {
	client IClient
	sentry *sentryService.Service
	logger *logger.Logger
}

// NewSentryClient creates a new Sentry-instrumented Postgres client
func NewSentryClient(client IClient, sentry *sentryService.Service, logger *logger.Logger) IClient {
	return &SentryClient{
		client: client,
		sentry: sentry,
		logger: logger,
	}
}

// WithTx wraps the given function in a transaction with Sentry span tracking
func (c *SentryClient) WithTx(ctx context.Context, fn func(context.Context) error) error {
	span, spanCtx := c.sentry.StartDBSpan(ctx, "postgres.transaction", map[string]interface{}{
		"operation": "transaction",
	})
	if span != nil {
		defer span.Finish()
	}

	return c.client.WithTx(spanCtx, fn)
}

// TxFromContext returns the transaction from context if it exists
func (c *SentryClient) TxFromContext(ctx context.Context) *Tx {
	return c.client.TxFromContext(ctx)
}

// Querier returns the current transaction querier if in a transaction, or the base DB.
// No span tracking here, the repository layer starts spans per query.
func (c *SentryClient) Querier(ctx context.Context) Querier {
	return c.client.Querier(ctx)
}
