package postgres

import (
	"context"
	"time"
)

// Ping verifies the database connection is alive. Used by the health
// endpoint so a wedged connection pool surfaces as a failing check
// instead of slow requests.
func (db *DB) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return db.DB.PingContext(ctx)
}
