package repo

import (
	"context"
	"fmt"

	out "github.com/ibrahimalsalim/tracker-api/internal/cargo/application/ports/out"
	"github.com/ibrahimalsalim/tracker-api/internal/shared/db"

	"github.com/jackc/pgx/v5/pgxpool"
)

type referenceCheckerPg struct {
	pool *pgxpool.Pool
}

func NewReferenceCheckerPg(pool *pgxpool.Pool) out.ReferenceChecker {
	return &referenceCheckerPg{pool: pool}
}

func (c *referenceCheckerPg) ShipmentExists(ctx context.Context, id int64) (bool, error) {
	return c.exists(ctx, `SELECT EXISTS (SELECT 1 FROM shipments WHERE id = $1)`, id)
}

func (c *referenceCheckerPg) ContentTypeExists(ctx context.Context, id int) (bool, error) {
	return c.exists(ctx, `SELECT EXISTS (SELECT 1 FROM content_types WHERE id = $1)`, int64(id))
}

func (c *referenceCheckerPg) exists(ctx context.Context, query string, id int64) (bool, error) {
	var exists bool
	err := db.QuerierFrom(ctx, c.pool).QueryRow(ctx, query, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check reference: %w", err)
	}
	return exists, nil
}
