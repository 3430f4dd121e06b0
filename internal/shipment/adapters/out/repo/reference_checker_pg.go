package repo

import (
	"context"
	"fmt"

	"github.com/ibrahimalsalim/tracker-api/internal/shared/db"
	out "github.com/ibrahimalsalim/tracker-api/internal/shipment/application/ports/out"

	"github.com/jackc/pgx/v5/pgxpool"
)

type referenceCheckerPg struct {
	pool *pgxpool.Pool
}

func NewReferenceCheckerPg(pool *pgxpool.Pool) out.ReferenceChecker {
	return &referenceCheckerPg{pool: pool}
}

func (c *referenceCheckerPg) CenterExists(ctx context.Context, id int64) (bool, error) {
	return c.exists(ctx, `SELECT EXISTS (SELECT 1 FROM centers WHERE id = $1)`, id)
}

func (c *referenceCheckerPg) PriorityExists(ctx context.Context, id int64) (bool, error) {
	return c.exists(ctx, `SELECT EXISTS (SELECT 1 FROM shipment_priorities WHERE id = $1)`, id)
}

func (c *referenceCheckerPg) exists(ctx context.Context, query string, id int64) (bool, error) {
	var exists bool
	err := db.QuerierFrom(ctx, c.pool).QueryRow(ctx, query, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check reference: %w", err)
	}
	return exists, nil
}
