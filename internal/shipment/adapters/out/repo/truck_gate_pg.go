package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/ibrahimalsalim/tracker-api/internal/shared/db"
	out "github.com/ibrahimalsalim/tracker-api/internal/shipment/application/ports/out"
	"github.com/ibrahimalsalim/tracker-api/internal/shipment/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type truckGatePg struct {
	pool *pgxpool.Pool
}

func NewTruckGatePg(pool *pgxpool.Pool) out.TruckGate {
	return &truckGatePg{pool: pool}
}

func (g *truckGatePg) FindForUpdate(ctx context.Context, truckID int64) (*out.TruckStatus, error) {
	query := `SELECT id, is_ready, center_id FROM trucks WHERE id = $1 FOR UPDATE`

	var t out.TruckStatus
	err := db.QuerierFrom(ctx, g.pool).QueryRow(ctx, query, truckID).Scan(&t.ID, &t.IsReady, &t.CenterID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTruckNotAvailable
		}
		return nil, fmt.Errorf("query truck: %w", err)
	}
	return &t, nil
}

func (g *truckGatePg) Reserve(ctx context.Context, truckID int64) error {
	result, err := db.QuerierFrom(ctx, g.pool).
		Exec(ctx, `UPDATE trucks SET is_ready = FALSE WHERE id = $1`, truckID)
	if err != nil {
		return fmt.Errorf("reserve truck: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrTruckNotAvailable
	}
	return nil
}

func (g *truckGatePg) Release(ctx context.Context, truckID int64, centerID int64) error {
	result, err := db.QuerierFrom(ctx, g.pool).
		Exec(ctx, `UPDATE trucks SET is_ready = TRUE, center_id = $2 WHERE id = $1`, truckID, centerID)
	if err != nil {
		return fmt.Errorf("release truck: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrTruckNotAvailable
	}
	return nil
}
