package repo

import (
	"context"
	"fmt"
	"time"

	"github.com/ibrahimalsalim/tracker-api/internal/shared/db"
	in "github.com/ibrahimalsalim/tracker-api/internal/shipment/application/ports/in"
	out "github.com/ibrahimalsalim/tracker-api/internal/shipment/application/ports/out"
	"github.com/ibrahimalsalim/tracker-api/internal/shipment/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type shipmentStatePgRepository struct {
	pool *pgxpool.Pool
}

func NewShipmentStatePgRepository(pool *pgxpool.Pool) out.ShipmentStateRepository {
	return &shipmentStatePgRepository{pool: pool}
}

func (r *shipmentStatePgRepository) Exists(ctx context.Context, shipmentID int64, statesID int) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM shipment_states WHERE shipment_id = $1 AND states_id = $2)`

	var exists bool
	err := db.QuerierFrom(ctx, r.pool).QueryRow(ctx, query, shipmentID, statesID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check shipment state: %w", err)
	}
	return exists, nil
}

func (r *shipmentStatePgRepository) Close(ctx context.Context, shipmentID int64, statesID int, endDate time.Time) error {
	query := `UPDATE shipment_states SET end_date = $3 WHERE shipment_id = $1 AND states_id = $2`

	result, err := db.QuerierFrom(ctx, r.pool).Exec(ctx, query, shipmentID, statesID, endDate)
	if err != nil {
		return fmt.Errorf("close shipment state: %w", err)
	}
	if result.RowsAffected() == 0 {
		return &domain.MissingPredecessorStateError{StateID: statesID}
	}
	return nil
}

func (r *shipmentStatePgRepository) Insert(ctx context.Context, s *domain.ShipmentState) error {
	query := `
		INSERT INTO shipment_states (shipment_id, states_id, start_date, end_date)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	err := db.QuerierFrom(ctx, r.pool).
		QueryRow(ctx, query, s.ShipmentID, s.StatesID, s.StartDate, s.EndDate).
		Scan(&s.ID)
	if err != nil {
		return fmt.Errorf("insert shipment state: %w", err)
	}
	return nil
}

func (r *shipmentStatePgRepository) ListByShipment(ctx context.Context, shipmentID int64) ([]in.StateInterval, error) {
	query := `
		SELECT ss.states_id, st.state, ss.start_date, ss.end_date
		FROM shipment_states ss
		JOIN states st ON st.id = ss.states_id
		WHERE ss.shipment_id = $1
		ORDER BY ss.states_id
	`

	rows, err := db.QuerierFrom(ctx, r.pool).Query(ctx, query, shipmentID)
	if err != nil {
		return nil, fmt.Errorf("query shipment states: %w", err)
	}
	defer rows.Close()

	var intervals []in.StateInterval
	for rows.Next() {
		var s in.StateInterval
		if err := rows.Scan(&s.StatesID, &s.State, &s.StartDate, &s.EndDate); err != nil {
			return nil, fmt.Errorf("scan shipment state: %w", err)
		}
		intervals = append(intervals, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate shipment states: %w", err)
	}
	return intervals, nil
}
