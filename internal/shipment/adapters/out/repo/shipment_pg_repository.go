package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/ibrahimalsalim/tracker-api/internal/shared/db"
	in "github.com/ibrahimalsalim/tracker-api/internal/shipment/application/ports/in"
	out "github.com/ibrahimalsalim/tracker-api/internal/shipment/application/ports/out"
	"github.com/ibrahimalsalim/tracker-api/internal/shipment/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type shipmentPgRepository struct {
	pool *pgxpool.Pool
}

func NewShipmentPgRepository(pool *pgxpool.Pool) out.ShipmentRepository {
	return &shipmentPgRepository{pool: pool}
}

func (r *shipmentPgRepository) Create(ctx context.Context, s *domain.Shipment) error {
	query := `
		INSERT INTO shipments (truck_id, shipment_priority_id, send_center, receive_center)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	err := db.QuerierFrom(ctx, r.pool).
		QueryRow(ctx, query, s.TruckID, s.ShipmentPriorityID, s.SendCenter, s.ReceiveCenter).
		Scan(&s.ID)
	if err != nil {
		return fmt.Errorf("insert shipment: %w", err)
	}
	return nil
}

func (r *shipmentPgRepository) FindByID(ctx context.Context, id int64) (*domain.Shipment, error) {
	return r.find(ctx, id, false)
}

func (r *shipmentPgRepository) FindByIDForUpdate(ctx context.Context, id int64) (*domain.Shipment, error) {
	return r.find(ctx, id, true)
}

func (r *shipmentPgRepository) find(ctx context.Context, id int64, forUpdate bool) (*domain.Shipment, error) {
	query := `
		SELECT id, truck_id, shipment_priority_id, send_center, receive_center
		FROM shipments
		WHERE id = $1
	`
	if forUpdate {
		query += " FOR UPDATE"
	}

	var s domain.Shipment
	err := db.QuerierFrom(ctx, r.pool).QueryRow(ctx, query, id).Scan(
		&s.ID,
		&s.TruckID,
		&s.ShipmentPriorityID,
		&s.SendCenter,
		&s.ReceiveCenter,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrShipmentNotFound
		}
		return nil, fmt.Errorf("query shipment: %w", err)
	}

	return &s, nil
}

func (r *shipmentPgRepository) Delete(ctx context.Context, id int64) error {
	result, err := db.QuerierFrom(ctx, r.pool).Exec(ctx, `DELETE FROM shipments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete shipment: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrShipmentNotFound
	}
	return nil
}

func (r *shipmentPgRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := db.QuerierFrom(ctx, r.pool).QueryRow(ctx, `SELECT COUNT(*) FROM shipments`).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("count shipments: %w", err)
	}
	return total, nil
}

func (r *shipmentPgRepository) CountByCenter(ctx context.Context, centerID int64, dir in.CenterDirection) (int64, error) {
	query := `SELECT COUNT(*) FROM shipments WHERE ` + centerClause(dir)

	var total int64
	err := db.QuerierFrom(ctx, r.pool).QueryRow(ctx, query, centerID).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("count shipments by center: %w", err)
	}
	return total, nil
}

func centerClause(dir in.CenterDirection) string {
	switch dir {
	case in.DirectionSent:
		return "send_center = $1"
	case in.DirectionReceived:
		return "receive_center = $1"
	default:
		return "(send_center = $1 OR receive_center = $1)"
	}
}

const viewSelect = `
	SELECT s.id, s.truck_id, tt.type, t.model,
	       cs.id, cs.city,
	       cr.id, cr.city,
	       p.priority,
	       s.send_center
	FROM shipments s
	JOIN trucks t ON t.id = s.truck_id
	JOIN truck_types tt ON tt.id = t.type
	JOIN centers cs ON cs.id = s.send_center
	JOIN centers cr ON cr.id = s.receive_center
	JOIN shipment_priorities p ON p.id = s.shipment_priority_id
`

func (r *shipmentPgRepository) ListViews(ctx context.Context, centerID int64, dir in.CenterDirection, limit, offset int) ([]in.ShipmentView, error) {
	q := db.QuerierFrom(ctx, r.pool)

	query := viewSelect
	args := []any{}
	if centerID != 0 {
		query += " WHERE s." + centerClause(dir)
		args = append(args, centerID)
	}
	query += " ORDER BY s.id"
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
		args = append(args, limit, offset)
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query shipment views: %w", err)
	}
	defer rows.Close()

	var views []in.ShipmentView
	var ids []int64

	for rows.Next() {
		var v in.ShipmentView
		var sendCenter int64

		if err := rows.Scan(
			&v.ID,
			&v.TruckID,
			&v.TruckType,
			&v.TruckModel,
			&v.Send.ID,
			&v.Send.City,
			&v.Receive.ID,
			&v.Receive.City,
			&v.Priority,
			&sendCenter,
		); err != nil {
			return nil, fmt.Errorf("scan shipment view: %w", err)
		}

		if centerID != 0 {
			if sendCenter == centerID {
				v.Destination = "send"
			} else {
				v.Destination = "receive"
			}
		}

		views = append(views, v)
		ids = append(ids, v.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate shipment views: %w", err)
	}

	if err := r.attachStates(ctx, views, ids); err != nil {
		return nil, err
	}

	return views, nil
}

func (r *shipmentPgRepository) GetView(ctx context.Context, id int64) (*in.ShipmentView, error) {
	q := db.QuerierFrom(ctx, r.pool)

	var v in.ShipmentView
	var sendCenter int64

	err := q.QueryRow(ctx, viewSelect+" WHERE s.id = $1", id).Scan(
		&v.ID,
		&v.TruckID,
		&v.TruckType,
		&v.TruckModel,
		&v.Send.ID,
		&v.Send.City,
		&v.Receive.ID,
		&v.Receive.City,
		&v.Priority,
		&sendCenter,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrShipmentNotFound
		}
		return nil, fmt.Errorf("query shipment view: %w", err)
	}

	views := []in.ShipmentView{v}
	if err := r.attachStates(ctx, views, []int64{id}); err != nil {
		return nil, err
	}
	return &views[0], nil
}

// attachStates loads the state history for a page of shipments in one query
// and distributes the intervals over the views.
func (r *shipmentPgRepository) attachStates(ctx context.Context, views []in.ShipmentView, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}

	query := `
		SELECT ss.shipment_id, ss.states_id, st.state, ss.start_date, ss.end_date
		FROM shipment_states ss
		JOIN states st ON st.id = ss.states_id
		WHERE ss.shipment_id = ANY($1)
		ORDER BY ss.shipment_id, ss.states_id
	`

	rows, err := db.QuerierFrom(ctx, r.pool).Query(ctx, query, ids)
	if err != nil {
		return fmt.Errorf("query shipment states: %w", err)
	}
	defer rows.Close()

	byShipment := make(map[int64][]in.StateInterval, len(ids))
	for rows.Next() {
		var shipmentID int64
		var s in.StateInterval
		if err := rows.Scan(&shipmentID, &s.StatesID, &s.State, &s.StartDate, &s.EndDate); err != nil {
			return fmt.Errorf("scan shipment state: %w", err)
		}
		byShipment[shipmentID] = append(byShipment[shipmentID], s)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate shipment states: %w", err)
	}

	for i := range views {
		views[i].States = byShipment[views[i].ID]
	}
	return nil
}
