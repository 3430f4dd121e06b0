package tracking

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrTruckNotFound = errors.New("truck not found")

// CenterPoint is one route endpoint of an active shipment.
type CenterPoint struct {
	ID        int64    `json:"id"`
	City      string   `json:"city"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

// ActiveTruck is a truck on a shipment that has not yet arrived, with its
// last reported position and the route endpoints.
type ActiveTruck struct {
	TruckID    int64       `json:"truck_id"`
	ShipmentID int64       `json:"shipment_id"`
	Latitude   *float64    `json:"latitude"`
	Longitude  *float64    `json:"longitude"`
	Send       CenterPoint `json:"send"`
	Receive    CenterPoint `json:"receive"`
}

type RepoInterface interface {
	UpdateTruckLocation(ctx context.Context, truckID int64, latitude, longitude float64) error
	ActiveTrucks(ctx context.Context) ([]ActiveTruck, error)
}

type Repo struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

func (r *Repo) UpdateTruckLocation(ctx context.Context, truckID int64, latitude, longitude float64) error {
	result, err := r.pool.Exec(ctx,
		`UPDATE trucks SET latitude = $2, longitude = $3 WHERE id = $1`,
		truckID, latitude, longitude,
	)
	if err != nil {
		return fmt.Errorf("update truck location: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrTruckNotFound
	}
	return nil
}

// ActiveTrucks lists trucks whose shipment has not entered the terminal
// state, joined with both route endpoints.
func (r *Repo) ActiveTrucks(ctx context.Context) ([]ActiveTruck, error) {
	query := `
		SELECT t.id, s.id, t.latitude, t.longitude,
		       cs.id, cs.city, cs.latitude, cs.longitude,
		       cr.id, cr.city, cr.latitude, cr.longitude
		FROM shipments s
		JOIN trucks t ON t.id = s.truck_id
		JOIN centers cs ON cs.id = s.send_center
		JOIN centers cr ON cr.id = s.receive_center
		WHERE NOT EXISTS (
			SELECT 1 FROM shipment_states ss
			WHERE ss.shipment_id = s.id AND ss.states_id = 4
		)
		ORDER BY t.id
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query active trucks: %w", err)
	}
	defer rows.Close()

	var trucks []ActiveTruck
	for rows.Next() {
		var t ActiveTruck
		if err := rows.Scan(
			&t.TruckID, &t.ShipmentID, &t.Latitude, &t.Longitude,
			&t.Send.ID, &t.Send.City, &t.Send.Latitude, &t.Send.Longitude,
			&t.Receive.ID, &t.Receive.City, &t.Receive.Latitude, &t.Receive.Longitude,
		); err != nil {
			return nil, fmt.Errorf("scan active truck: %w", err)
		}
		trucks = append(trucks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate active trucks: %w", err)
	}
	return trucks, nil
}
