package repo

import (
	"context"
	"fmt"

	in "github.com/ibrahimalsalim/tracker-api/internal/cargo/application/ports/in"
	out "github.com/ibrahimalsalim/tracker-api/internal/cargo/application/ports/out"
	"github.com/ibrahimalsalim/tracker-api/internal/cargo/domain"
	"github.com/ibrahimalsalim/tracker-api/internal/shared/db"

	"github.com/jackc/pgx/v5/pgxpool"
)

type cargoPgRepository struct {
	pool *pgxpool.Pool
}

func NewCargoPgRepository(pool *pgxpool.Pool) out.CargoRepository {
	return &cargoPgRepository{pool: pool}
}

func (r *cargoPgRepository) Create(ctx context.Context, c *domain.Cargo) error {
	query := `
		INSERT INTO cargos (shipment_id, sender_id, receiver_id, state)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	err := db.QuerierFrom(ctx, r.pool).
		QueryRow(ctx, query, c.ShipmentID, c.SenderID, c.ReceiverID, c.State).
		Scan(&c.ID)
	if err != nil {
		return fmt.Errorf("insert cargo: %w", err)
	}
	return nil
}

func (r *cargoPgRepository) InsertContents(ctx context.Context, contents []domain.CargoContent) error {
	q := db.QuerierFrom(ctx, r.pool)

	query := `
		INSERT INTO cargo_contents (cargo_id, content_type_id, quantity, weight)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	for i := range contents {
		c := &contents[i]
		err := q.QueryRow(ctx, query, c.CargoID, c.ContentTypeID, c.Quantity, c.Weight).Scan(&c.ID)
		if err != nil {
			return fmt.Errorf("insert cargo content: %w", err)
		}
	}
	return nil
}

func (r *cargoPgRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := db.QuerierFrom(ctx, r.pool).QueryRow(ctx, `SELECT COUNT(*) FROM cargos`).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("count cargos: %w", err)
	}
	return total, nil
}

const cargoViewSelect = `
	SELECT c.id, c.shipment_id, c.state,
	       s.id, s.national_id, s.first_name, s.last_name, s.phone_number,
	       rc.id, rc.national_id, rc.first_name, rc.last_name, rc.phone_number
	FROM cargos c
	JOIN clients s ON s.id = c.sender_id
	JOIN clients rc ON rc.id = c.receiver_id
`

func (r *cargoPgRepository) ListViews(ctx context.Context, limit, offset int) ([]in.CargoView, error) {
	query := cargoViewSelect + " ORDER BY c.id"
	args := []any{}
	if limit > 0 {
		query += " LIMIT $1 OFFSET $2"
		args = append(args, limit, offset)
	}
	return r.queryViews(ctx, query, args...)
}

func (r *cargoPgRepository) ListViewsByShipment(ctx context.Context, shipmentID int64) ([]in.CargoView, error) {
	return r.queryViews(ctx, cargoViewSelect+" WHERE c.shipment_id = $1 ORDER BY c.id", shipmentID)
}

func (r *cargoPgRepository) GetView(ctx context.Context, id int64) (*in.CargoView, error) {
	views, err := r.queryViews(ctx, cargoViewSelect+" WHERE c.id = $1", id)
	if err != nil {
		return nil, err
	}
	if len(views) == 0 {
		return nil, domain.ErrCargoNotFound
	}
	return &views[0], nil
}

func (r *cargoPgRepository) queryViews(ctx context.Context, query string, args ...any) ([]in.CargoView, error) {
	rows, err := db.QuerierFrom(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query cargo views: %w", err)
	}
	defer rows.Close()

	var views []in.CargoView
	var ids []int64

	for rows.Next() {
		var v in.CargoView
		if err := rows.Scan(
			&v.ID,
			&v.ShipmentID,
			&v.State,
			&v.Sender.ID,
			&v.Sender.NationalID,
			&v.Sender.FirstName,
			&v.Sender.LastName,
			&v.Sender.PhoneNumber,
			&v.Receiver.ID,
			&v.Receiver.NationalID,
			&v.Receiver.FirstName,
			&v.Receiver.LastName,
			&v.Receiver.PhoneNumber,
		); err != nil {
			return nil, fmt.Errorf("scan cargo view: %w", err)
		}
		views = append(views, v)
		ids = append(ids, v.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cargo views: %w", err)
	}

	if err := r.attachContents(ctx, views, ids); err != nil {
		return nil, err
	}
	return views, nil
}

func (r *cargoPgRepository) attachContents(ctx context.Context, views []in.CargoView, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}

	query := `
		SELECT cc.cargo_id, cc.content_type_id, ct.type, cc.quantity, cc.weight, ct.price
		FROM cargo_contents cc
		JOIN content_types ct ON ct.id = cc.content_type_id
		WHERE cc.cargo_id = ANY($1)
		ORDER BY cc.cargo_id, cc.id
	`

	rows, err := db.QuerierFrom(ctx, r.pool).Query(ctx, query, ids)
	if err != nil {
		return fmt.Errorf("query cargo contents: %w", err)
	}
	defer rows.Close()

	byCargo := make(map[int64][]in.ContentLine, len(ids))
	for rows.Next() {
		var cargoID int64
		var line in.ContentLine
		if err := rows.Scan(&cargoID, &line.ContentTypeID, &line.Type, &line.Quantity, &line.Weight, &line.Price); err != nil {
			return fmt.Errorf("scan cargo content: %w", err)
		}
		byCargo[cargoID] = append(byCargo[cargoID], line)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate cargo contents: %w", err)
	}

	for i := range views {
		views[i].Contents = byCargo[views[i].ID]
	}
	return nil
}

func (r *cargoPgRepository) UpdateState(ctx context.Context, id int64, state string) error {
	result, err := db.QuerierFrom(ctx, r.pool).
		Exec(ctx, `UPDATE cargos SET state = $2 WHERE id = $1`, id, state)
	if err != nil {
		return fmt.Errorf("update cargo state: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrCargoNotFound
	}
	return nil
}

func (r *cargoPgRepository) Delete(ctx context.Context, id int64) error {
	result, err := db.QuerierFrom(ctx, r.pool).Exec(ctx, `DELETE FROM cargos WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete cargo: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrCargoNotFound
	}
	return nil
}
