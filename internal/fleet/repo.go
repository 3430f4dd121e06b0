package fleet

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TruckRepoInterface interface {
	Create(ctx context.Context, t *Truck) error
	List(ctx context.Context, limit, offset int) ([]TruckView, error)
	Count(ctx context.Context) (int64, error)
	FindByID(ctx context.Context, id int64) (*TruckView, error)
	Update(ctx context.Context, t *Truck) error
	Delete(ctx context.Context, id int64) error
	DriverHasTruck(ctx context.Context, driverID int64, excludeTruckID int64) (bool, error)
	TypeExists(ctx context.Context, typeID int) (bool, error)
}

type CenterRepoInterface interface {
	Create(ctx context.Context, c *Center) error
	List(ctx context.Context, limit, offset int) ([]Center, error)
	Count(ctx context.Context) (int64, error)
	FindByID(ctx context.Context, id int64) (*Center, error)
	Update(ctx context.Context, c *Center) error
	Delete(ctx context.Context, id int64) error
	LocationTaken(ctx context.Context, location string, excludeCenterID int64) (bool, error)
	Exists(ctx context.Context, id int64) (bool, error)
}

// UserRoleChecker is the fleet context's narrow view of identity: role
// verification for driver and manager references.
type UserRoleChecker interface {
	UserHasType(ctx context.Context, userID int64, typeID int) (bool, error)
}

type TruckRepo struct {
	pool *pgxpool.Pool
}

func NewTruckRepo(pool *pgxpool.Pool) *TruckRepo {
	return &TruckRepo{pool: pool}
}

func (r *TruckRepo) Create(ctx context.Context, t *Truck) error {
	query := `
		INSERT INTO trucks (driver, type, model, center_id, is_ready, latitude, longitude)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	err := r.pool.QueryRow(ctx, query,
		t.Driver, t.Type, t.Model, t.CenterID, t.IsReady, t.Latitude, t.Longitude,
	).Scan(&t.ID)
	if err != nil {
		return fmt.Errorf("insert truck: %w", err)
	}
	return nil
}

const truckViewSelect = `
	SELECT t.id, t.driver, t.type, tt.type, t.model, t.center_id, t.is_ready, t.latitude, t.longitude
	FROM trucks t
	JOIN truck_types tt ON tt.id = t.type
`

func (r *TruckRepo) List(ctx context.Context, limit, offset int) ([]TruckView, error) {
	rows, err := r.pool.Query(ctx, truckViewSelect+" ORDER BY t.id LIMIT $1 OFFSET $2", limit, offset)
	if err != nil {
		return nil, fmt.Errorf("query trucks: %w", err)
	}
	defer rows.Close()

	var trucks []TruckView
	for rows.Next() {
		var t TruckView
		if err := rows.Scan(
			&t.ID, &t.Driver, &t.Type, &t.TypeName, &t.Model,
			&t.CenterID, &t.IsReady, &t.Latitude, &t.Longitude,
		); err != nil {
			return nil, fmt.Errorf("scan truck: %w", err)
		}
		trucks = append(trucks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate trucks: %w", err)
	}
	return trucks, nil
}

func (r *TruckRepo) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM trucks`).Scan(&total); err != nil {
		return 0, fmt.Errorf("count trucks: %w", err)
	}
	return total, nil
}

func (r *TruckRepo) FindByID(ctx context.Context, id int64) (*TruckView, error) {
	var t TruckView
	err := r.pool.QueryRow(ctx, truckViewSelect+" WHERE t.id = $1", id).Scan(
		&t.ID, &t.Driver, &t.Type, &t.TypeName, &t.Model,
		&t.CenterID, &t.IsReady, &t.Latitude, &t.Longitude,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTruckNotFound
		}
		return nil, fmt.Errorf("query truck: %w", err)
	}
	return &t, nil
}

func (r *TruckRepo) Update(ctx context.Context, t *Truck) error {
	query := `
		UPDATE trucks
		SET driver = $2, type = $3, model = $4, center_id = $5
		WHERE id = $1
	`

	result, err := r.pool.Exec(ctx, query, t.ID, t.Driver, t.Type, t.Model, t.CenterID)
	if err != nil {
		return fmt.Errorf("update truck: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrTruckNotFound
	}
	return nil
}

func (r *TruckRepo) Delete(ctx context.Context, id int64) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM trucks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete truck: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrTruckNotFound
	}
	return nil
}

func (r *TruckRepo) DriverHasTruck(ctx context.Context, driverID int64, excludeTruckID int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM trucks WHERE driver = $1 AND id <> $2)`,
		driverID, excludeTruckID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check driver truck: %w", err)
	}
	return exists, nil
}

func (r *TruckRepo) TypeExists(ctx context.Context, typeID int) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM truck_types WHERE id = $1)`, typeID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check truck type: %w", err)
	}
	return exists, nil
}

type CenterRepo struct {
	pool *pgxpool.Pool
}

func NewCenterRepo(pool *pgxpool.Pool) *CenterRepo {
	return &CenterRepo{pool: pool}
}

func (r *CenterRepo) Create(ctx context.Context, c *Center) error {
	query := `
		INSERT INTO centers (manager, city, location, latitude, longitude)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err := r.pool.QueryRow(ctx, query,
		c.Manager, c.City, c.Location, c.Latitude, c.Longitude,
	).Scan(&c.ID)
	if err != nil {
		return fmt.Errorf("insert center: %w", err)
	}
	return nil
}

func (r *CenterRepo) List(ctx context.Context, limit, offset int) ([]Center, error) {
	query := `
		SELECT id, manager, city, location, latitude, longitude
		FROM centers
		ORDER BY id
		LIMIT $1 OFFSET $2
	`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("query centers: %w", err)
	}
	defer rows.Close()

	var centers []Center
	for rows.Next() {
		var c Center
		if err := rows.Scan(&c.ID, &c.Manager, &c.City, &c.Location, &c.Latitude, &c.Longitude); err != nil {
			return nil, fmt.Errorf("scan center: %w", err)
		}
		centers = append(centers, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate centers: %w", err)
	}
	return centers, nil
}

func (r *CenterRepo) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM centers`).Scan(&total); err != nil {
		return 0, fmt.Errorf("count centers: %w", err)
	}
	return total, nil
}

func (r *CenterRepo) FindByID(ctx context.Context, id int64) (*Center, error) {
	query := `
		SELECT id, manager, city, location, latitude, longitude
		FROM centers
		WHERE id = $1
	`

	var c Center
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.Manager, &c.City, &c.Location, &c.Latitude, &c.Longitude,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCenterNotFound
		}
		return nil, fmt.Errorf("query center: %w", err)
	}
	return &c, nil
}

func (r *CenterRepo) Update(ctx context.Context, c *Center) error {
	query := `
		UPDATE centers
		SET manager = $2, city = $3, location = $4, latitude = $5, longitude = $6
		WHERE id = $1
	`

	result, err := r.pool.Exec(ctx, query,
		c.ID, c.Manager, c.City, c.Location, c.Latitude, c.Longitude,
	)
	if err != nil {
		return fmt.Errorf("update center: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrCenterNotFound
	}
	return nil
}

func (r *CenterRepo) Delete(ctx context.Context, id int64) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM centers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete center: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrCenterNotFound
	}
	return nil
}

func (r *CenterRepo) LocationTaken(ctx context.Context, location string, excludeCenterID int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM centers WHERE location = $1 AND id <> $2)`,
		location, excludeCenterID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check center location: %w", err)
	}
	return exists, nil
}

func (r *CenterRepo) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM centers WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check center: %w", err)
	}
	return exists, nil
}
