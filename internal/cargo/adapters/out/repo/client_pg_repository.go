package repo

import (
	"context"
	"errors"
	"fmt"

	out "github.com/ibrahimalsalim/tracker-api/internal/cargo/application/ports/out"
	"github.com/ibrahimalsalim/tracker-api/internal/cargo/domain"
	"github.com/ibrahimalsalim/tracker-api/internal/shared/db"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type clientPgRepository struct {
	pool *pgxpool.Pool
}

func NewClientPgRepository(pool *pgxpool.Pool) out.ClientRepository {
	return &clientPgRepository{pool: pool}
}

// FindOrCreate inserts the client unless a row with the same national id
// already exists, in which case the stored row wins and its fields are
// loaded back. ON CONFLICT DO NOTHING keeps the operation race-safe under
// concurrent intakes of the same client.
func (r *clientPgRepository) FindOrCreate(ctx context.Context, c *domain.Client) error {
	q := db.QuerierFrom(ctx, r.pool)

	insert := `
		INSERT INTO clients (national_id, first_name, last_name, date_of_birth, address, phone_number)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (national_id) DO NOTHING
		RETURNING id
	`
	err := q.QueryRow(ctx, insert,
		c.NationalID, c.FirstName, c.LastName, c.DateOfBirth, c.Address, c.PhoneNumber,
	).Scan(&c.ID)
	if err == nil {
		return nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("insert client: %w", err)
	}

	query := `
		SELECT id, national_id, first_name, last_name, date_of_birth, address, phone_number
		FROM clients
		WHERE national_id = $1
	`
	err = q.QueryRow(ctx, query, c.NationalID).Scan(
		&c.ID,
		&c.NationalID,
		&c.FirstName,
		&c.LastName,
		&c.DateOfBirth,
		&c.Address,
		&c.PhoneNumber,
	)
	if err != nil {
		return fmt.Errorf("query client by national id: %w", err)
	}
	return nil
}

// Create inserts a directly registered client. ON CONFLICT DO NOTHING turns
// a duplicate national id into pgx.ErrNoRows on the RETURNING scan.
func (r *clientPgRepository) Create(ctx context.Context, c *domain.Client) error {
	query := `
		INSERT INTO clients (national_id, first_name, last_name, date_of_birth, address, phone_number)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (national_id) DO NOTHING
		RETURNING id
	`

	err := db.QuerierFrom(ctx, r.pool).QueryRow(ctx, query,
		c.NationalID, c.FirstName, c.LastName, c.DateOfBirth, c.Address, c.PhoneNumber,
	).Scan(&c.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNationalIDTaken
		}
		return fmt.Errorf("insert client: %w", err)
	}
	return nil
}

func (r *clientPgRepository) FindByNationalID(ctx context.Context, nationalID string) (*domain.Client, error) {
	query := `
		SELECT id, national_id, first_name, last_name, date_of_birth, address, phone_number
		FROM clients
		WHERE national_id = $1
	`

	var c domain.Client
	err := db.QuerierFrom(ctx, r.pool).QueryRow(ctx, query, nationalID).Scan(
		&c.ID, &c.NationalID, &c.FirstName, &c.LastName,
		&c.DateOfBirth, &c.Address, &c.PhoneNumber,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrClientNotFound
		}
		return nil, fmt.Errorf("query client by national id: %w", err)
	}
	return &c, nil
}

func (r *clientPgRepository) List(ctx context.Context, limit, offset int) ([]domain.Client, error) {
	query := `
		SELECT id, national_id, first_name, last_name, date_of_birth, address, phone_number
		FROM clients
		ORDER BY id
		LIMIT $1 OFFSET $2
	`

	rows, err := db.QuerierFrom(ctx, r.pool).Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("query clients: %w", err)
	}
	defer rows.Close()

	var clients []domain.Client
	for rows.Next() {
		var c domain.Client
		if err := rows.Scan(
			&c.ID, &c.NationalID, &c.FirstName, &c.LastName,
			&c.DateOfBirth, &c.Address, &c.PhoneNumber,
		); err != nil {
			return nil, fmt.Errorf("scan client: %w", err)
		}
		clients = append(clients, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate clients: %w", err)
	}
	return clients, nil
}

func (r *clientPgRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := db.QuerierFrom(ctx, r.pool).QueryRow(ctx, `SELECT COUNT(*) FROM clients`).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("count clients: %w", err)
	}
	return total, nil
}

func (r *clientPgRepository) FindByID(ctx context.Context, id int64) (*domain.Client, error) {
	query := `
		SELECT id, national_id, first_name, last_name, date_of_birth, address, phone_number
		FROM clients
		WHERE id = $1
	`

	var c domain.Client
	err := db.QuerierFrom(ctx, r.pool).QueryRow(ctx, query, id).Scan(
		&c.ID, &c.NationalID, &c.FirstName, &c.LastName,
		&c.DateOfBirth, &c.Address, &c.PhoneNumber,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrClientNotFound
		}
		return nil, fmt.Errorf("query client: %w", err)
	}
	return &c, nil
}

func (r *clientPgRepository) Update(ctx context.Context, c *domain.Client) error {
	query := `
		UPDATE clients
		SET first_name = $2, last_name = $3, date_of_birth = $4, address = $5, phone_number = $6
		WHERE id = $1
	`

	result, err := db.QuerierFrom(ctx, r.pool).Exec(ctx, query,
		c.ID, c.FirstName, c.LastName, c.DateOfBirth, c.Address, c.PhoneNumber,
	)
	if err != nil {
		return fmt.Errorf("update client: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrClientNotFound
	}
	return nil
}

func (r *clientPgRepository) Delete(ctx context.Context, id int64) error {
	result, err := db.QuerierFrom(ctx, r.pool).Exec(ctx, `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete client: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrClientNotFound
	}
	return nil
}
