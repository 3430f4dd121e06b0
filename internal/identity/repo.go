package identity

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UserRepoInterface interface {
	Create(ctx context.Context, u *User) error
	List(ctx context.Context, limit, offset int) ([]User, error)
	Count(ctx context.Context) (int64, error)
	FindByID(ctx context.Context, id int64) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	Update(ctx context.Context, u *User) error
	Delete(ctx context.Context, id int64) error
	EmailTaken(ctx context.Context, email string, excludeUserID int64) (bool, error)
	TypeExists(ctx context.Context, typeID int) (bool, error)
}

type UserRepo struct {
	pool *pgxpool.Pool
}

func NewUserRepo(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

func (r *UserRepo) Create(ctx context.Context, u *User) error {
	query := `
		INSERT INTO users (type, first_name, last_name, date_of_birth, address, email, username, password)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`

	err := r.pool.QueryRow(ctx, query,
		u.Type, u.FirstName, u.LastName, u.DateOfBirth,
		u.Address, u.Email, u.Username, u.Password,
	).Scan(&u.ID)
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

const userSelect = `
	SELECT id, type, first_name, last_name, date_of_birth, address, email, username, password
	FROM users
`

func (r *UserRepo) List(ctx context.Context, limit, offset int) ([]User, error) {
	rows, err := r.pool.Query(ctx, userSelect+" ORDER BY id LIMIT $1 OFFSET $2", limit, offset)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		var u User
		if err := rows.Scan(
			&u.ID, &u.Type, &u.FirstName, &u.LastName, &u.DateOfBirth,
			&u.Address, &u.Email, &u.Username, &u.Password,
		); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}
	return users, nil
}

func (r *UserRepo) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&total); err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return total, nil
}

func (r *UserRepo) FindByID(ctx context.Context, id int64) (*User, error) {
	return r.findOne(ctx, userSelect+" WHERE id = $1", id)
}

func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*User, error) {
	return r.findOne(ctx, userSelect+" WHERE email = $1", email)
}

func (r *UserRepo) findOne(ctx context.Context, query string, arg any) (*User, error) {
	var u User
	err := r.pool.QueryRow(ctx, query, arg).Scan(
		&u.ID, &u.Type, &u.FirstName, &u.LastName, &u.DateOfBirth,
		&u.Address, &u.Email, &u.Username, &u.Password,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("query user: %w", err)
	}
	return &u, nil
}

func (r *UserRepo) Update(ctx context.Context, u *User) error {
	query := `
		UPDATE users
		SET first_name = $2, last_name = $3, date_of_birth = $4, address = $5, email = $6, username = $7
		WHERE id = $1
	`

	result, err := r.pool.Exec(ctx, query,
		u.ID, u.FirstName, u.LastName, u.DateOfBirth, u.Address, u.Email, u.Username,
	)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepo) Delete(ctx context.Context, id int64) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepo) EmailTaken(ctx context.Context, email string, excludeUserID int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE email = $1 AND id <> $2)`,
		email, excludeUserID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check user email: %w", err)
	}
	return exists, nil
}

func (r *UserRepo) TypeExists(ctx context.Context, typeID int) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM user_types WHERE id = $1)`, typeID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check user type: %w", err)
	}
	return exists, nil
}
