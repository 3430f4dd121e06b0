package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type LabelRepoInterface interface {
	List(ctx context.Context) ([]LabelEntry, error)
	FindByID(ctx context.Context, id int) (*LabelEntry, error)
	Create(ctx context.Context, value string) (*LabelEntry, error)
	Update(ctx context.Context, id int, value string) error
	Delete(ctx context.Context, id int) error
}

// LabelRepo serves one (id, label) reference table. Table and column names
// come from the fixed wiring in bootstrap, never from request input.
type LabelRepo struct {
	pool   *pgxpool.Pool
	table  string
	column string
}

func NewLabelRepo(pool *pgxpool.Pool, table, column string) *LabelRepo {
	return &LabelRepo{pool: pool, table: table, column: column}
}

func (r *LabelRepo) List(ctx context.Context) ([]LabelEntry, error) {
	query := fmt.Sprintf(`SELECT id, %s FROM %s ORDER BY id`, r.column, r.table)

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", r.table, err)
	}
	defer rows.Close()

	var entries []LabelEntry
	for rows.Next() {
		var e LabelEntry
		if err := rows.Scan(&e.ID, &e.Value); err != nil {
			return nil, fmt.Errorf("scan %s: %w", r.table, err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", r.table, err)
	}
	return entries, nil
}

func (r *LabelRepo) FindByID(ctx context.Context, id int) (*LabelEntry, error) {
	query := fmt.Sprintf(`SELECT id, %s FROM %s WHERE id = $1`, r.column, r.table)

	var e LabelEntry
	if err := r.pool.QueryRow(ctx, query, id).Scan(&e.ID, &e.Value); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrEntryNotFound
		}
		return nil, fmt.Errorf("query %s: %w", r.table, err)
	}
	return &e, nil
}

func (r *LabelRepo) Create(ctx context.Context, value string) (*LabelEntry, error) {
	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES ($1) RETURNING id`, r.table, r.column)

	e := LabelEntry{Value: value}
	if err := r.pool.QueryRow(ctx, query, value).Scan(&e.ID); err != nil {
		return nil, fmt.Errorf("insert %s: %w", r.table, err)
	}
	return &e, nil
}

func (r *LabelRepo) Update(ctx context.Context, id int, value string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2 WHERE id = $1`, r.table, r.column)

	result, err := r.pool.Exec(ctx, query, id, value)
	if err != nil {
		return fmt.Errorf("update %s: %w", r.table, err)
	}
	if result.RowsAffected() == 0 {
		return ErrEntryNotFound
	}
	return nil
}

func (r *LabelRepo) Delete(ctx context.Context, id int) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.table)

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete %s: %w", r.table, err)
	}
	if result.RowsAffected() == 0 {
		return ErrEntryNotFound
	}
	return nil
}

type ContentTypeRepoInterface interface {
	List(ctx context.Context) ([]ContentType, error)
	FindByID(ctx context.Context, id int) (*ContentType, error)
	Create(ctx context.Context, ct *ContentType) error
	Update(ctx context.Context, ct *ContentType) error
	Delete(ctx context.Context, id int) error
}

type ContentTypeRepo struct {
	pool *pgxpool.Pool
}

func NewContentTypeRepo(pool *pgxpool.Pool) *ContentTypeRepo {
	return &ContentTypeRepo{pool: pool}
}

func (r *ContentTypeRepo) List(ctx context.Context) ([]ContentType, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, type, description, price FROM content_types ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query content types: %w", err)
	}
	defer rows.Close()

	var types []ContentType
	for rows.Next() {
		var ct ContentType
		if err := rows.Scan(&ct.ID, &ct.Type, &ct.Description, &ct.Price); err != nil {
			return nil, fmt.Errorf("scan content type: %w", err)
		}
		types = append(types, ct)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate content types: %w", err)
	}
	return types, nil
}

func (r *ContentTypeRepo) FindByID(ctx context.Context, id int) (*ContentType, error) {
	var ct ContentType
	err := r.pool.QueryRow(ctx,
		`SELECT id, type, description, price FROM content_types WHERE id = $1`, id,
	).Scan(&ct.ID, &ct.Type, &ct.Description, &ct.Price)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrContentTypeNotFound
		}
		return nil, fmt.Errorf("query content type: %w", err)
	}
	return &ct, nil
}

func (r *ContentTypeRepo) Create(ctx context.Context, ct *ContentType) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO content_types (type, description, price) VALUES ($1, $2, $3) RETURNING id`,
		ct.Type, ct.Description, ct.Price,
	).Scan(&ct.ID)
	if err != nil {
		return fmt.Errorf("insert content type: %w", err)
	}
	return nil
}

func (r *ContentTypeRepo) Update(ctx context.Context, ct *ContentType) error {
	result, err := r.pool.Exec(ctx,
		`UPDATE content_types SET type = $2, description = $3, price = $4 WHERE id = $1`,
		ct.ID, ct.Type, ct.Description, ct.Price,
	)
	if err != nil {
		return fmt.Errorf("update content type: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrContentTypeNotFound
	}
	return nil
}

func (r *ContentTypeRepo) Delete(ctx context.Context, id int) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM content_types WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete content type: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrContentTypeNotFound
	}
	return nil
}
