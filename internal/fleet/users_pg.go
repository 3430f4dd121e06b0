package fleet

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type userRoleCheckerPg struct {
	pool *pgxpool.Pool
}

func NewUserRoleCheckerPg(pool *pgxpool.Pool) UserRoleChecker {
	return &userRoleCheckerPg{pool: pool}
}

func (c *userRoleCheckerPg) UserHasType(ctx context.Context, userID int64, typeID int) (bool, error) {
	var ok bool
	err := c.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE id = $1 AND type = $2)`,
		userID, typeID,
	).Scan(&ok)
	if err != nil {
		return false, fmt.Errorf("check user role: %w", err)
	}
	return ok, nil
}
