package out

import (
	"context"

	in "github.com/ibrahimalsalim/tracker-api/internal/cargo/application/ports/in"
	"github.com/ibrahimalsalim/tracker-api/internal/cargo/domain"
)

type TxManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type CargoRepository interface {
	// Create inserts the cargo and fills in its id.
	Create(ctx context.Context, c *domain.Cargo) error

	// InsertContents bulk-inserts the content lines of one cargo.
	InsertContents(ctx context.Context, contents []domain.CargoContent) error

	Count(ctx context.Context) (int64, error)

	// ListViews returns joined read models. limit 0 disables pagination.
	ListViews(ctx context.Context, limit, offset int) ([]in.CargoView, error)
	ListViewsByShipment(ctx context.Context, shipmentID int64) ([]in.CargoView, error)
	GetView(ctx context.Context, id int64) (*in.CargoView, error)

	UpdateState(ctx context.Context, id int64, state string) error
	Delete(ctx context.Context, id int64) error
}

type ClientRepository interface {
	// FindOrCreate matches by national id and inserts only when absent; an
	// existing client's stored fields are never overwritten.
	FindOrCreate(ctx context.Context, c *domain.Client) error

	// Create inserts the client and fails with ErrNationalIDTaken when the
	// national id is already on file.
	Create(ctx context.Context, c *domain.Client) error

	FindByNationalID(ctx context.Context, nationalID string) (*domain.Client, error)

	List(ctx context.Context, limit, offset int) ([]domain.Client, error)
	Count(ctx context.Context) (int64, error)
	FindByID(ctx context.Context, id int64) (*domain.Client, error)
	Update(ctx context.Context, c *domain.Client) error
	Delete(ctx context.Context, id int64) error
}

// ReferenceChecker verifies the existence of rows referenced by an intake.
type ReferenceChecker interface {
	ShipmentExists(ctx context.Context, id int64) (bool, error)
	ContentTypeExists(ctx context.Context, id int) (bool, error)
}

// EventPublisher emits intake events after a successful commit. Failures are
// logged by implementations and never fail the request.
type EventPublisher interface {
	CargoCreated(ctx context.Context, view *in.CargoView)
}
