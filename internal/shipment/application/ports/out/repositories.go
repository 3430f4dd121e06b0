package out

import (
	"context"
	"time"

	in "github.com/ibrahimalsalim/tracker-api/internal/shipment/application/ports/in"
	"github.com/ibrahimalsalim/tracker-api/internal/shipment/domain"
)

// TxManager runs a function inside one database transaction.
type TxManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type ShipmentRepository interface {
	// Create inserts the shipment and fills in its id.
	Create(ctx context.Context, s *domain.Shipment) error

	// FindByIDForUpdate loads the shipment with a row lock, serializing
	// concurrent state transitions for the same shipment.
	FindByIDForUpdate(ctx context.Context, id int64) (*domain.Shipment, error)

	FindByID(ctx context.Context, id int64) (*domain.Shipment, error)
	Delete(ctx context.Context, id int64) error

	Count(ctx context.Context) (int64, error)
	CountByCenter(ctx context.Context, centerID int64, dir in.CenterDirection) (int64, error)

	// ListViews returns joined read models; centerID 0 with DirectionAny
	// lists everything. limit 0 disables pagination.
	ListViews(ctx context.Context, centerID int64, dir in.CenterDirection, limit, offset int) ([]in.ShipmentView, error)
	GetView(ctx context.Context, id int64) (*in.ShipmentView, error)
}

type ShipmentStateRepository interface {
	Exists(ctx context.Context, shipmentID int64, statesID int) (bool, error)

	// Close sets end_date on the row (shipmentID, statesID).
	Close(ctx context.Context, shipmentID int64, statesID int, endDate time.Time) error

	// Insert adds a history row and fills in its id.
	Insert(ctx context.Context, s *domain.ShipmentState) error

	ListByShipment(ctx context.Context, shipmentID int64) ([]in.StateInterval, error)
}

// TruckGate is the shipment context's view of the fleet: reserving a truck
// for a new shipment and releasing it on arrival.
type TruckGate interface {
	// FindForUpdate loads the truck's readiness and current center with a
	// row lock.
	FindForUpdate(ctx context.Context, truckID int64) (*TruckStatus, error)

	// Reserve marks the truck as committed to a shipment.
	Reserve(ctx context.Context, truckID int64) error

	// Release returns the truck to the available pool at the given center.
	// The state machine calls this on reaching the terminal state only.
	Release(ctx context.Context, truckID int64, centerID int64) error
}

type TruckStatus struct {
	ID       int64
	IsReady  bool
	CenterID *int64
}

// ReferenceChecker verifies the existence of referenced rows.
type ReferenceChecker interface {
	CenterExists(ctx context.Context, id int64) (bool, error)
	PriorityExists(ctx context.Context, id int64) (bool, error)
}

// EventPublisher emits lifecycle events after a successful commit. Failures
// are logged by implementations and never fail the request.
type EventPublisher interface {
	ShipmentCreated(ctx context.Context, s *domain.Shipment)
	StateChanged(ctx context.Context, state *domain.ShipmentState)
	ShipmentArrived(ctx context.Context, s *domain.Shipment, at time.Time)
}
