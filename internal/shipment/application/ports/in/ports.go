package in

import (
	"context"
	"time"

	"github.com/ibrahimalsalim/tracker-api/internal/shared/pagination"
	"github.com/ibrahimalsalim/tracker-api/internal/shipment/domain"
)

// CenterSummary is the joined center projection used in list responses.
type CenterSummary struct {
	ID   int64  `json:"id"`
	City string `json:"city"`
}

// StateInterval is one joined history row with its catalog label.
type StateInterval struct {
	State     string     `json:"state"`
	StatesID  int        `json:"states_id"`
	StartDate time.Time  `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`
}

// ShipmentView is the read model for shipment listings: the shipment joined
// with its truck, centers, priority and full state history.
type ShipmentView struct {
	ID          int64           `json:"id"`
	TruckID     int64           `json:"truck_id"`
	TruckType   string          `json:"truck_type"`
	TruckModel  string          `json:"truck_model"`
	Send        CenterSummary   `json:"send"`
	Receive     CenterSummary   `json:"receive"`
	Priority    string          `json:"priority"`
	States      []StateInterval `json:"shipment_states"`
	Destination string          `json:"destination,omitempty"` // "send" | "receive" on center-scoped listings
}

type CreateShipmentInput struct {
	TruckID            int64
	ShipmentPriorityID int64
	SendCenter         int64
	ReceiveCenter      int64
}

type CreateShipmentUseCase interface {
	Execute(ctx context.Context, input CreateShipmentInput) (*domain.Shipment, error)
}

type AdvanceStateInput struct {
	ShipmentID int64
	StatesID   int
}

// AdvanceStateUseCase moves a shipment to the next state in the fixed
// loading -> ready -> in-transit -> arrived sequence.
type AdvanceStateUseCase interface {
	Execute(ctx context.Context, input AdvanceStateInput) (*domain.ShipmentState, error)
}

// CenterDirection selects which side of a shipment a center listing matches.
type CenterDirection int

const (
	DirectionAny CenterDirection = iota
	DirectionSent
	DirectionReceived
)

type ShipmentQueries interface {
	List(ctx context.Context, page, limit int) ([]ShipmentView, pagination.Meta, error)
	GetByID(ctx context.Context, id int64) (*ShipmentView, error)
	ListByCenter(ctx context.Context, centerID int64, dir CenterDirection, page, limit int) ([]ShipmentView, pagination.Meta, error)
	StateHistory(ctx context.Context, shipmentID int64) ([]StateInterval, error)
	Delete(ctx context.Context, id int64) error
}

// LoadingReportUseCase lists the shipments of a sending center that are
// currently in their loading leg.
type LoadingReportUseCase interface {
	Execute(ctx context.Context, centerID int64) ([]ShipmentView, error)
}
