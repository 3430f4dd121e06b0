package in

import (
	"context"
	"time"

	"github.com/ibrahimalsalim/tracker-api/internal/cargo/domain"
	"github.com/ibrahimalsalim/tracker-api/internal/shared/pagination"
)

// ClientInput carries the full client record sent with an intake. Matching
// is by national id only; an existing client's stored fields win.
type ClientInput struct {
	NationalID  string
	FirstName   string
	LastName    string
	DateOfBirth time.Time
	Address     string
	PhoneNumber string
}

type ContentInput struct {
	ContentTypeID int
	Quantity      int
	Weight        float64
}

type CreateCargoInput struct {
	ShipmentID int64
	Sender     ClientInput
	Receiver   ClientInput
	Contents   []ContentInput
}

// ClientSummary is the joined client projection in cargo views.
type ClientSummary struct {
	ID          int64  `json:"id"`
	NationalID  string `json:"national_id"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	PhoneNumber string `json:"phone_number"`
}

// ContentLine is one content row joined with its catalog type and unit price.
type ContentLine struct {
	ContentTypeID int     `json:"content_type_id"`
	Type          string  `json:"type"`
	Quantity      int     `json:"quantity"`
	Weight        float64 `json:"weight"`
	Price         float64 `json:"price"`
}

// CargoView is the read model for cargo responses.
type CargoView struct {
	ID         int64         `json:"id"`
	ShipmentID int64         `json:"shipment_id"`
	State      string        `json:"state"`
	Sender     ClientSummary `json:"sender"`
	Receiver   ClientSummary `json:"receiver"`
	Contents   []ContentLine `json:"contents"`
}

type CreateCargoUseCase interface {
	Execute(ctx context.Context, input CreateCargoInput) (*CargoView, error)
}

type CargoQueries interface {
	List(ctx context.Context, page, limit int) ([]CargoView, pagination.Meta, error)
	GetByID(ctx context.Context, id int64) (*CargoView, error)
	ListByShipment(ctx context.Context, shipmentID int64) ([]CargoView, error)
	UpdateState(ctx context.Context, id int64, state string) error
	Delete(ctx context.Context, id int64) error
}

type UpdateClientInput struct {
	FirstName   string
	LastName    string
	DateOfBirth time.Time
	Address     string
	PhoneNumber string
}

type ClientQueries interface {
	Create(ctx context.Context, input ClientInput) (*domain.Client, error)
	List(ctx context.Context, page, limit int) ([]domain.Client, pagination.Meta, error)
	GetByID(ctx context.Context, id int64) (*domain.Client, error)
	GetByNationalID(ctx context.Context, nationalID string) (*domain.Client, error)
	Update(ctx context.Context, id int64, input UpdateClientInput) error
	Delete(ctx context.Context, id int64) error
}
