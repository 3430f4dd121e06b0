package transport

import (
	"fmt"
	"time"

	in "github.com/ibrahimalsalim/tracker-api/internal/cargo/application/ports/in"
	"github.com/ibrahimalsalim/tracker-api/internal/cargo/domain"
	"github.com/ibrahimalsalim/tracker-api/internal/shared/pagination"
)

const dateLayout = "2006-01-02"

type clientPayload struct {
	NationalID  string `json:"national_id"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	DateOfBirth string `json:"date_of_birth"`
	Address     string `json:"address"`
	PhoneNumber string `json:"phone_number"`
}

func (p clientPayload) toInput() (in.ClientInput, error) {
	if p.NationalID == "" {
		return in.ClientInput{}, fmt.Errorf("national_id is required")
	}
	dob, err := time.Parse(dateLayout, p.DateOfBirth)
	if err != nil {
		return in.ClientInput{}, fmt.Errorf("date_of_birth must be YYYY-MM-DD")
	}
	return in.ClientInput{
		NationalID:  p.NationalID,
		FirstName:   p.FirstName,
		LastName:    p.LastName,
		DateOfBirth: dob,
		Address:     p.Address,
		PhoneNumber: p.PhoneNumber,
	}, nil
}

type contentPayload struct {
	ContentTypeID int     `json:"content_type_id"`
	Quantity      int     `json:"quantity"`
	Weight        float64 `json:"weight"`
}

type createCargoRequest struct {
	ShipmentID int64            `json:"shipment_id"`
	Sender     clientPayload    `json:"sender"`
	Receiver   clientPayload    `json:"receiver"`
	Contents   []contentPayload `json:"contents"`
}

type updateCargoRequest struct {
	State string `json:"state"`
}

type updateClientRequest struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	DateOfBirth string `json:"date_of_birth"`
	Address     string `json:"address"`
	PhoneNumber string `json:"phone_number"`
}

type cargoListResponse struct {
	Data []in.CargoView  `json:"data"`
	Meta pagination.Meta `json:"meta"`
}

type clientListResponse struct {
	Data []domain.Client `json:"data"`
	Meta pagination.Meta `json:"meta"`
}

type createCargoResponse struct {
	Success      bool          `json:"success"`
	CreatedCargo *in.CargoView `json:"createdCargo"`
}
