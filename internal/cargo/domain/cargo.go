package domain

import "time"

// CargoStateNotReceived is the state every cargo is created in. Cargo state
// is free text updated by operators, unlike the fixed shipment state cycle.
const CargoStateNotReceived = "Not Received"

// Cargo is one consignment carried by a shipment, between two clients.
type Cargo struct {
	ID         int64  `json:"id" db:"id"`
	ShipmentID int64  `json:"shipment_id" db:"shipment_id"`
	SenderID   int64  `json:"sender_id" db:"sender_id"`
	ReceiverID int64  `json:"receiver_id" db:"receiver_id"`
	State      string `json:"state" db:"state"`
}

// CargoContent is one typed line of a cargo.
type CargoContent struct {
	ID            int64   `json:"id" db:"id"`
	CargoID       int64   `json:"cargo_id" db:"cargo_id"`
	ContentTypeID int     `json:"content_type_id" db:"content_type_id"`
	Quantity      int     `json:"quantity" db:"quantity"`
	Weight        float64 `json:"weight" db:"weight"`
}

// Client is a cargo sender or receiver, identified by national id. Clients
// are created on first intake and reused afterwards.
type Client struct {
	ID          int64     `json:"id" db:"id"`
	NationalID  string    `json:"national_id" db:"national_id"`
	FirstName   string    `json:"first_name" db:"first_name"`
	LastName    string    `json:"last_name" db:"last_name"`
	DateOfBirth time.Time `json:"date_of_birth" db:"date_of_birth"`
	Address     string    `json:"address" db:"address"`
	PhoneNumber string    `json:"phone_number" db:"phone_number"`
}
