package domain

import "time"

// Canonical state ids, in transition order. There is no fifth state;
// Arrived is terminal.
const (
	StateLoading       = 1
	StateReadyToDepart = 2
	StateInTransit     = 3
	StateArrived       = 4

	StateCycleLength = 4
)

// Shipment is one truck-borne transfer between two centers. The truck is
// assigned at creation and never re-assigned.
type Shipment struct {
	ID                 int64 `json:"id" db:"id"`
	TruckID            int64 `json:"truck_id" db:"truck_id"`
	ShipmentPriorityID int64 `json:"shipment_priority_id" db:"shipment_priority_id"`
	SendCenter         int64 `json:"send_center" db:"send_center"`
	ReceiveCenter      int64 `json:"receive_center" db:"receive_center"`
}

// ShipmentState is one dated interval of the shipment's history. EndDate is
// nil while the state is active; the terminal state is closed at its own
// start.
type ShipmentState struct {
	ID         int64      `json:"id" db:"id"`
	ShipmentID int64      `json:"shipment_id" db:"shipment_id"`
	StatesID   int        `json:"states_id" db:"states_id"`
	StartDate  time.Time  `json:"start_date" db:"start_date"`
	EndDate    *time.Time `json:"end_date" db:"end_date"`
}

// ValidStateID reports whether id names one of the four canonical states.
func ValidStateID(id int) bool {
	return id >= StateLoading && id <= StateArrived
}

// StateLabel returns the catalog label for a state id.
func StateLabel(id int) string {
	switch id {
	case StateLoading:
		return "Loading"
	case StateReadyToDepart:
		return "Ready to depart"
	case StateInTransit:
		return "In transit"
	case StateArrived:
		return "Arrived"
	default:
		return "Unknown"
	}
}

// InLoadingLeg classifies a shipment as "currently in its loading leg" from
// the raw size of its state history: whole multiples of the 4-state cycle
// plus the fresh re-entry into state 1. Under the transition rules a history
// never exceeds 4 rows, so only stateCount==1 matches in practice; the
// modulo form is the report's contract and is kept as is.
func InLoadingLeg(stateCount int) bool {
	return (stateCount-1)%StateCycleLength == 0
}
