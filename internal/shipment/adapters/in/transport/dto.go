package transport

import (
	in "github.com/ibrahimalsalim/tracker-api/internal/shipment/application/ports/in"
	"github.com/ibrahimalsalim/tracker-api/internal/shared/pagination"
)

type createShipmentRequest struct {
	TruckID            int64 `json:"truck_id"`
	ShipmentPriorityID int64 `json:"shipment_priority_id"`
	SendCenter         int64 `json:"send_center"`
	ReceiveCenter      int64 `json:"receive_center"`
}

type advanceStateRequest struct {
	ShipmentID int64 `json:"shipment_id"`
	StatesID   int   `json:"states_id"`
}

type listResponse struct {
	Data []in.ShipmentView `json:"data"`
	Meta pagination.Meta   `json:"meta"`
}

type advanceStateResponse struct {
	Success           bool `json:"success"`
	CurrShipmentState any  `json:"currShipmentState"`
}

type loadingReportResponse struct {
	Success bool              `json:"success"`
	Data    []in.ShipmentView `json:"data"`
}
