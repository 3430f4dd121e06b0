package transport

import (
	"net/http"

	"github.com/ibrahimalsalim/tracker-api/internal/shared/auth"
)

// RegisterRoutes mounts the shipment and shipment-state endpoints.
func RegisterRoutes(mux *http.ServeMux, h *Handler, mw *auth.Middleware) {
	mux.HandleFunc("GET /api/shipments", mw.Require(auth.OpShipmentsList, h.List))
	mux.HandleFunc("POST /api/shipments", mw.Require(auth.OpShipmentsCreate, h.Create))
	mux.HandleFunc("GET /api/shipments/id/{id}", mw.Require(auth.OpShipmentsRead, h.GetByID))
	mux.HandleFunc("GET /api/shipments/centerId/{id}", mw.Require(auth.OpShipmentsRead, h.ByCenter))
	mux.HandleFunc("GET /api/shipments/sentshipmentbycenterid/{id}", mw.Require(auth.OpShipmentsRead, h.SentByCenter))
	mux.HandleFunc("GET /api/shipments/receivedshipmentbycenterid/{id}", mw.Require(auth.OpShipmentsRead, h.ReceivedByCenter))
	mux.HandleFunc("GET /api/shipments/loadingshipmentbycenterid/{id}", mw.Require(auth.OpShipmentsRead, h.LoadingByCenter))
	mux.HandleFunc("DELETE /api/shipments/{id}", mw.Require(auth.OpShipmentsManage, h.Delete))

	mux.HandleFunc("GET /api/shipmentstates/{id}", mw.Require(auth.OpShipmentStatesRead, h.StateHistory))
	mux.HandleFunc("POST /api/shipmentstates", mw.Require(auth.OpShipmentStatesAdvance, h.AdvanceState))
}
