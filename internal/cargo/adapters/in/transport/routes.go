package transport

import (
	"net/http"

	"github.com/ibrahimalsalim/tracker-api/internal/shared/auth"
)

// RegisterRoutes mounts the cargo and client endpoints.
func RegisterRoutes(mux *http.ServeMux, h *Handler, mw *auth.Middleware) {
	mux.HandleFunc("GET /api/cargos", mw.Require(auth.OpCargosRead, h.ListCargos))
	mux.HandleFunc("POST /api/cargos", mw.Require(auth.OpCargosWrite, h.CreateCargo))
	mux.HandleFunc("GET /api/cargos/id/{id}", mw.Require(auth.OpCargosRead, h.GetCargo))
	mux.HandleFunc("GET /api/cargos/shipmentcargo/{id}", mw.Require(auth.OpCargosRead, h.ShipmentCargos))
	mux.HandleFunc("PUT /api/cargos/{id}", mw.Require(auth.OpCargosWrite, h.UpdateCargo))
	mux.HandleFunc("DELETE /api/cargos/{id}", mw.Require(auth.OpCargosWrite, h.DeleteCargo))

	mux.HandleFunc("GET /api/clients", mw.Require(auth.OpClientsList, h.ListClients))
	mux.HandleFunc("POST /api/clients", mw.Require(auth.OpClientsWrite, h.CreateClient))
	mux.HandleFunc("GET /api/clients/id/{id}", mw.Require(auth.OpClientsRead, h.GetClient))
	mux.HandleFunc("GET /api/clients/nationalid/{nationalid}", mw.Require(auth.OpClientsRead, h.GetClientByNationalID))
	mux.HandleFunc("PUT /api/clients/{id}", mw.Require(auth.OpClientsWrite, h.UpdateClient))
	mux.HandleFunc("DELETE /api/clients/{id}", mw.Require(auth.OpClientsDelete, h.DeleteClient))
}
