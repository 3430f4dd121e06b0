package transport

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	in "github.com/ibrahimalsalim/tracker-api/internal/cargo/application/ports/in"
	"github.com/ibrahimalsalim/tracker-api/internal/cargo/domain"
	"github.com/ibrahimalsalim/tracker-api/internal/shared/auth"
	"github.com/ibrahimalsalim/tracker-api/internal/shared/httpapi"
	"github.com/ibrahimalsalim/tracker-api/internal/shared/logger"
	"github.com/ibrahimalsalim/tracker-api/internal/shared/pagination"
)

// Handler serves the cargo and client endpoints.
type Handler struct {
	create  in.CreateCargoUseCase
	cargos  in.CargoQueries
	clients in.ClientQueries
	log     *logger.Logger
}

func NewHandler(create in.CreateCargoUseCase, cargos in.CargoQueries, clients in.ClientQueries, log *logger.Logger) *Handler {
	return &Handler{create: create, cargos: cargos, clients: clients, log: log}
}

func (h *Handler) ListCargos(w http.ResponseWriter, r *http.Request) {
	page, limit := pagination.Params(r)

	views, meta, err := h.cargos.List(r.Context(), page, limit)
	if err != nil {
		h.respondListError(w, r, "cargo_list_failed", err)
		return
	}
	httpapi.RespondJSON(w, http.StatusOK, cargoListResponse{Data: views, Meta: meta})
}

func (h *Handler) CreateCargo(w http.ResponseWriter, r *http.Request) {
	var req createCargoRequest
	if err := httpapi.ReadJSON(r, &req); err != nil {
		httpapi.RespondFailure(w, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}

	sender, err := req.Sender.toInput()
	if err != nil {
		httpapi.RespondFailure(w, http.StatusBadRequest, err)
		return
	}
	receiver, err := req.Receiver.toInput()
	if err != nil {
		httpapi.RespondFailure(w, http.StatusBadRequest, err)
		return
	}

	input := in.CreateCargoInput{
		ShipmentID: req.ShipmentID,
		Sender:     sender,
		Receiver:   receiver,
	}
	for _, c := range req.Contents {
		input.Contents = append(input.Contents, in.ContentInput{
			ContentTypeID: c.ContentTypeID,
			Quantity:      c.Quantity,
			Weight:        c.Weight,
		})
	}

	view, err := h.create.Execute(r.Context(), input)
	if err != nil {
		if domain.IsPreconditionError(err) {
			httpapi.RespondFailure(w, http.StatusBadRequest, err)
			return
		}
		h.respondInternal(w, r, "cargo_create_failed", err)
		return
	}

	httpapi.RespondJSON(w, http.StatusCreated, createCargoResponse{Success: true, CreatedCargo: view})
}

func (h *Handler) GetCargo(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	view, err := h.cargos.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrCargoNotFound) {
			httpapi.RespondMessage(w, http.StatusNotFound, err.Error())
			return
		}
		h.respondInternal(w, r, "cargo_get_failed", err)
		return
	}
	httpapi.RespondJSON(w, http.StatusOK, view)
}

func (h *Handler) ShipmentCargos(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	views, err := h.cargos.ListByShipment(r.Context(), id)
	if err != nil {
		h.respondInternal(w, r, "shipment_cargos_failed", err)
		return
	}
	httpapi.RespondJSON(w, http.StatusOK, map[string]any{"success": true, "data": views})
}

func (h *Handler) UpdateCargo(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req updateCargoRequest
	if err := httpapi.ReadJSON(r, &req); err != nil || req.State == "" {
		httpapi.RespondMessage(w, http.StatusBadRequest, "state is required")
		return
	}

	if err := h.cargos.UpdateState(r.Context(), id, req.State); err != nil {
		if errors.Is(err, domain.ErrCargoNotFound) {
			httpapi.RespondMessage(w, http.StatusNotFound, err.Error())
			return
		}
		h.respondInternal(w, r, "cargo_update_failed", err)
		return
	}
	httpapi.RespondMessage(w, http.StatusOK, "cargo updated successfully")
}

func (h *Handler) DeleteCargo(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.cargos.Delete(r.Context(), id); err != nil {
		if errors.Is(err, domain.ErrCargoNotFound) {
			httpapi.RespondMessage(w, http.StatusNotFound, err.Error())
			return
		}
		h.respondInternal(w, r, "cargo_delete_failed", err)
		return
	}
	httpapi.RespondMessage(w, http.StatusOK, "cargo deleted successfully")
}

func (h *Handler) CreateClient(w http.ResponseWriter, r *http.Request) {
	var req clientPayload
	if err := httpapi.ReadJSON(r, &req); err != nil {
		httpapi.RespondMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	input, err := req.toInput()
	if err != nil {
		httpapi.RespondMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	if _, err := h.clients.Create(r.Context(), input); err != nil {
		if errors.Is(err, domain.ErrNationalIDTaken) {
			httpapi.RespondMessage(w, http.StatusBadRequest, err.Error())
			return
		}
		h.respondInternal(w, r, "client_create_failed", err)
		return
	}
	httpapi.RespondMessage(w, http.StatusOK, "new client added successfully")
}

func (h *Handler) ListClients(w http.ResponseWriter, r *http.Request) {
	page, limit := pagination.Params(r)

	clients, meta, err := h.clients.List(r.Context(), page, limit)
	if err != nil {
		h.respondListError(w, r, "client_list_failed", err)
		return
	}
	httpapi.RespondJSON(w, http.StatusOK, clientListResponse{Data: clients, Meta: meta})
}

func (h *Handler) GetClient(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	client, err := h.clients.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrClientNotFound) {
			httpapi.RespondMessage(w, http.StatusNotFound, err.Error())
			return
		}
		h.respondInternal(w, r, "client_get_failed", err)
		return
	}
	httpapi.RespondJSON(w, http.StatusOK, client)
}

func (h *Handler) GetClientByNationalID(w http.ResponseWriter, r *http.Request) {
	nationalID := r.PathValue("nationalid")
	if nationalID == "" {
		httpapi.RespondMessage(w, http.StatusBadRequest, "invalid nationalid parameter")
		return
	}

	client, err := h.clients.GetByNationalID(r.Context(), nationalID)
	if err != nil {
		if errors.Is(err, domain.ErrClientNotFound) {
			httpapi.RespondMessage(w, http.StatusNotFound, err.Error())
			return
		}
		h.respondInternal(w, r, "client_get_failed", err)
		return
	}
	httpapi.RespondJSON(w, http.StatusOK, client)
}

func (h *Handler) UpdateClient(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req updateClientRequest
	if err := httpapi.ReadJSON(r, &req); err != nil {
		httpapi.RespondMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	dob, err := time.Parse(dateLayout, req.DateOfBirth)
	if err != nil {
		httpapi.RespondMessage(w, http.StatusBadRequest, "date_of_birth must be YYYY-MM-DD")
		return
	}

	err = h.clients.Update(r.Context(), id, in.UpdateClientInput{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		DateOfBirth: dob,
		Address:     req.Address,
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		if errors.Is(err, domain.ErrClientNotFound) {
			httpapi.RespondMessage(w, http.StatusNotFound, err.Error())
			return
		}
		h.respondInternal(w, r, "client_update_failed", err)
		return
	}
	httpapi.RespondMessage(w, http.StatusOK, "client updated successfully")
}

func (h *Handler) DeleteClient(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.clients.Delete(r.Context(), id); err != nil {
		if errors.Is(err, domain.ErrClientNotFound) {
			httpapi.RespondMessage(w, http.StatusNotFound, err.Error())
			return
		}
		h.respondInternal(w, r, "client_delete_failed", err)
		return
	}
	httpapi.RespondMessage(w, http.StatusOK, "client deleted successfully")
}

func (h *Handler) respondListError(w http.ResponseWriter, r *http.Request, action string, err error) {
	if errors.Is(err, pagination.ErrInvalidParams) || errors.Is(err, pagination.ErrPageOutOfRange) {
		httpapi.RespondMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	h.respondInternal(w, r, action, err)
}

func (h *Handler) respondInternal(w http.ResponseWriter, r *http.Request, action string, err error) {
	h.log.Error(logger.Entry{
		Action:    action,
		Message:   err.Error(),
		RequestID: auth.RequestIDFromContext(r.Context()),
		Error:     &logger.ErrObj{Msg: err.Error()},
	})
	httpapi.RespondMessage(w, http.StatusInternalServerError, "internal server error")
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		httpapi.RespondMessage(w, http.StatusBadRequest, "invalid id parameter")
		return 0, false
	}
	return id, true
}
