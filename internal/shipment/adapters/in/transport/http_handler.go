package transport

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/ibrahimalsalim/tracker-api/internal/shared/auth"
	"github.com/ibrahimalsalim/tracker-api/internal/shared/httpapi"
	"github.com/ibrahimalsalim/tracker-api/internal/shared/logger"
	"github.com/ibrahimalsalim/tracker-api/internal/shared/pagination"
	in "github.com/ibrahimalsalim/tracker-api/internal/shipment/application/ports/in"
	"github.com/ibrahimalsalim/tracker-api/internal/shipment/domain"
)

// Handler serves the shipment and shipment-state endpoints.
type Handler struct {
	create  in.CreateShipmentUseCase
	advance in.AdvanceStateUseCase
	queries in.ShipmentQueries
	loading in.LoadingReportUseCase
	log     *logger.Logger
}

func NewHandler(
	create in.CreateShipmentUseCase,
	advance in.AdvanceStateUseCase,
	queries in.ShipmentQueries,
	loading in.LoadingReportUseCase,
	log *logger.Logger,
) *Handler {
	return &Handler{
		create:  create,
		advance: advance,
		queries: queries,
		loading: loading,
		log:     log,
	}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page, limit := pagination.Params(r)

	views, meta, err := h.queries.List(r.Context(), page, limit)
	if err != nil {
		h.respondListError(w, r, err)
		return
	}
	httpapi.RespondJSON(w, http.StatusOK, listResponse{Data: views, Meta: meta})
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req createShipmentRequest
	if err := httpapi.ReadJSON(r, &req); err != nil {
		httpapi.RespondMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	_, err := h.create.Execute(r.Context(), in.CreateShipmentInput{
		TruckID:            req.TruckID,
		ShipmentPriorityID: req.ShipmentPriorityID,
		SendCenter:         req.SendCenter,
		ReceiveCenter:      req.ReceiveCenter,
	})
	if err != nil {
		if domain.IsPreconditionError(err) {
			httpapi.RespondMessage(w, http.StatusBadRequest, err.Error())
			return
		}
		h.respondInternal(w, r, "shipment_create_failed", err)
		return
	}

	httpapi.RespondMessage(w, http.StatusOK, "New shipment added successfully.")
}

func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	view, err := h.queries.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrShipmentNotFound) {
			httpapi.RespondMessage(w, http.StatusNotFound, err.Error())
			return
		}
		h.respondInternal(w, r, "shipment_get_failed", err)
		return
	}
	httpapi.RespondJSON(w, http.StatusOK, view)
}

func (h *Handler) ByCenter(w http.ResponseWriter, r *http.Request) {
	h.listByCenter(w, r, in.DirectionAny)
}

func (h *Handler) SentByCenter(w http.ResponseWriter, r *http.Request) {
	h.listByCenter(w, r, in.DirectionSent)
}

func (h *Handler) ReceivedByCenter(w http.ResponseWriter, r *http.Request) {
	h.listByCenter(w, r, in.DirectionReceived)
}

func (h *Handler) listByCenter(w http.ResponseWriter, r *http.Request, dir in.CenterDirection) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	page, limit := pagination.Params(r)

	views, meta, err := h.queries.ListByCenter(r.Context(), id, dir, page, limit)
	if err != nil {
		h.respondListError(w, r, err)
		return
	}
	httpapi.RespondJSON(w, http.StatusOK, listResponse{Data: views, Meta: meta})
}

func (h *Handler) LoadingByCenter(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	views, err := h.loading.Execute(r.Context(), id)
	if err != nil {
		h.respondInternal(w, r, "loading_report_failed", err)
		return
	}
	httpapi.RespondJSON(w, http.StatusOK, loadingReportResponse{Success: true, Data: views})
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.queries.Delete(r.Context(), id); err != nil {
		if errors.Is(err, domain.ErrShipmentNotFound) {
			httpapi.RespondMessage(w, http.StatusNotFound, err.Error())
			return
		}
		h.respondInternal(w, r, "shipment_delete_failed", err)
		return
	}
	httpapi.RespondMessage(w, http.StatusOK, "shipment deleted successfully")
}

func (h *Handler) StateHistory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	intervals, err := h.queries.StateHistory(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrShipmentNotFound) {
			httpapi.RespondFailure(w, http.StatusNotFound, err)
			return
		}
		h.respondInternal(w, r, "state_history_failed", err)
		return
	}
	httpapi.RespondJSON(w, http.StatusOK, map[string]any{"success": true, "data": intervals})
}

func (h *Handler) AdvanceState(w http.ResponseWriter, r *http.Request) {
	var req advanceStateRequest
	if err := httpapi.ReadJSON(r, &req); err != nil {
		httpapi.RespondJSON(w, http.StatusBadRequest, map[string]any{
			"success": false,
			"error":   "invalid request body",
		})
		return
	}

	state, err := h.advance.Execute(r.Context(), in.AdvanceStateInput{
		ShipmentID: req.ShipmentID,
		StatesID:   req.StatesID,
	})
	if err != nil {
		// the shipment id comes from the request body, so a missing
		// shipment is a precondition failure like the rest
		if errors.Is(err, domain.ErrShipmentNotFound) || domain.IsPreconditionError(err) {
			httpapi.RespondFailure(w, http.StatusBadRequest, err)
			return
		}
		h.respondInternal(w, r, "state_advance_failed", err)
		return
	}

	httpapi.RespondJSON(w, http.StatusCreated, advanceStateResponse{
		Success:           true,
		CurrShipmentState: state,
	})
}

func (h *Handler) respondListError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, pagination.ErrInvalidParams) || errors.Is(err, pagination.ErrPageOutOfRange) {
		httpapi.RespondMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	h.respondInternal(w, r, "shipment_list_failed", err)
}

func (h *Handler) respondInternal(w http.ResponseWriter, r *http.Request, action string, err error) {
	h.log.Error(logger.Entry{
		Action:    action,
		Message:   err.Error(),
		RequestID: requestID(r),
		Error:     &logger.ErrObj{Msg: err.Error()},
	})
	httpapi.RespondMessage(w, http.StatusInternalServerError, "internal server error")
}

func requestID(r *http.Request) string {
	return auth.RequestIDFromContext(r.Context())
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		httpapi.RespondMessage(w, http.StatusBadRequest, "invalid id parameter")
		return 0, false
	}
	return id, true
}
