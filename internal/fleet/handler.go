package fleet

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/ibrahimalsalim/tracker-api/internal/shared/auth"
	"github.com/ibrahimalsalim/tracker-api/internal/shared/httpapi"
	"github.com/ibrahimalsalim/tracker-api/internal/shared/logger"
	"github.com/ibrahimalsalim/tracker-api/internal/shared/pagination"
)

type Handler struct {
	service *Service
	log     *logger.Logger
}

func NewHandler(service *Service, log *logger.Logger) *Handler {
	return &Handler{service: service, log: log}
}

// RegisterRoutes mounts the truck and center endpoints.
func RegisterRoutes(mux *http.ServeMux, h *Handler, mw *auth.Middleware) {
	mux.HandleFunc("GET /api/trucks", mw.Require(auth.OpTrucksRead, h.ListTrucks))
	mux.HandleFunc("POST /api/trucks", mw.Require(auth.OpTrucksWrite, h.CreateTruck))
	mux.HandleFunc("GET /api/trucks/{id}", mw.Require(auth.OpTrucksRead, h.GetTruck))
	mux.HandleFunc("PUT /api/trucks/{id}", mw.Require(auth.OpTrucksWrite, h.UpdateTruck))
	mux.HandleFunc("DELETE /api/trucks/{id}", mw.Require(auth.OpTrucksWrite, h.DeleteTruck))

	mux.HandleFunc("GET /api/centers", mw.Require(auth.OpCentersRead, h.ListCenters))
	mux.HandleFunc("POST /api/centers", mw.Require(auth.OpCentersWrite, h.CreateCenter))
	mux.HandleFunc("GET /api/centers/{id}", mw.Require(auth.OpCentersRead, h.GetCenter))
	mux.HandleFunc("PUT /api/centers/{id}", mw.Require(auth.OpCentersWrite, h.UpdateCenter))
	mux.HandleFunc("DELETE /api/centers/{id}", mw.Require(auth.OpCentersWrite, h.DeleteCenter))
}

type truckRequest struct {
	Driver    int64    `json:"driver"`
	Type      int      `json:"type"`
	Model     string   `json:"model"`
	CenterID  *int64   `json:"center_id"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

type centerRequest struct {
	Manager   int64    `json:"manager"`
	City      string   `json:"city"`
	Location  string   `json:"location"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

func (h *Handler) ListTrucks(w http.ResponseWriter, r *http.Request) {
	page, limit := pagination.Params(r)

	trucks, meta, err := h.service.ListTrucks(r.Context(), page, limit)
	if err != nil {
		h.respondListError(w, r, "truck_list_failed", err)
		return
	}
	httpapi.RespondJSON(w, http.StatusOK, map[string]any{"data": trucks, "meta": meta})
}

func (h *Handler) CreateTruck(w http.ResponseWriter, r *http.Request) {
	var req truckRequest
	if err := httpapi.ReadJSON(r, &req); err != nil {
		httpapi.RespondMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Model == "" {
		httpapi.RespondMessage(w, http.StatusBadRequest, "model is required")
		return
	}

	truck, err := h.service.CreateTruck(r.Context(), CreateTruckInput{
		Driver:    req.Driver,
		Type:      req.Type,
		Model:     req.Model,
		CenterID:  req.CenterID,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
	})
	if err != nil {
		h.respondMutationError(w, r, "truck_create_failed", err)
		return
	}
	httpapi.RespondJSON(w, http.StatusCreated, map[string]any{
		"message": "truck added successfully",
		"truck":   truck,
	})
}

func (h *Handler) GetTruck(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	truck, err := h.service.GetTruck(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrTruckNotFound) {
			httpapi.RespondMessage(w, http.StatusNotFound, err.Error())
			return
		}
		h.respondInternal(w, r, "truck_get_failed", err)
		return
	}
	httpapi.RespondJSON(w, http.StatusOK, truck)
}

func (h *Handler) UpdateTruck(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req truckRequest
	if err := httpapi.ReadJSON(r, &req); err != nil {
		httpapi.RespondMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	err := h.service.UpdateTruck(r.Context(), id, UpdateTruckInput{
		Driver:   req.Driver,
		Type:     req.Type,
		Model:    req.Model,
		CenterID: req.CenterID,
	})
	if err != nil {
		if errors.Is(err, ErrTruckNotFound) {
			httpapi.RespondMessage(w, http.StatusNotFound, err.Error())
			return
		}
		h.respondMutationError(w, r, "truck_update_failed", err)
		return
	}
	httpapi.RespondMessage(w, http.StatusOK, "truck updated successfully")
}

func (h *Handler) DeleteTruck(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteTruck(r.Context(), id); err != nil {
		if errors.Is(err, ErrTruckNotFound) {
			httpapi.RespondMessage(w, http.StatusNotFound, err.Error())
			return
		}
		h.respondInternal(w, r, "truck_delete_failed", err)
		return
	}
	httpapi.RespondMessage(w, http.StatusOK, "truck deleted successfully")
}

func (h *Handler) ListCenters(w http.ResponseWriter, r *http.Request) {
	page, limit := pagination.Params(r)

	centers, meta, err := h.service.ListCenters(r.Context(), page, limit)
	if err != nil {
		h.respondListError(w, r, "center_list_failed", err)
		return
	}
	httpapi.RespondJSON(w, http.StatusOK, map[string]any{"data": centers, "meta": meta})
}

func (h *Handler) CreateCenter(w http.ResponseWriter, r *http.Request) {
	var req centerRequest
	if err := httpapi.ReadJSON(r, &req); err != nil {
		httpapi.RespondMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.City == "" || req.Location == "" {
		httpapi.RespondMessage(w, http.StatusBadRequest, "city and location are required")
		return
	}

	center, err := h.service.CreateCenter(r.Context(), CenterInput{
		Manager:   req.Manager,
		City:      req.City,
		Location:  req.Location,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
	})
	if err != nil {
		h.respondMutationError(w, r, "center_create_failed", err)
		return
	}
	httpapi.RespondJSON(w, http.StatusCreated, map[string]any{
		"message": "center added successfully",
		"center":  center,
	})
}

func (h *Handler) GetCenter(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	center, err := h.service.GetCenter(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrCenterNotFound) {
			httpapi.RespondMessage(w, http.StatusNotFound, err.Error())
			return
		}
		h.respondInternal(w, r, "center_get_failed", err)
		return
	}
	httpapi.RespondJSON(w, http.StatusOK, center)
}

func (h *Handler) UpdateCenter(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req centerRequest
	if err := httpapi.ReadJSON(r, &req); err != nil {
		httpapi.RespondMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	err := h.service.UpdateCenter(r.Context(), id, CenterInput{
		Manager:   req.Manager,
		City:      req.City,
		Location:  req.Location,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
	})
	if err != nil {
		if errors.Is(err, ErrCenterNotFound) {
			httpapi.RespondMessage(w, http.StatusNotFound, err.Error())
			return
		}
		h.respondMutationError(w, r, "center_update_failed", err)
		return
	}
	httpapi.RespondMessage(w, http.StatusOK, "center updated successfully")
}

func (h *Handler) DeleteCenter(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteCenter(r.Context(), id); err != nil {
		if errors.Is(err, ErrCenterNotFound) {
			httpapi.RespondMessage(w, http.StatusNotFound, err.Error())
			return
		}
		h.respondInternal(w, r, "center_delete_failed", err)
		return
	}
	httpapi.RespondMessage(w, http.StatusOK, "center deleted successfully")
}

func (h *Handler) respondMutationError(w http.ResponseWriter, r *http.Request, action string, err error) {
	if IsPreconditionError(err) || errors.Is(err, ErrCenterNotFound) {
		httpapi.RespondMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	h.respondInternal(w, r, action, err)
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
