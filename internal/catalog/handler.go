package catalog

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/ibrahimalsalim/tracker-api/internal/shared/auth"
	"github.com/ibrahimalsalim/tracker-api/internal/shared/httpapi"
	"github.com/ibrahimalsalim/tracker-api/internal/shared/logger"
)

// LabelHandler serves one single-label reference table. field is the JSON
// key the original API used for the table's value column.
type LabelHandler struct {
	repo  LabelRepoInterface
	field string
	noun  string
	log   *logger.Logger
}

func NewLabelHandler(repo LabelRepoInterface, field, noun string, log *logger.Logger) *LabelHandler {
	return &LabelHandler{repo: repo, field: field, noun: noun, log: log}
}

// RegisterLabelRoutes mounts CRUD for one reference table under prefix.
func RegisterLabelRoutes(mux *http.ServeMux, prefix string, h *LabelHandler, mw *auth.Middleware) {
	mux.HandleFunc("GET "+prefix, mw.Require(auth.OpReferenceRead, h.List))
	mux.HandleFunc("POST "+prefix, mw.Require(auth.OpReferenceWrite, h.Create))
	mux.HandleFunc("GET "+prefix+"/{id}", mw.Require(auth.OpReferenceRead, h.Get))
	mux.HandleFunc("PUT "+prefix+"/{id}", mw.Require(auth.OpReferenceWrite, h.Update))
	mux.HandleFunc("DELETE "+prefix+"/{id}", mw.Require(auth.OpReferenceWrite, h.Delete))
}

func (h *LabelHandler) entryJSON(e LabelEntry) map[string]any {
	return map[string]any{"id": e.ID, h.field: e.Value}
}

func (h *LabelHandler) List(w http.ResponseWriter, r *http.Request) {
	entries, err := h.repo.List(r.Context())
	if err != nil {
		h.respondInternal(w, r, err)
		return
	}

	data := make([]map[string]any, 0, len(entries))
	for _, e := range entries {
		data = append(data, h.entryJSON(e))
	}
	httpapi.RespondJSON(w, http.StatusOK, map[string]any{"data": data})
}

func (h *LabelHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	entry, err := h.repo.FindByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrEntryNotFound) {
			httpapi.RespondMessage(w, http.StatusNotFound, h.noun+" not found")
			return
		}
		h.respondInternal(w, r, err)
		return
	}
	httpapi.RespondJSON(w, http.StatusOK, h.entryJSON(*entry))
}

func (h *LabelHandler) Create(w http.ResponseWriter, r *http.Request) {
	value, ok := h.readValue(w, r)
	if !ok {
		return
	}

	entry, err := h.repo.Create(r.Context(), value)
	if err != nil {
		h.respondInternal(w, r, err)
		return
	}
	httpapi.RespondJSON(w, http.StatusCreated, map[string]any{
		"message": h.noun + " added successfully",
		"data":    h.entryJSON(*entry),
	})
}

func (h *LabelHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	value, ok := h.readValue(w, r)
	if !ok {
		return
	}

	if err := h.repo.Update(r.Context(), id, value); err != nil {
		if errors.Is(err, ErrEntryNotFound) {
			httpapi.RespondMessage(w, http.StatusNotFound, h.noun+" not found")
			return
		}
		h.respondInternal(w, r, err)
		return
	}
	httpapi.RespondMessage(w, http.StatusOK, h.noun+" updated successfully")
}

func (h *LabelHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.repo.Delete(r.Context(), id); err != nil {
		if errors.Is(err, ErrEntryNotFound) {
			httpapi.RespondMessage(w, http.StatusNotFound, h.noun+" not found")
			return
		}
		h.respondInternal(w, r, err)
		return
	}
	httpapi.RespondMessage(w, http.StatusOK, h.noun+" deleted successfully")
}

func (h *LabelHandler) readValue(w http.ResponseWriter, r *http.Request) (string, bool) {
	var body map[string]string
	if err := httpapi.ReadJSON(r, &body); err != nil {
		httpapi.RespondMessage(w, http.StatusBadRequest, "invalid request body")
		return "", false
	}
	value := body[h.field]
	if value == "" {
		httpapi.RespondMessage(w, http.StatusBadRequest, h.field+" is required")
		return "", false
	}
	return value, true
}

func (h *LabelHandler) respondInternal(w http.ResponseWriter, r *http.Request, err error) {
	h.log.Error(logger.Entry{
		Action:    h.noun + "_request_failed",
		Message:   err.Error(),
		RequestID: auth.RequestIDFromContext(r.Context()),
		Error:     &logger.ErrObj{Msg: err.Error()},
	})
	httpapi.RespondMessage(w, http.StatusInternalServerError, "internal server error")
}

// ContentTypeHandler serves the priced content-type catalog.
type ContentTypeHandler struct {
	repo ContentTypeRepoInterface
	log  *logger.Logger
}

func NewContentTypeHandler(repo ContentTypeRepoInterface, log *logger.Logger) *ContentTypeHandler {
	return &ContentTypeHandler{repo: repo, log: log}
}

func RegisterContentTypeRoutes(mux *http.ServeMux, h *ContentTypeHandler, mw *auth.Middleware) {
	mux.HandleFunc("GET /api/contenttypes", mw.Require(auth.OpReferenceRead, h.List))
	mux.HandleFunc("POST /api/contenttypes", mw.Require(auth.OpReferenceWrite, h.Create))
	mux.HandleFunc("GET /api/contenttypes/{id}", mw.Require(auth.OpReferenceRead, h.Get))
	mux.HandleFunc("PUT /api/contenttypes/{id}", mw.Require(auth.OpReferenceWrite, h.Update))
	mux.HandleFunc("DELETE /api/contenttypes/{id}", mw.Require(auth.OpReferenceWrite, h.Delete))
}

type contentTypeRequest struct {
	Type        string  `json:"type"`
	Description *string `json:"description"`
	Price       float64 `json:"price"`
}

func (h *ContentTypeHandler) List(w http.ResponseWriter, r *http.Request) {
	types, err := h.repo.List(r.Context())
	if err != nil {
		h.respondInternal(w, r, err)
		return
	}
	httpapi.RespondJSON(w, http.StatusOK, map[string]any{"data": types})
}

func (h *ContentTypeHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	ct, err := h.repo.FindByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrContentTypeNotFound) {
			httpapi.RespondMessage(w, http.StatusNotFound, err.Error())
			return
		}
		h.respondInternal(w, r, err)
		return
	}
	httpapi.RespondJSON(w, http.StatusOK, ct)
}

func (h *ContentTypeHandler) Create(w http.ResponseWriter, r *http.Request) {
	req, ok := h.readBody(w, r)
	if !ok {
		return
	}

	ct := &ContentType{Type: req.Type, Description: req.Description, Price: req.Price}
	if err := h.repo.Create(r.Context(), ct); err != nil {
		h.respondInternal(w, r, err)
		return
	}
	httpapi.RespondJSON(w, http.StatusCreated, map[string]any{
		"message": "content type added successfully",
		"data":    ct,
	})
}

func (h *ContentTypeHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	req, ok := h.readBody(w, r)
	if !ok {
		return
	}

	ct := &ContentType{ID: id, Type: req.Type, Description: req.Description, Price: req.Price}
	if err := h.repo.Update(r.Context(), ct); err != nil {
		if errors.Is(err, ErrContentTypeNotFound) {
			httpapi.RespondMessage(w, http.StatusNotFound, err.Error())
			return
		}
		h.respondInternal(w, r, err)
		return
	}
	httpapi.RespondMessage(w, http.StatusOK, "content type updated successfully")
}

func (h *ContentTypeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.repo.Delete(r.Context(), id); err != nil {
		if errors.Is(err, ErrContentTypeNotFound) {
			httpapi.RespondMessage(w, http.StatusNotFound, err.Error())
			return
		}
		h.respondInternal(w, r, err)
		return
	}
	httpapi.RespondMessage(w, http.StatusOK, "content type deleted successfully")
}

func (h *ContentTypeHandler) readBody(w http.ResponseWriter, r *http.Request) (contentTypeRequest, bool) {
	var req contentTypeRequest
	if err := httpapi.ReadJSON(r, &req); err != nil {
		httpapi.RespondMessage(w, http.StatusBadRequest, "invalid request body")
		return req, false
	}
	if req.Type == "" || req.Price < 0 {
		httpapi.RespondMessage(w, http.StatusBadRequest, "type is required and price must be non-negative")
		return req, false
	}
	return req, true
}

func (h *ContentTypeHandler) respondInternal(w http.ResponseWriter, r *http.Request, err error) {
	h.log.Error(logger.Entry{
		Action:    "content_type_request_failed",
		Message:   err.Error(),
		RequestID: auth.RequestIDFromContext(r.Context()),
		Error:     &logger.ErrObj{Msg: err.Error()},
	})
	httpapi.RespondMessage(w, http.StatusInternalServerError, "internal server error")
}

func pathID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil || id <= 0 {
		httpapi.RespondMessage(w, http.StatusBadRequest, "invalid id parameter")
		return 0, false
	}
	return id, true
}
