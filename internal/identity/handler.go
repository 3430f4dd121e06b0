package identity

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/ibrahimalsalim/tracker-api/internal/shared/auth"
	"github.com/ibrahimalsalim/tracker-api/internal/shared/httpapi"
	"github.com/ibrahimalsalim/tracker-api/internal/shared/logger"
	"github.com/ibrahimalsalim/tracker-api/internal/shared/pagination"
)

const dateLayout = "2006-01-02"

type Handler struct {
	service *Service
	log     *logger.Logger
}

func NewHandler(service *Service, log *logger.Logger) *Handler {
	return &Handler{service: service, log: log}
}

// RegisterRoutes mounts the auth and user endpoints. Register and login are
// the only unauthenticated routes in the API.
func RegisterRoutes(mux *http.ServeMux, h *Handler, mw *auth.Middleware) {
	mux.HandleFunc("POST /api/auth/register", h.Register)
	mux.HandleFunc("POST /api/auth/login", h.Login)

	mux.HandleFunc("GET /api/users", mw.Require(auth.OpUsersList, h.ListUsers))
	mux.HandleFunc("GET /api/users/{id}", mw.Require(auth.OpUsersGet, h.GetUser))
	mux.HandleFunc("PUT /api/users/{id}", mw.Require(auth.OpUsersUpdate, h.UpdateUser))
	mux.HandleFunc("DELETE /api/users/{id}", mw.Require(auth.OpUsersDelete, h.DeleteUser))
}

type registerRequest struct {
	Type        int    `json:"type"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	DateOfBirth string `json:"date_of_birth"`
	Address     string `json:"address"`
	Email       string `json:"email"`
	Username    string `json:"username"`
	Password    string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type updateUserRequest struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	DateOfBirth string `json:"date_of_birth"`
	Address     string `json:"address"`
	Email       string `json:"email"`
	Username    string `json:"username"`
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := httpapi.ReadJSON(r, &req); err != nil {
		httpapi.RespondMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" || req.Username == "" {
		httpapi.RespondMessage(w, http.StatusBadRequest, "email, username and password are required")
		return
	}
	dob, err := time.Parse(dateLayout, req.DateOfBirth)
	if err != nil {
		httpapi.RespondMessage(w, http.StatusBadRequest, "date_of_birth must be YYYY-MM-DD")
		return
	}

	user, token, err := h.service.Register(r.Context(), RegisterInput{
		Type:        req.Type,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		DateOfBirth: dob,
		Address:     req.Address,
		Email:       req.Email,
		Username:    req.Username,
		Password:    req.Password,
	})
	if err != nil {
		if errors.Is(err, ErrEmailTaken) || errors.Is(err, ErrUserTypeNotFound) {
			httpapi.RespondMessage(w, http.StatusBadRequest, err.Error())
			return
		}
		h.respondInternal(w, r, "user_register_failed", err)
		return
	}

	httpapi.RespondJSON(w, http.StatusCreated, map[string]any{
		"message": "user registered successfully",
		"user":    user,
		"token":   token,
	})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := httpapi.ReadJSON(r, &req); err != nil {
		httpapi.RespondMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, token, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			httpapi.RespondMessage(w, http.StatusUnauthorized, err.Error())
			return
		}
		h.respondInternal(w, r, "user_login_failed", err)
		return
	}

	httpapi.RespondJSON(w, http.StatusOK, map[string]any{
		"message": "login successful",
		"user":    user,
		"token":   token,
	})
}

func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	page, limit := pagination.Params(r)

	users, meta, err := h.service.ListUsers(r.Context(), page, limit)
	if err != nil {
		if errors.Is(err, pagination.ErrInvalidParams) || errors.Is(err, pagination.ErrPageOutOfRange) {
			httpapi.RespondMessage(w, http.StatusBadRequest, err.Error())
			return
		}
		h.respondInternal(w, r, "user_list_failed", err)
		return
	}
	httpapi.RespondJSON(w, http.StatusOK, map[string]any{"data": users, "meta": meta})
}

func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	user, err := h.service.GetUser(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			httpapi.RespondMessage(w, http.StatusNotFound, err.Error())
			return
		}
		h.respondInternal(w, r, "user_get_failed", err)
		return
	}
	httpapi.RespondJSON(w, http.StatusOK, user)
}

func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req updateUserRequest
	if err := httpapi.ReadJSON(r, &req); err != nil {
		httpapi.RespondMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	dob, err := time.Parse(dateLayout, req.DateOfBirth)
	if err != nil {
		httpapi.RespondMessage(w, http.StatusBadRequest, "date_of_birth must be YYYY-MM-DD")
		return
	}

	err = h.service.UpdateUser(r.Context(), id, UpdateUserInput{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		DateOfBirth: dob,
		Address:     req.Address,
		Email:       req.Email,
		Username:    req.Username,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrUserNotFound):
			httpapi.RespondMessage(w, http.StatusNotFound, err.Error())
		case errors.Is(err, ErrEmailTaken):
			httpapi.RespondMessage(w, http.StatusBadRequest, err.Error())
		default:
			h.respondInternal(w, r, "user_update_failed", err)
		}
		return
	}
	httpapi.RespondMessage(w, http.StatusOK, "user updated successfully")
}

func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteUser(r.Context(), id); err != nil {
		if errors.Is(err, ErrUserNotFound) {
			httpapi.RespondMessage(w, http.StatusNotFound, err.Error())
			return
		}
		h.respondInternal(w, r, "user_delete_failed", err)
		return
	}
	httpapi.RespondMessage(w, http.StatusOK, "user deleted successfully")
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
