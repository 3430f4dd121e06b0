package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/ibrahimalsalim/tracker-api/internal/shared/logger"

	"github.com/google/uuid"
)

type contextKey string

const (
	contextKeyUserID    contextKey = "user_id"
	contextKeyUserType  contextKey = "user_type"
	contextKeyRequestID contextKey = "request_id"
)

// Middleware authenticates requests and evaluates the policy table.
type Middleware struct {
	jwt *JWTService
	log *logger.Logger
}

func NewMiddleware(jwt *JWTService, log *logger.Logger) *Middleware {
	return &Middleware{jwt: jwt, log: log}
}

// RequestID assigns a correlation id to every request.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set("X-Request-Id", id)
		ctx := context.WithValue(r.Context(), contextKeyRequestID, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Require wraps a handler with token validation plus a policy check for the
// given operation. The token is read from the `token` header (original API
// contract) or an `Authorization: Bearer` header.
func (m *Middleware) Require(op Operation, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := extractToken(r)
		if token == "" {
			respondAuthError(w, http.StatusUnauthorized, "no token provided")
			return
		}

		claims, err := m.jwt.ValidateToken(token)
		if err != nil {
			m.log.Warn(logger.Entry{
				Action:    "auth_invalid_token",
				Message:   err.Error(),
				RequestID: RequestIDFromContext(r.Context()),
			})
			respondAuthError(w, http.StatusUnauthorized, "invalid token")
			return
		}

		selfMatch := false
		if id := r.PathValue("id"); id != "" {
			if pathID, err := strconv.ParseInt(id, 10, 64); err == nil {
				selfMatch = pathID == claims.UserID
			}
		}

		if !Allowed(op, claims.Type, selfMatch) {
			m.log.Warn(logger.Entry{
				Action:    "auth_forbidden",
				Message:   "operation not allowed for role",
				RequestID: RequestIDFromContext(r.Context()),
				Additional: map[string]any{
					"user_id":   claims.UserID,
					"user_type": claims.Type,
					"operation": string(op),
				},
			})
			respondAuthError(w, http.StatusForbidden, "you are not allowed")
			return
		}

		ctx := context.WithValue(r.Context(), contextKeyUserID, claims.UserID)
		ctx = context.WithValue(ctx, contextKeyUserType, claims.Type)
		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

func extractToken(r *http.Request) string {
	if t := r.Header.Get("token"); t != "" {
		return t
	}
	authHeader := r.Header.Get("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) == 2 && parts[0] == "Bearer" {
		return parts[1]
	}
	return ""
}

// UserIDFromContext returns the authenticated user id.
func UserIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(contextKeyUserID).(int64)
	return id, ok
}

// UserTypeFromContext returns the authenticated user's role type.
func UserTypeFromContext(ctx context.Context) (int, bool) {
	t, ok := ctx.Value(contextKeyUserType).(int)
	return t, ok
}

// RequestIDFromContext returns the request correlation id, if any.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(contextKeyRequestID).(string)
	return id
}

func respondAuthError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"message": message})
}
