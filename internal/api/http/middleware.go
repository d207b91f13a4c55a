package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"club-finance-backend/internal/config"
	"club-finance-backend/internal/domain"
	"club-finance-backend/internal/logger"
	"club-finance-backend/internal/security"
)

type contextKey int

const (
	requestIDKey contextKey = iota
	sessionKey
)

const RequestIDHeader = "X-Request-ID"

// RequestID tags each request with an id, reusing a caller supplied one.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		ctx := context.WithValue(r.Context(), requestIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func requestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// SessionFrom returns the session stored by the auth middleware.
func SessionFrom(ctx context.Context) (domain.Session, bool) {
	sess, ok := ctx.Value(sessionKey).(domain.Session)
	return sess, ok
}

// AuthMiddleware verifies the bearer token and stores the resulting session
// in the request context.
type AuthMiddleware struct {
	tokenManager security.TokenManager
}

func NewAuthMiddleware(tm security.TokenManager) *AuthMiddleware {
	return &AuthMiddleware{tokenManager: tm}
}

func (m *AuthMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			sendError(w, http.StatusUnauthorized, "authorization token is not provided", nil)
			return
		}

		claims, err := m.tokenManager.ValidateToken(token)
		if err != nil {
			logger.WithRequest(requestIDFrom(r.Context())).Info("Token rejected", "error", err)
			sendError(w, http.StatusUnauthorized, err.Error(), nil)
			return
		}

		ctx := context.WithValue(r.Context(), sessionKey, claims.Session())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if len(header) <= 7 || !strings.EqualFold(header[:7], "bearer ") {
		return "", false
	}
	token := strings.TrimSpace(header[7:])
	return token, token != ""
}

// sessionHandler receives the authorized session alongside the request.
type sessionHandler func(w http.ResponseWriter, r *http.Request, sess domain.Session)

// authorize wraps h so it only runs for sessions holding the role that
// config.OperationRoles assigns to op.
func authorize(op domain.Operation, h sessionHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := SessionFrom(r.Context())
		if !ok {
			sendError(w, http.StatusUnauthorized, "missing session", nil)
			return
		}
		if !config.Authorize(sess, op) {
			logger.WithRequest(requestIDFrom(r.Context())).Info("Operation denied",
				"operation", op, "user_id", sess.UserID, "department_id", sess.DepartmentID)
			sendError(w, http.StatusForbidden, "operation not allowed for this department", nil)
			return
		}
		h(w, r, sess)
	}
}
