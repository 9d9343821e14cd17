package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/dmitrijs2005/smartmeet/internal/common"
	"github.com/dmitrijs2005/smartmeet/internal/logging"
	"github.com/dmitrijs2005/smartmeet/internal/server/users"
)

type ctxKey int

const userKey ctxKey = iota

const requestIDHeader = "X-Request-ID"

// UserAuthenticator resolves the user behind a bearer token.
type UserAuthenticator interface {
	UserFromToken(ctx context.Context, token string) (*users.User, error)
}

func userFromContext(ctx context.Context) *users.User {
	u, _ := ctx.Value(userKey).(*users.User)
	return u
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get(common.AuthorizationHeader)
	scheme, token, ok := strings.Cut(h, " ")
	if !ok || !strings.EqualFold(scheme, common.BearerScheme) {
		return ""
	}
	return strings.TrimSpace(token)
}

// AuthMiddleware rejects requests without a valid bearer token and stores
// the resolved user in the request context.
func AuthMiddleware(auth UserAuthenticator, logger logging.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				unauthorized(w, "Not authenticated")
				return
			}

			user, err := auth.UserFromToken(r.Context(), token)
			switch {
			case errors.Is(err, users.ErrInactiveUser):
				writeDetail(w, http.StatusBadRequest, "Inactive user")
				return
			case errors.Is(err, common.ErrorUnauthorized):
				unauthorized(w, "Could not validate credentials")
				return
			case err != nil:
				logger.Error(r.Context(), "resolve token", "error", err)
				writeDetail(w, http.StatusInternalServerError, "Internal server error")
				return
			}

			ctx := context.WithValue(r.Context(), userKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func unauthorized(w http.ResponseWriter, detail string) {
	w.Header().Set("WWW-Authenticate", common.BearerScheme)
	writeDetail(w, http.StatusUnauthorized, detail)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// LoggingMiddleware tags every request with an id and logs its outcome.
func LoggingMiddleware(logger logging.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(requestIDHeader)
			if id == "" {
				id = uuid.NewString()
			}
			w.Header().Set(requestIDHeader, id)

			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			start := time.Now()
			next.ServeHTTP(rec, r)

			logger.Info(r.Context(), "request",
				"id", id,
				"method", r.Method,
				"path", r.URL.Path,
				"status", rec.status,
				"duration", time.Since(start),
			)
		})
	}
}
