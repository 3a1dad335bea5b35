package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"chorepoints/internal/models"
	"chorepoints/internal/security"
	"chorepoints/internal/service"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const (
	ParentContextKey  ContextKey = "parent"
	SessionContextKey ContextKey = "session"
)

// Middleware holds dependencies for middleware functions
type Middleware struct {
	authService *service.AuthService
	limiter     *security.RateLimiter
	log         *logrus.Logger
}

// NewMiddleware creates a new middleware instance
func NewMiddleware(authService *service.AuthService, limiter *security.RateLimiter, log *logrus.Logger) *Middleware {
	return &Middleware{
		authService: authService,
		limiter:     limiter,
		log:         log,
	}
}

// bearerToken extracts the token from an Authorization: Bearer header
func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// Authorize requires a valid access token and attaches the authenticated
// parent and session to the request context.
func (m *Middleware) Authorize(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			respondMessage(w, http.StatusBadRequest, "No token provided")
			return
		}

		parent, session, err := m.authService.Authenticate(token)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrInvalidToken):
				respondMessage(w, http.StatusUnauthorized, "Unauthorized")
			case errors.Is(err, service.ErrSessionNotFound):
				respondMessage(w, http.StatusNotFound, "Session not found")
			case errors.Is(err, service.ErrUserNotFound):
				respondMessage(w, http.StatusNotFound, "User not found")
			default:
				respondServiceError(w, m.log, err)
			}
			return
		}

		ctx := context.WithValue(r.Context(), ParentContextKey, parent)
		ctx = context.WithValue(ctx, SessionContextKey, session)
		next(w, r.WithContext(ctx))
	}
}

// RateLimit rejects clients that exceed the per-IP budget. Applied to the
// credential endpoints only.
func (m *Middleware) RateLimit(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ip := security.GetClientIP(r)
		if !m.limiter.Allow(ip) {
			m.log.WithField("ip", ip).Warn("rate limit exceeded")
			respondMessage(w, http.StatusTooManyRequests, "Too many requests")
			return
		}
		next(w, r)
	}
}

// Logging logs every HTTP request with method, path, status and duration
func (m *Middleware) Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		m.log.WithFields(logrus.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"status":   rec.status,
			"duration": time.Since(start).String(),
		}).Info("request")
	})
}

// CORS answers preflight requests and tags responses for the configured
// frontend origin.
func (m *Middleware) CORS(allowedOrigin string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if allowedOrigin != "" {
			w.Header().Set("Access-Control-Allow-Origin", allowedOrigin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// ParentFromContext retrieves the authenticated parent from the request context
func ParentFromContext(ctx context.Context) *models.Parent {
	parent, ok := ctx.Value(ParentContextKey).(*models.Parent)
	if !ok {
		return nil
	}
	return parent
}

// SessionFromContext retrieves the current session from the request context
func SessionFromContext(ctx context.Context) *models.Session {
	session, ok := ctx.Value(SessionContextKey).(*models.Session)
	if !ok {
		return nil
	}
	return session
}
