package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	handlers "raceplanner/internal/handler"
	"raceplanner/internal/logger"
	"raceplanner/internal/service"
)

type Middleware func(http.Handler) http.Handler

const unauthenticatedMessage = "You are not authenticated"

// bearerToken reads the token from the Authorization header, falling back to the session cookie.
func bearerToken(r *http.Request, cookieName string) string {
	if header := r.Header.Get("Authorization"); header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
		return ""
	}

	if cookieName != "" {
		if c, err := r.Cookie(cookieName); err == nil {
			return c.Value
		}
	}
	return ""
}

// AuthMiddleware resolves the request token to a user and puts it in the context. Anything else is a 401.
func AuthMiddleware(authService service.AuthService, cookieName string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r, cookieName)
			if token == "" {
				handlers.WriteMessage(w, unauthenticatedMessage, http.StatusUnauthorized)
				return
			}

			user, claims, err := authService.Authenticate(r.Context(), token)
			if err != nil {
				logger.FromContext(r.Context()).WithError(err).Debug("authentication rejected")
				handlers.WriteMessage(w, unauthenticatedMessage, http.StatusUnauthorized)
				return
			}

			ctx, _ := logger.ContextWithLoggerIdentity(r.Context(), user.Username)
			ctx = service.WithUser(ctx, user, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuthMiddleware attaches the user when the request carries a valid token and never rejects.
func OptionalAuthMiddleware(authService service.AuthService, cookieName string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r, cookieName)
			if token != "" {
				if user, claims, err := authService.Authenticate(r.Context(), token); err == nil {
					ctx, _ := logger.ContextWithLoggerIdentity(r.Context(), user.Username)
					r = r.WithContext(service.WithUser(ctx, user, claims))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// CORSMiddleware answers cross-origin requests. Listed origins are echoed back and may send credentials.
// With an empty list any origin is allowed, without credentials.
func CORSMiddleware(allowedOrigins []string) Middleware {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		allowed[origin] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			switch {
			case len(allowed) == 0:
				w.Header().Set("Access-Control-Allow-Origin", "*")
			case allowed[origin]:
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Access-Control-Allow-Credentials", "true")
				w.Header().Add("Vary", "Origin")
			default:
				if r.Method == http.MethodOptions && origin != "" {
					w.WriteHeader(http.StatusForbidden)
					return
				}
				next.ServeHTTP(w, r)
				return
			}
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// LoggingMiddleware attaches a request logger and logs each request with its status and duration.
func LoggingMiddleware(next http.Handler) http.Handler {
	return logger.RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		logger.FromContext(r.Context()).WithFields(logrus.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"status":   rec.status,
			"duration": time.Since(start).String(),
		}).Info("request handled")
	}))
}

// Chain wraps h so that the first middleware is the outermost one.
func Chain(h http.Handler, middlewares ...Middleware) http.Handler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}
	return h
}
