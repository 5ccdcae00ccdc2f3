package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"raceplanner/internal/logger"
	"raceplanner/internal/models"
	"raceplanner/internal/service"
)

type mockAuthService struct {
	mock.Mock
}

func (m *mockAuthService) Register(ctx context.Context, req models.SignUpRequest) (*models.User, string, error) {
	args := m.Called(ctx, req)
	return nil, "", args.Error(2)
}

func (m *mockAuthService) Login(ctx context.Context, username, password string) (*models.User, string, error) {
	args := m.Called(ctx, username, password)
	return nil, "", args.Error(2)
}

func (m *mockAuthService) Logout(ctx context.Context, claims *service.Claims) error {
	return m.Called(ctx, claims).Error(0)
}

func (m *mockAuthService) Authenticate(ctx context.Context, tokenString string) (*models.User, *service.Claims, error) {
	args := m.Called(ctx, tokenString)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*models.User), args.Get(1).(*service.Claims), args.Error(2)
}

func (m *mockAuthService) ValidateToken(tokenString string) (*service.Claims, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Claims), args.Error(1)
}

const cookieName = "session_token"

var alice = &models.User{ID: "0b7c4d1e-8a52-4f3e-9d6b-1c2a3b4c5d6e", Username: "alice"}

// echoUser answers the username found in the request context, or "anonymous".
var echoUser = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	if user, ok := service.UserFromContext(r.Context()); ok {
		w.Write([]byte(user.Username))
		return
	}
	w.Write([]byte("anonymous"))
})

func TestAuthMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		setup      func(r *http.Request)
		token      string
		authErr    error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "bearer header",
			setup:      func(r *http.Request) { r.Header.Set("Authorization", "Bearer good-token") },
			token:      "good-token",
			wantStatus: http.StatusOK,
			wantBody:   "alice",
		},
		{
			name:       "session cookie",
			setup:      func(r *http.Request) { r.AddCookie(&http.Cookie{Name: cookieName, Value: "cookie-token"}) },
			token:      "cookie-token",
			wantStatus: http.StatusOK,
			wantBody:   "alice",
		},
		{
			name:       "no token",
			setup:      func(r *http.Request) {},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "wrong scheme",
			setup:      func(r *http.Request) { r.Header.Set("Authorization", "Basic abc") },
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "rejected token",
			setup:      func(r *http.Request) { r.Header.Set("Authorization", "Bearer revoked") },
			token:      "revoked",
			authErr:    service.ErrUnauthenticated,
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			auth := new(mockAuthService)
			if tt.token != "" {
				if tt.authErr != nil {
					auth.On("Authenticate", mock.Anything, tt.token).Return(nil, nil, tt.authErr)
				} else {
					auth.On("Authenticate", mock.Anything, tt.token).Return(alice, &service.Claims{UserID: alice.ID}, nil)
				}
			}

			req := httptest.NewRequest(http.MethodGet, "/api/cars", nil)
			tt.setup(req)
			rr := httptest.NewRecorder()

			AuthMiddleware(auth, cookieName)(echoUser).ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, tt.wantBody, rr.Body.String())
			} else {
				assert.JSONEq(t, `{"message":"You are not authenticated"}`, rr.Body.String())
			}
			auth.AssertExpectations(t)
		})
	}
}

func TestOptionalAuthMiddleware(t *testing.T) {
	auth := new(mockAuthService)
	auth.On("Authenticate", mock.Anything, "good-token").Return(alice, &service.Claims{UserID: alice.ID}, nil)
	auth.On("Authenticate", mock.Anything, "bad-token").Return(nil, nil, errors.New("expired"))
	handler := OptionalAuthMiddleware(auth, cookieName)(echoUser)

	for token, want := range map[string]string{"good-token": "alice", "bad-token": "anonymous", "": "anonymous"} {
		req := httptest.NewRequest(http.MethodGet, "/api/whoami", nil)
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		rr := httptest.NewRecorder()

		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, want, rr.Body.String())
	}
}

func TestCORSMiddleware(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	allowList := CORSMiddleware([]string{"http://localhost:3000"})

	t.Run("preflight from a listed origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/api/cars", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		rr := httptest.NewRecorder()

		allowList(next).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "http://localhost:3000", rr.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "true", rr.Header().Get("Access-Control-Allow-Credentials"))
	})

	t.Run("unlisted origin gets no grant", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/cars", nil)
		req.Header.Set("Origin", "https://evil.example.com")
		rr := httptest.NewRecorder()

		allowList(next).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusTeapot, rr.Code)
		assert.Empty(t, rr.Header().Get("Access-Control-Allow-Origin"))
		assert.Empty(t, rr.Header().Get("Access-Control-Allow-Credentials"))
	})

	t.Run("unlisted preflight is refused", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/api/cars", nil)
		req.Header.Set("Origin", "https://evil.example.com")
		rr := httptest.NewRecorder()

		allowList(next).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusForbidden, rr.Code)
		assert.Empty(t, rr.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("no list allows any origin without credentials", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/cars", nil)
		req.Header.Set("Origin", "https://other.example.com")
		rr := httptest.NewRecorder()

		CORSMiddleware(nil)(next).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusTeapot, rr.Code)
		assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
		assert.Empty(t, rr.Header().Get("Access-Control-Allow-Credentials"))
	})
}

func TestLoggingMiddleware(t *testing.T) {
	var requestID string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID = logger.RequestIDFromContext(r.Context())
		w.WriteHeader(http.StatusCreated)
	})

	rr := httptest.NewRecorder()
	LoggingMiddleware(next).ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/cars", nil))

	assert.Equal(t, http.StatusCreated, rr.Code)
	require.NotEmpty(t, requestID)
	assert.Equal(t, requestID, rr.Header().Get(logger.RequestIDHeader))
}

func TestLoggingMiddleware_IncludesIdentity(t *testing.T) {
	hook := logtest.NewGlobal()
	t.Cleanup(hook.Reset)

	auth := new(mockAuthService)
	auth.On("Authenticate", mock.Anything, "good-token").Return(alice, &service.Claims{UserID: alice.ID}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/cars", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rr := httptest.NewRecorder()

	LoggingMiddleware(AuthMiddleware(auth, cookieName)(echoUser)).ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, "request handled", entry.Message)
	assert.Equal(t, "alice", entry.Data["identity"])
	assert.Equal(t, http.StatusOK, entry.Data["status"])
}

func TestChain(t *testing.T) {
	var order []string
	tag := func(name string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	handler := Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}), tag("outer"), tag("inner"))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, []string{"outer", "inner"}, order)
}
