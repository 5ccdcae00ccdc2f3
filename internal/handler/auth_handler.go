package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"raceplanner/internal/database"
	"raceplanner/internal/logger"
	"raceplanner/internal/models"
	"raceplanner/internal/service"
)

const notAuthenticatedMessage = "You weren't authenticated!"

type TokenResponse struct {
	Token string `json:"token"`
}

type SignUpResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

func (h *Handlers) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.Cfg.SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(h.Cfg.TokenDuration),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Handlers) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.Cfg.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		WriteMessage(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteMessage(w, "Username and password are required", http.StatusBadRequest)
		return
	}

	user, token, err := h.AuthService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			WriteMessage(w, notAuthenticatedMessage, http.StatusUnauthorized)
			return
		}
		logger.FromContext(r.Context()).WithError(err).Error("login failed")
		WriteMessage(w, "Login failed", http.StatusInternalServerError)
		return
	}

	logger.FromContext(r.Context()).WithField("user", user.Username).Info("user logged in")
	h.setSessionCookie(w, token)
	writeSuccess(w, TokenResponse{Token: token}, http.StatusOK)
}

func (h *Handlers) SignUp(w http.ResponseWriter, r *http.Request) {
	var req models.SignUpRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		WriteMessage(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteMessage(w, "Invalid sign-up data: "+err.Error(), http.StatusBadRequest)
		return
	}

	user, token, err := h.AuthService.Register(r.Context(), req)
	if err != nil {
		if errors.Is(err, database.ErrDuplicateKey) {
			WriteMessage(w, "Username or email is already taken", http.StatusConflict)
			return
		}
		logger.FromContext(r.Context()).WithError(err).Error("sign-up failed")
		WriteMessage(w, "Registration failed", http.StatusInternalServerError)
		return
	}

	logger.FromContext(r.Context()).WithField("user", user.Username).Info("user registered")
	h.setSessionCookie(w, token)
	writeSuccess(w, SignUpResponse{Message: "Register successful!", Token: token}, http.StatusOK)
}

func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	claims, _ := service.ClaimsFromContext(r.Context())
	if err := h.AuthService.Logout(r.Context(), claims); err != nil {
		if errors.Is(err, service.ErrUnauthenticated) {
			WriteMessage(w, notAuthenticatedMessage, http.StatusUnauthorized)
			return
		}
		logger.FromContext(r.Context()).WithError(err).Error("logout failed")
		WriteMessage(w, "Logout failed", http.StatusInternalServerError)
		return
	}

	h.clearSessionCookie(w)
	WriteMessage(w, "Logged out!", http.StatusOK)
}

// WhoAmI answers the current user, or {} for anonymous requests.
func (h *Handlers) WhoAmI(w http.ResponseWriter, r *http.Request) {
	user, ok := service.UserFromContext(r.Context())
	if !ok {
		writeSuccess(w, struct{}{}, http.StatusOK)
		return
	}

	writeSuccess(w, user, http.StatusOK)
}
