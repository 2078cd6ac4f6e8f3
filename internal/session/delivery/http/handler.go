package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/KativuCraig/manymor-frontend/internal/session"
	"github.com/KativuCraig/manymor-frontend/internal/web"
	"github.com/KativuCraig/manymor-frontend/pkg/logger"
)

// SessionHandler exposes the login, registration and current-user endpoints.
type SessionHandler struct {
	service *session.Service
}

// NewSessionHandler creates a session handler.
func NewSessionHandler(service *session.Service) *SessionHandler {
	return &SessionHandler{service: service}
}

// RegisterRoutes registers the session routes on the router.
func (h *SessionHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/session/login", h.Login).Methods(http.MethodPost)
	router.HandleFunc("/api/session/register", h.Register).Methods(http.MethodPost)
	router.HandleFunc("/api/session/logout", h.Logout).Methods(http.MethodPost)
	router.HandleFunc("/api/session/me", h.CurrentUser).Methods(http.MethodGet)
}

// Login handles POST /api/session/login
func (h *SessionHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		web.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		web.RespondError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	user, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		logger.Warn(r.Context()).Err(err).Str("email", req.Email).Msg("Login failed")
		web.RespondError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	web.RespondJSON(w, http.StatusOK, web.Response{
		Success: true,
		Message: "Logged in",
		Data:    user,
	})
}

// Register handles POST /api/session/register
func (h *SessionHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Phone    string `json:"phone_number"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		web.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		web.RespondError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	user, err := h.service.Register(r.Context(), req.Email, req.Password, req.Phone)
	if err != nil {
		logger.Warn(r.Context()).Err(err).Str("email", req.Email).Msg("Registration failed")
		web.RespondError(w, http.StatusBadGateway, "Registration failed")
		return
	}

	web.RespondJSON(w, http.StatusCreated, web.Response{
		Success: true,
		Message: "Account created",
		Data:    user,
	})
}

// Logout handles POST /api/session/logout
func (h *SessionHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Logout(r.Context()); err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to clear session")
		web.RespondError(w, http.StatusInternalServerError, "Failed to log out")
		return
	}
	web.RespondJSON(w, http.StatusOK, web.Response{
		Success: true,
		Message: "Logged out",
	})
}

// CurrentUser handles GET /api/session/me
func (h *SessionHandler) CurrentUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.service.CurrentUser(r.Context())
	if err != nil {
		if errors.Is(err, session.ErrNotAuthenticated) {
			web.RespondError(w, http.StatusUnauthorized, "Not authenticated")
			return
		}
		logger.Error(r.Context()).Err(err).Msg("Failed to load current user")
		web.RespondError(w, http.StatusBadGateway, "Failed to load user")
		return
	}

	web.RespondJSON(w, http.StatusOK, web.Response{
		Success: true,
		Data:    user,
	})
}
