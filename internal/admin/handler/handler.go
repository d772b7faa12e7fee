package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"wastebot/internal/admin"
	"wastebot/internal/platform/middleware"
	"wastebot/internal/transport/http/shared"
	dErrors "wastebot/pkg/domain-errors"
)

// Service defines the interface for admin account operations.
type Service interface {
	Register(ctx context.Context, name, email, password string) (*admin.Admin, error)
	Login(ctx context.Context, email, password string) (string, error)
	UpdateProfile(ctx context.Context, id, newName, newPassword string) (*admin.Admin, error)
	List(ctx context.Context) ([]admin.Admin, error)
}

// Handler handles admin account endpoints.
type Handler struct {
	logger    *slog.Logger
	admins    Service
	validator middleware.TokenValidator
}

func New(admins Service, logger *slog.Logger, validator middleware.TokenValidator) *Handler {
	return &Handler{
		logger:    logger,
		admins:    admins,
		validator: validator,
	}
}

// Register mounts the admin routes. Registration and login are open; profile
// updates and listing require a valid token.
func (h *Handler) Register(r chi.Router) {
	r.Post("/api/admins", h.handleRegister)
	r.Post("/api/admins/login", h.handleLogin)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(h.validator, h.logger))
		r.Get("/api/admins", h.handleList)
		r.Put("/api/admins/{id}", h.handleUpdate)
	})
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	created, err := h.admins.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		h.logger.WarnContext(r.Context(), "admin registration rejected",
			"error", err.Error(),
			"request_id", middleware.GetRequestID(r.Context()),
		)
		shared.WriteError(w, err)
		return
	}

	shared.WriteJSON(w, http.StatusCreated, created)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	token, err := h.admins.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	shared.WriteJSON(w, http.StatusOK, loginResponse{Token: token})
}

type updateRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req updateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	updated, err := h.admins.UpdateProfile(r.Context(), id, req.Name, req.Password)
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	shared.WriteJSON(w, http.StatusOK, updated)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	admins, err := h.admins.List(r.Context())
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, admins)
}
