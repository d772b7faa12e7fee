package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"wastebot/internal/platform/middleware"
	"wastebot/internal/robot"
	"wastebot/internal/transport/http/shared"
	dErrors "wastebot/pkg/domain-errors"
)

// Service defines the interface for robot registry operations.
type Service interface {
	Create(ctx context.Context, spec robot.Spec) (*robot.Robot, error)
	Get(ctx context.Context, id string) (*robot.Robot, error)
	List(ctx context.Context) ([]robot.Robot, error)
	ListByAdmin(ctx context.Context, adminID string) ([]robot.Robot, error)
	Replace(ctx context.Context, id string, spec robot.Spec) (*robot.Robot, error)
	Delete(ctx context.Context, id string) error
	Activate(ctx context.Context, id string) error
	Deactivate(ctx context.Context, id string) error
}

// Handler handles robot registry endpoints. All routes require a valid
// token: robot state is mutated by admins only.
type Handler struct {
	logger    *slog.Logger
	robots    Service
	validator middleware.TokenValidator
}

func New(robots Service, logger *slog.Logger, validator middleware.TokenValidator) *Handler {
	return &Handler{
		logger:    logger,
		robots:    robots,
		validator: validator,
	}
}

// Register mounts the robot routes behind the auth gate.
func (h *Handler) Register(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(h.validator, h.logger))
		r.Post("/api/robots", h.handleCreate)
		r.Get("/api/robots", h.handleList)
		r.Get("/api/robots/{id}", h.handleGet)
		r.Get("/api/robots/admin/{adminId}", h.handleListByAdmin)
		r.Put("/api/robots/{id}", h.handleReplace)
		r.Delete("/api/robots/{id}", h.handleDelete)
		r.Post("/api/robots/{id}/activate", h.handleActivate)
		r.Post("/api/robots/{id}/deactivate", h.handleDeactivate)
	})
}

func (h *Handler) decodeSpec(w http.ResponseWriter, r *http.Request) (robot.Spec, bool) {
	var spec robot.Spec
	if err := json.NewDecoder(r.Body).Decode(&spec); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return robot.Spec{}, false
	}
	return spec, true
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	spec, ok := h.decodeSpec(w, r)
	if !ok {
		return
	}

	created, err := h.robots.Create(r.Context(), spec)
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	shared.WriteJSON(w, http.StatusCreated, created)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	found, err := h.robots.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, found)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	robots, err := h.robots.List(r.Context())
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, robots)
}

func (h *Handler) handleListByAdmin(w http.ResponseWriter, r *http.Request) {
	robots, err := h.robots.ListByAdmin(r.Context(), chi.URLParam(r, "adminId"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, robots)
}

func (h *Handler) handleReplace(w http.ResponseWriter, r *http.Request) {
	spec, ok := h.decodeSpec(w, r)
	if !ok {
		return
	}

	updated, err := h.robots.Replace(r.Context(), chi.URLParam(r, "id"), spec)
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	shared.WriteJSON(w, http.StatusOK, updated)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.robots.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		shared.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleActivate(w http.ResponseWriter, r *http.Request) {
	if err := h.robots.Activate(r.Context(), chi.URLParam(r, "id")); err != nil {
		shared.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleDeactivate(w http.ResponseWriter, r *http.Request) {
	if err := h.robots.Deactivate(r.Context(), chi.URLParam(r, "id")); err != nil {
		shared.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
