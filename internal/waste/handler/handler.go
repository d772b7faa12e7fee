package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"wastebot/internal/transport/http/shared"
	"wastebot/internal/waste"
	dErrors "wastebot/pkg/domain-errors"
)

// Service defines the interface for waste ledger operations.
type Service interface {
	ReportDetection(ctx context.Context, det waste.Detection) (*waste.Record, error)
	ConfirmCollection(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (*waste.Record, error)
	List(ctx context.Context) ([]waste.Record, error)
	ListByRobot(ctx context.Context, robotID string) ([]waste.Record, error)
	Stats(ctx context.Context) (waste.Stats, error)
	Delete(ctx context.Context, id string) error
}

// Handler handles waste ledger endpoints. These routes are unauthenticated:
// detections are reported by robots in the field, which hold no admin
// credentials.
type Handler struct {
	logger *slog.Logger
	wastes Service
}

func New(wastes Service, logger *slog.Logger) *Handler {
	return &Handler{
		logger: logger,
		wastes: wastes,
	}
}

// Register mounts the waste routes.
func (h *Handler) Register(r chi.Router) {
	r.Post("/api/wastes", h.handleReportDetection)
	r.Post("/api/wastes/detect", h.handleReportDetection)
	r.Post("/api/wastes/{id}/collect", h.handleConfirmCollection)
	r.Get("/api/wastes", h.handleList)
	r.Get("/api/wastes/stats", h.handleStats)
	r.Get("/api/wastes/robot/{robotId}", h.handleListByRobot)
	r.Get("/api/wastes/{id}", h.handleGet)
	r.Delete("/api/wastes/{id}", h.handleDelete)
}

func (h *Handler) handleReportDetection(w http.ResponseWriter, r *http.Request) {
	var det waste.Detection
	if err := json.NewDecoder(r.Body).Decode(&det); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	created, err := h.wastes.ReportDetection(r.Context(), det)
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	shared.WriteJSON(w, http.StatusCreated, created)
}

func (h *Handler) handleConfirmCollection(w http.ResponseWriter, r *http.Request) {
	if err := h.wastes.ConfirmCollection(r.Context(), chi.URLParam(r, "id")); err != nil {
		shared.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	rec, err := h.wastes.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, rec)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	records, err := h.wastes.List(r.Context())
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, records)
}

func (h *Handler) handleListByRobot(w http.ResponseWriter, r *http.Request) {
	records, err := h.wastes.ListByRobot(r.Context(), chi.URLParam(r, "robotId"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, records)
}

func (h *Handler) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.wastes.Stats(r.Context())
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, stats)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.wastes.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		shared.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
