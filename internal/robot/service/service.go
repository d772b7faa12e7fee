// Package service implements the robot registry: creation, lookup, full
// replace, deletion, and the Inactive <-> Active state machine.
package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"wastebot/internal/platform/metrics"
	"wastebot/internal/robot"
	dErrors "wastebot/pkg/domain-errors"
	audit "wastebot/pkg/platform/audit"
	"wastebot/pkg/platform/audit/publisher"
	"wastebot/pkg/platform/sentinel"
)

// Service orchestrates robot lifecycle. Activate and deactivate follow the
// find-then-mutate-if-present pattern: a missing id is a silent no-op, and
// repeating a transition is idempotent.
type Service struct {
	robots  robot.Store
	logger  *slog.Logger
	metrics *metrics.Metrics
	audit   *publisher.Publisher
}

type serviceConfig struct {
	logger  *slog.Logger
	metrics *metrics.Metrics
	audit   *publisher.Publisher
}

type Option func(*serviceConfig)

func WithLogger(l *slog.Logger) Option {
	return func(c *serviceConfig) { c.logger = l }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(c *serviceConfig) { c.metrics = m }
}

func WithAuditPublisher(p *publisher.Publisher) Option {
	return func(c *serviceConfig) { c.audit = p }
}

func NewService(robots robot.Store, opts ...Option) *Service {
	cfg := &serviceConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.logger == nil {
		cfg.logger = slog.Default()
	}
	return &Service{
		robots:  robots,
		logger:  cfg.logger,
		metrics: cfg.metrics,
		audit:   cfg.audit,
	}
}

func validateSpec(spec robot.Spec) error {
	if strings.TrimSpace(spec.MACAddress) == "" {
		return dErrors.New(dErrors.CodeBadRequest, "macAddress is required")
	}
	if strings.TrimSpace(spec.Region) == "" {
		return dErrors.New(dErrors.CodeBadRequest, "region is required")
	}
	return nil
}

// Create registers a new robot. Any caller-supplied identifier is ignored;
// the new robot starts inactive.
func (s *Service) Create(ctx context.Context, spec robot.Spec) (*robot.Robot, error) {
	if err := validateSpec(spec); err != nil {
		return nil, err
	}

	r := robot.Robot{
		ID:          uuid.NewString(),
		MACAddress:  spec.MACAddress,
		Active:      false,
		Region:      spec.Region,
		Address:     spec.Address,
		Description: spec.Description,
		Model:       spec.Model,
		AdminID:     spec.AdminID,
	}
	if err := s.robots.Create(ctx, r); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create robot")
	}

	s.metrics.IncrementRobotsCreated()
	s.emit(ctx, audit.EventRobotCreated, r.ID)
	return &r, nil
}

func (s *Service) Get(ctx context.Context, id string) (*robot.Robot, error) {
	r, err := s.robots.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "robot not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to look up robot")
	}
	return &r, nil
}

func (s *Service) List(ctx context.Context) ([]robot.Robot, error) {
	robots, err := s.robots.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list robots")
	}
	return robots, nil
}

func (s *Service) ListByAdmin(ctx context.Context, adminID string) ([]robot.Robot, error) {
	robots, err := s.robots.ListByAdmin(ctx, adminID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list robots")
	}
	return robots, nil
}

// Replace overwrites all mutable fields of an existing robot. The activation
// flag is preserved; replacing an unknown id fails with NotFound.
func (s *Service) Replace(ctx context.Context, id string, spec robot.Spec) (*robot.Robot, error) {
	if err := validateSpec(spec); err != nil {
		return nil, err
	}

	current, err := s.robots.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "robot not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to look up robot")
	}

	updated := robot.Robot{
		ID:          id,
		MACAddress:  spec.MACAddress,
		Active:      current.Active,
		Region:      spec.Region,
		Address:     spec.Address,
		Description: spec.Description,
		Model:       spec.Model,
		AdminID:     spec.AdminID,
	}
	if err := s.robots.Update(ctx, updated); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "robot not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to replace robot")
	}
	return &updated, nil
}

// Delete removes a robot. Deleting an unknown id succeeds silently.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.robots.Delete(ctx, id); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete robot")
	}
	s.emit(ctx, audit.EventRobotDeleted, id)
	return nil
}

// Activate marks a robot active. Missing ids and already-active robots are
// silent no-ops.
func (s *Service) Activate(ctx context.Context, id string) error {
	return s.setActive(ctx, id, true, audit.EventRobotActivated)
}

// Deactivate marks a robot inactive with the same no-op semantics.
func (s *Service) Deactivate(ctx context.Context, id string) error {
	return s.setActive(ctx, id, false, audit.EventRobotDeactivated)
}

func (s *Service) setActive(ctx context.Context, id string, active bool, action audit.AuditEvent) error {
	r, err := s.robots.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to look up robot")
	}

	r.Active = active
	if err := s.robots.Update(ctx, r); err != nil {
		// Deleted between find and update: same silent no-op as a missing id.
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to update robot")
	}

	s.emit(ctx, action, id)
	return nil
}

func (s *Service) emit(ctx context.Context, action audit.AuditEvent, subject string) {
	if s.audit == nil {
		return
	}
	if err := s.audit.Emit(ctx, audit.Event{
		Subject: subject,
		Action:  string(action),
	}); err != nil {
		s.logger.WarnContext(ctx, "audit emit failed", "action", action, "error", err)
	}
}
