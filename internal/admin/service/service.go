// Package service implements the auth gate: registration, login, token
// issuance, and profile updates for admin accounts.
package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"wastebot/internal/admin"
	"wastebot/internal/admin/secrets"
	"wastebot/internal/jwttoken"
	"wastebot/internal/platform/metrics"
	dErrors "wastebot/pkg/domain-errors"
	audit "wastebot/pkg/platform/audit"
	"wastebot/pkg/platform/audit/publisher"
	"wastebot/pkg/platform/sentinel"
)

// Service orchestrates admin account lifecycle and credential verification.
type Service struct {
	admins  admin.Store
	tokens  *jwttoken.Service
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

func NewService(admins admin.Store, tokens *jwttoken.Service, opts ...Option) *Service {
	cfg := &serviceConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.logger == nil {
		cfg.logger = slog.Default()
	}
	return &Service{
		admins:  admins,
		tokens:  tokens,
		logger:  cfg.logger,
		metrics: cfg.metrics,
		audit:   cfg.audit,
	}
}

// Register creates a new admin account. The plaintext password is hashed
// immediately and never stored or logged.
func (s *Service) Register(ctx context.Context, name, email, password string) (*admin.Admin, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" || email == "" {
		return nil, dErrors.New(dErrors.CodeBadRequest, "name and email are required")
	}
	if !strings.Contains(email, "@") {
		return nil, dErrors.New(dErrors.CodeBadRequest, "email is malformed")
	}

	hash, err := secrets.Hash(password)
	if err != nil {
		return nil, err
	}

	a := admin.Admin{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.admins.Create(ctx, a); err != nil {
		if errors.Is(err, sentinel.ErrAlreadyUsed) {
			return nil, dErrors.New(dErrors.CodeConflict, "email already registered")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to register admin")
	}

	s.metrics.IncrementAdminsRegistered()
	s.emit(ctx, audit.EventAdminRegistered, email, "")
	return &a, nil
}

// Login verifies credentials and issues a signed token with the admin email
// as subject. Unknown email and bad password are indistinguishable to the
// caller.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	a, err := s.admins.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			s.metrics.IncrementLogins("failure")
			s.emit(ctx, audit.EventLoginFailed, email, "")
			return "", dErrors.New(dErrors.CodeUnauthorized, "invalid credentials")
		}
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "failed to look up admin")
	}

	if err := secrets.Verify(password, a.PasswordHash); err != nil {
		s.metrics.IncrementLogins("failure")
		s.emit(ctx, audit.EventLoginFailed, email, "")
		return "", dErrors.New(dErrors.CodeUnauthorized, "invalid credentials")
	}

	token, err := s.tokens.Generate(a.Email)
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "failed to issue token")
	}

	s.metrics.IncrementLogins("success")
	s.emit(ctx, audit.EventLoginSucceeded, email, "")
	return token, nil
}

// UpdateProfile applies a partial update: empty name or password fields are
// left unchanged. The password is re-hashed only when a new one is supplied.
func (s *Service) UpdateProfile(ctx context.Context, id, newName, newPassword string) (*admin.Admin, error) {
	a, err := s.admins.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "admin not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to look up admin")
	}

	if newName = strings.TrimSpace(newName); newName != "" {
		a.Name = newName
	}
	if newPassword != "" {
		hash, err := secrets.Hash(newPassword)
		if err != nil {
			return nil, err
		}
		a.PasswordHash = hash
	}

	if err := s.admins.Update(ctx, a); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "admin not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to update admin")
	}

	s.emit(ctx, audit.EventAdminProfileUpdated, a.Email, "")
	return &a, nil
}

// List returns all admin accounts (credential hashes are never serialized).
func (s *Service) List(ctx context.Context) ([]admin.Admin, error) {
	admins, err := s.admins.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list admins")
	}
	return admins, nil
}

func (s *Service) emit(ctx context.Context, action audit.AuditEvent, subject, actorID string) {
	if s.audit == nil {
		return
	}
	if err := s.audit.Emit(ctx, audit.Event{
		Subject: subject,
		Action:  string(action),
		ActorID: actorID,
	}); err != nil {
		s.logger.WarnContext(ctx, "audit emit failed", "action", action, "error", err)
	}
}
