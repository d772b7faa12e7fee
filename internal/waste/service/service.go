// Package service implements the waste ledger: detection reports, the
// one-way detected -> collected transition, queries, and aggregate stats.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"wastebot/internal/platform/config"
	"wastebot/internal/platform/metrics"
	platformredis "wastebot/internal/platform/redis"
	"wastebot/internal/waste"
	dErrors "wastebot/pkg/domain-errors"
	audit "wastebot/pkg/platform/audit"
	"wastebot/pkg/platform/audit/publisher"
	"wastebot/pkg/platform/sentinel"
)

const statsCacheKey = "wastebot:waste:stats"

// Service orchestrates the waste record lifecycle. ConfirmCollection uses the
// find-then-mutate-if-present pattern: missing ids are silent no-ops and the
// collected status never reverts.
type Service struct {
	records waste.Store
	logger  *slog.Logger
	metrics *metrics.Metrics
	audit   *publisher.Publisher
	cache   *platformredis.Client
}

type serviceConfig struct {
	logger  *slog.Logger
	metrics *metrics.Metrics
	audit   *publisher.Publisher
	cache   *platformredis.Client
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

// WithStatsCache serves Stats from Redis with a short TTL. A nil client
// leaves caching disabled.
func WithStatsCache(cache *platformredis.Client) Option {
	return func(c *serviceConfig) { c.cache = cache }
}

func NewService(records waste.Store, opts ...Option) *Service {
	cfg := &serviceConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.logger == nil {
		cfg.logger = slog.Default()
	}
	return &Service{
		records: records,
		logger:  cfg.logger,
		metrics: cfg.metrics,
		audit:   cfg.audit,
		cache:   cfg.cache,
	}
}

// ReportDetection records a new detection. The identifier and timestamp are
// assigned here, never taken from the caller.
func (s *Service) ReportDetection(ctx context.Context, det waste.Detection) (*waste.Record, error) {
	if !det.Category.Valid() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "unknown waste category")
	}
	if det.Confidence != nil && (*det.Confidence < 0 || *det.Confidence > 1) {
		return nil, dErrors.New(dErrors.CodeBadRequest, "confidence must be in [0,1]")
	}
	if (det.Latitude == nil) != (det.Longitude == nil) {
		return nil, dErrors.New(dErrors.CodeBadRequest, "latitude and longitude must be supplied together")
	}

	rec := waste.Record{
		ID:         uuid.NewString(),
		Category:   det.Category,
		Status:     waste.StatusDetected,
		Timestamp:  time.Now().UTC(),
		Region:     det.Region,
		Latitude:   det.Latitude,
		Longitude:  det.Longitude,
		Confidence: det.Confidence,
		RobotID:    det.RobotID,
	}
	if err := s.records.Create(ctx, rec); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to record detection")
	}

	s.metrics.IncrementWastesDetected()
	s.emit(ctx, audit.EventWasteDetected, rec.ID)
	s.invalidateStats(ctx)
	return &rec, nil
}

// ConfirmCollection transitions a record to collected. Missing ids are
// silent no-ops; confirming an already-collected record changes nothing.
func (s *Service) ConfirmCollection(ctx context.Context, id string) error {
	rec, err := s.records.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to look up waste record")
	}

	if rec.Status == waste.StatusCollected {
		return nil
	}

	rec.Status = waste.StatusCollected
	if err := s.records.Update(ctx, rec); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to update waste record")
	}

	s.metrics.IncrementWastesCollected()
	s.emit(ctx, audit.EventWasteCollected, id)
	s.invalidateStats(ctx)
	return nil
}

func (s *Service) Get(ctx context.Context, id string) (*waste.Record, error) {
	rec, err := s.records.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "waste record not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to look up waste record")
	}
	return &rec, nil
}

func (s *Service) List(ctx context.Context) ([]waste.Record, error) {
	records, err := s.records.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list waste records")
	}
	return records, nil
}

func (s *Service) ListByRobot(ctx context.Context, robotID string) ([]waste.Record, error) {
	records, err := s.records.ListByRobot(ctx, robotID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list waste records")
	}
	return records, nil
}

// Stats returns aggregate counts, served from the Redis cache when one is
// configured and falling back to the store otherwise.
func (s *Service) Stats(ctx context.Context) (waste.Stats, error) {
	if s.cache != nil {
		if raw, err := s.cache.Get(ctx, statsCacheKey).Bytes(); err == nil {
			var stats waste.Stats
			if err := json.Unmarshal(raw, &stats); err == nil {
				return stats, nil
			}
		}
	}

	stats, err := s.records.Counts(ctx)
	if err != nil {
		return waste.Stats{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to aggregate stats")
	}

	if s.cache != nil {
		if raw, err := json.Marshal(stats); err == nil {
			if err := s.cache.Set(ctx, statsCacheKey, raw, config.StatsCacheTTL).Err(); err != nil {
				s.logger.WarnContext(ctx, "stats cache write failed", "error", err)
			}
		}
	}
	return stats, nil
}

// Delete removes a record. Deleting an unknown id succeeds silently.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.records.Delete(ctx, id); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete waste record")
	}
	s.emit(ctx, audit.EventWasteDeleted, id)
	s.invalidateStats(ctx)
	return nil
}

func (s *Service) invalidateStats(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, statsCacheKey).Err(); err != nil {
		s.logger.WarnContext(ctx, "stats cache invalidation failed", "error", err)
	}
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
