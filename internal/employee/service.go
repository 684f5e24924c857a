package employee

import (
	"context"
	"fmt"
	"strings"
	"time"

	"nathanbeddoewebdev/staffdesk/internal/auditlog"
	"nathanbeddoewebdev/staffdesk/internal/retry"
	"nathanbeddoewebdev/staffdesk/internal/swrcache"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const cachePrefix = "employees_"

// ListKey is the cache key for the employee list.
const ListKey = cachePrefix + "list"

// Service sits between the TUI/CLI and the API. Reads go through the shared
// query cache; writes go straight to the API, then invalidate the cache and
// record an audit entry.
type Service struct {
	api    API
	cache  *swrcache.Cache
	audit  auditlog.Repository
	logger *zap.Logger
	query  retry.Config
	mutate retry.Config
	group  singleflight.Group
	now    func() time.Time
}

var _ Mutator = (*Service)(nil)

// Option configures a Service.
type Option func(*Service)

// WithCache enables stale-while-revalidate caching for reads.
func WithCache(cache *swrcache.Cache) Option {
	return func(s *Service) { s.cache = cache }
}

// WithAudit records every mutation in repo.
func WithAudit(repo auditlog.Repository) Option {
	return func(s *Service) { s.audit = repo }
}

// WithLogger sets the service logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithQueryRetry overrides the retry policy for reads.
func WithQueryRetry(cfg retry.Config) Option {
	return func(s *Service) { s.query = cfg }
}

// NewService returns a Service backed by api.
func NewService(api API, opts ...Option) *Service {
	s := &Service{
		api:    api,
		logger: zap.NewNop(),
		query:  retry.QueryConfig(),
		mutate: retry.Once(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List returns all employees. Concurrent callers share one fetch.
func (s *Service) List(ctx context.Context) ([]Record, error) {
	v, err, _ := s.group.Do(ListKey, func() (any, error) {
		return swrcache.GetOrFetch(s.cache, ctx, ListKey, s.fetchList)
	})
	if err != nil {
		return nil, err
	}
	return v.([]Record), nil
}

func (s *Service) fetchList(ctx context.Context) ([]Record, error) {
	records, err := retry.DoValue(ctx, s.query, retry.IsRetryable, s.api.List)
	if err != nil {
		s.logger.Warn("list employees failed", zap.Error(err))
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	employees := make([]Record, 0, len(records))
	for _, r := range records {
		if r.Role == "" || r.Role == RoleEmployee {
			employees = append(employees, r)
		}
	}
	return employees, nil
}

// Get returns the employee with id from the (possibly cached) list.
func (s *Service) Get(ctx context.Context, id string) (*Record, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("employee ID is required")
	}
	records, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range records {
		if records[i].ID == id {
			rec := records[i]
			return &rec, nil
		}
	}
	return nil, fmt.Errorf("employee %s: %w", id, ErrNotFound)
}

// Create sends a create request. It is never retried.
func (s *Service) Create(ctx context.Context, p CreatePayload) (*Record, error) {
	start := s.now()
	rec, err := retry.DoValue(ctx, s.mutate, nil, func(ctx context.Context) (*Record, error) {
		return s.api.Create(ctx, p)
	})

	entry := &auditlog.Entry{Action: auditlog.ActionCreate, ResourceName: p.Name}
	if rec != nil {
		entry.ResourceID = rec.ID
	}
	s.finish(ctx, entry, start, err, p.Password)
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// Update sends an update request. It is never retried.
func (s *Service) Update(ctx context.Context, p UpdatePayload) (*Record, error) {
	if strings.TrimSpace(p.ID) == "" {
		return nil, fmt.Errorf("employee ID is required")
	}
	start := s.now()
	rec, err := retry.DoValue(ctx, s.mutate, nil, func(ctx context.Context) (*Record, error) {
		return s.api.Update(ctx, p)
	})

	entry := &auditlog.Entry{Action: auditlog.ActionUpdate, ResourceID: p.ID, ResourceName: p.Name}
	s.finish(ctx, entry, start, err)
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// Invalidate drops all cached employee queries.
func (s *Service) Invalidate() error {
	return s.cache.InvalidatePrefix(cachePrefix)
}

func (s *Service) finish(ctx context.Context, entry *auditlog.Entry, start time.Time, err error, secrets ...string) {
	entry.DurationMs = s.now().Sub(start).Milliseconds()
	meta := auditlog.MetadataFromContext(ctx)
	entry.Source = meta.Source
	entry.Actor = meta.Actor

	if err != nil {
		entry.Outcome = auditlog.OutcomeError
		entry.Detail = auditlog.Redact(err.Error(), secrets...)
		s.logger.Warn("employee mutation failed",
			zap.String("action", entry.Action),
			zap.String("employee_id", entry.ResourceID),
			zap.String("error", entry.Detail),
		)
	} else {
		entry.Outcome = auditlog.OutcomeSuccess
		if cerr := s.Invalidate(); cerr != nil {
			s.logger.Debug("cache invalidation failed", zap.Error(cerr))
		}
		s.logger.Info("employee mutation succeeded",
			zap.String("action", entry.Action),
			zap.String("employee_id", entry.ResourceID),
			zap.Int64("duration_ms", entry.DurationMs),
		)
	}

	if s.audit != nil {
		if aerr := s.audit.Save(entry); aerr != nil {
			s.logger.Debug("audit save failed", zap.Error(aerr))
		}
	}
}
