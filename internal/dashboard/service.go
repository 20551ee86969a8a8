// Package dashboard is the application layer behind every dashboard view.
// It loads sessions and containers from the store, resolves entity metadata
// through a read-through cache, and runs the classifier and grouper to
// build presentation DTOs.
package dashboard

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/homespun/homespun/internal/cachemanager"
	"github.com/homespun/homespun/internal/format"
	"github.com/homespun/homespun/internal/grouping"
	"github.com/homespun/homespun/internal/log"
	"github.com/homespun/homespun/internal/presentation"
	"github.com/homespun/homespun/internal/sessions/domain"
	"github.com/homespun/homespun/internal/status"
	"github.com/homespun/homespun/internal/tracing"
)

// lookupKey caches the lookup over every entity. Sessions of one project may
// reference entities filed under another project or none, so the lookup is
// never narrowed by the project filter.
const lookupKey = "entity-info:all"

// LookupCache is the cache behind entity lookups.
type LookupCache = cachemanager.CacheManager[string, domain.EntityLookup]

// Service builds dashboard views from the store.
type Service struct {
	sessions   domain.SessionRepository
	containers domain.ContainerRepository
	entities   domain.EntityRepository

	lookups  *cachemanager.ReadThroughCache[string, domain.EntityLookup, string]
	cache    LookupCache
	cacheTTL time.Duration
	noCache  bool

	tracer trace.Tracer
	clock  format.Clock
	uptime bool
}

// Option configures a Service.
type Option func(*Service)

// WithCache puts entity lookups behind cache for ttl. Without it every
// view reads entities from the store.
func WithCache(cache LookupCache, ttl time.Duration) Option {
	return func(s *Service) {
		s.cache = cache
		s.cacheTTL = ttl
	}
}

func WithTracer(t trace.Tracer) Option {
	return func(s *Service) { s.tracer = t }
}

func WithClock(c format.Clock) Option {
	return func(s *Service) { s.clock = c }
}

// WithContainerUptime adds uptime to container rows.
func WithContainerUptime(enabled bool) Option {
	return func(s *Service) { s.uptime = enabled }
}

// NewService wires a Service over the given repositories.
func NewService(
	sessions domain.SessionRepository,
	containers domain.ContainerRepository,
	entities domain.EntityRepository,
	opts ...Option,
) *Service {
	s := &Service{
		sessions:   sessions,
		containers: containers,
		entities:   entities,
		tracer:     otel.Tracer("github.com/homespun/homespun/internal/dashboard"),
		clock:      format.RealClock{},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.noCache = s.cache == nil
	s.lookups = cachemanager.NewReadThroughCache(s.cache, s.loadLookup, s.noCache)
	return s
}

func (s *Service) start(ctx context.Context, name, projectID string) (context.Context, trace.Span) {
	return s.tracer.Start(ctx, name, trace.WithAttributes(attribute.String(tracing.AttrProjectID, projectID)))
}

func (s *Service) finish(span trace.Span, err error) {
	tracing.RecordError(span, err)
	span.End()
}

// Summary classifies the sessions of projectID (all projects when empty).
func (s *Service) Summary(ctx context.Context, projectID string) (_ presentation.SummaryDTO, err error) {
	ctx, span := s.start(ctx, tracing.SpanSummary, projectID)
	defer func() { s.finish(span, err) }()

	sessions, err := s.listSessions(ctx, projectID)
	if err != nil {
		return presentation.SummaryDTO{}, err
	}
	counts := status.Classify(sessions)
	span.SetAttributes(attribute.String(tracing.AttrIndicator, counts.Indicator().String()))
	return presentation.FromCounts(counts), nil
}

// ProjectGroups groups sessions by resolved project name.
func (s *Service) ProjectGroups(ctx context.Context, projectID string) (_ []presentation.ProjectGroupDTO, err error) {
	ctx, span := s.start(ctx, tracing.SpanProjectGroups, projectID)
	defer func() { s.finish(span, err) }()

	sessions, lookup, err := s.loadSessions(ctx, projectID)
	if err != nil {
		return nil, err
	}
	groups := grouping.GroupByProject(sessions, lookup)
	span.SetAttributes(attribute.Int(tracing.AttrGroupCount, len(groups)))
	return presentation.FromProjectGroups(groups, lookup, s.clock), nil
}

// StatusGroups groups sessions by exact status, most urgent first.
func (s *Service) StatusGroups(ctx context.Context, projectID string) (_ []presentation.StatusGroupDTO, err error) {
	ctx, span := s.start(ctx, tracing.SpanStatusGroups, projectID)
	defer func() { s.finish(span, err) }()

	sessions, lookup, err := s.loadSessions(ctx, projectID)
	if err != nil {
		return nil, err
	}
	groups := grouping.GroupByStatus(sessions)
	span.SetAttributes(attribute.Int(tracing.AttrGroupCount, len(groups)))
	return presentation.FromStatusGroups(groups, lookup, s.clock), nil
}

// ContainerGroups groups containers by project id.
func (s *Service) ContainerGroups(ctx context.Context, projectID string) (_ []presentation.ContainerGroupDTO, err error) {
	ctx, span := s.start(ctx, tracing.SpanContainerGroups, projectID)
	defer func() { s.finish(span, err) }()

	containers, err := s.listContainers(ctx, projectID)
	if err != nil {
		return nil, err
	}
	groups := grouping.GroupContainersByProject(containers)
	span.SetAttributes(attribute.Int(tracing.AttrGroupCount, len(groups)))
	return presentation.FromContainerGroups(groups, s.uptimeClock()), nil
}

// Snapshot builds every view from a single read of the store.
func (s *Service) Snapshot(ctx context.Context, projectID string) (_ presentation.SnapshotDTO, err error) {
	ctx, span := s.start(ctx, tracing.SpanSnapshot, projectID)
	defer func() { s.finish(span, err) }()

	sessions, lookup, err := s.loadSessions(ctx, projectID)
	if err != nil {
		return presentation.SnapshotDTO{}, err
	}
	containers, err := s.listContainers(ctx, projectID)
	if err != nil {
		return presentation.SnapshotDTO{}, err
	}

	counts := status.Classify(sessions)
	span.SetAttributes(attribute.String(tracing.AttrIndicator, counts.Indicator().String()))

	return presentation.SnapshotDTO{
		GeneratedAt: s.clock.Now(),
		Summary:     presentation.FromCounts(counts),
		ByProject:   presentation.FromProjectGroups(grouping.GroupByProject(sessions, lookup), lookup, s.clock),
		ByStatus:    presentation.FromStatusGroups(grouping.GroupByStatus(sessions), lookup, s.clock),
		Containers:  presentation.FromContainerGroups(grouping.GroupContainersByProject(containers), s.uptimeClock()),
	}, nil
}

// Invalidate drops cached entity lookups so the next view reads the store.
func (s *Service) Invalidate(ctx context.Context) error {
	if err := s.lookups.Invalidate(ctx); err != nil {
		return fmt.Errorf("flushing entity cache: %w", err)
	}
	trace.SpanFromContext(ctx).AddEvent(tracing.EventCacheFlushed)
	log.Debug(log.CatDashboard, "Entity cache invalidated")
	return nil
}

func (s *Service) uptimeClock() format.Clock {
	if !s.uptime {
		return nil
	}
	return s.clock
}

func (s *Service) listSessions(ctx context.Context, projectID string) ([]*domain.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	sessions, err := s.sessions.List(domain.ListFilter{ProjectID: projectID})
	if err != nil {
		return nil, fmt.Errorf("listing sessions: %w", err)
	}
	trace.SpanFromContext(ctx).AddEvent(tracing.EventStoreQuery, trace.WithAttributes(
		attribute.Int(tracing.AttrSessionCount, len(sessions)),
	))
	return sessions, nil
}

func (s *Service) listContainers(ctx context.Context, projectID string) ([]domain.Container, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	containers, err := s.containers.List(domain.ListFilter{ProjectID: projectID})
	if err != nil {
		return nil, fmt.Errorf("listing containers: %w", err)
	}
	trace.SpanFromContext(ctx).AddEvent(tracing.EventStoreQuery, trace.WithAttributes(
		attribute.Int(tracing.AttrContainerCount, len(containers)),
	))
	return containers, nil
}

func (s *Service) loadSessions(ctx context.Context, projectID string) ([]*domain.Session, domain.EntityLookup, error) {
	sessions, err := s.listSessions(ctx, projectID)
	if err != nil {
		return nil, nil, err
	}
	lookup, err := s.entityLookup(ctx)
	if err != nil {
		return nil, nil, err
	}
	return sessions, lookup, nil
}

// entityLookup returns the lookup over all entities. The span's cache.hit
// attribute is overwritten by loadLookup on a miss.
func (s *Service) entityLookup(ctx context.Context) (domain.EntityLookup, error) {
	span := trace.SpanFromContext(ctx)
	span.SetAttributes(attribute.Bool(tracing.AttrCacheHit, !s.noCache))

	lookup, err := s.lookups.GetWithRefresh(ctx, lookupKey, "", s.cacheTTL)
	if err != nil {
		return nil, fmt.Errorf("loading entities: %w", err)
	}
	return lookup, nil
}

func (s *Service) loadLookup(ctx context.Context, _ string) (domain.EntityLookup, error) {
	entities, err := s.entities.List(domain.ListFilter{})
	if err != nil {
		return nil, err
	}

	lookup := make(domain.EntityLookup, len(entities))
	for _, e := range entities {
		lookup[e.ID] = e
	}

	span := trace.SpanFromContext(ctx)
	span.SetAttributes(attribute.Bool(tracing.AttrCacheHit, false))
	span.AddEvent(tracing.EventEntityLookup, trace.WithAttributes(
		attribute.Int(tracing.AttrEntityCount, len(entities)),
	))
	log.Debug(log.CatDashboard, "Loaded entity lookup", "entities", len(entities))
	return lookup, nil
}
