package tracing

import (
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Span names for dashboard operations.
const (
	SpanSummary         = "dashboard.summary"
	SpanProjectGroups   = "dashboard.groups.project"
	SpanStatusGroups    = "dashboard.groups.status"
	SpanContainerGroups = "dashboard.groups.containers"
	SpanSnapshot        = "dashboard.snapshot"
	SpanImport          = "snapshot.import"
)

// Span attribute keys.
const (
	AttrProjectID      = "project.id"
	AttrSessionCount   = "sessions.count"
	AttrContainerCount = "containers.count"
	AttrEntityCount    = "entities.count"
	AttrGroupCount     = "groups.count"
	AttrIndicator      = "status.indicator"
	AttrCacheHit       = "cache.hit"
	AttrStrict         = "import.strict"
	AttrErrorMessage   = "error.message"
)

// Event names.
const (
	EventStoreQuery   = "store.query"
	EventEntityLookup = "entity.lookup"
	EventCacheFlushed = "cache.flushed"
)

// RecordError marks span as failed with err. A nil err is ignored.
func RecordError(span trace.Span, err error) {
	if err == nil {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
