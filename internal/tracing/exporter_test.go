package tracing

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

func readRecords(t *testing.T, path string) []SpanRecord {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var records []SpanRecord
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var rec SpanRecord
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &rec))
		records = append(records, rec)
	}
	require.NoError(t, scanner.Err())
	return records
}

func TestFileExporter_WritesParentChildAndErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "traces.jsonl")
	exporter, err := NewFileExporter(path)
	require.NoError(t, err)

	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	tracer := tp.Tracer("test")

	ctx, parent := tracer.Start(context.Background(), SpanSnapshot,
		trace.WithAttributes(attribute.Int(AttrSessionCount, 3)))
	_, child := tracer.Start(ctx, SpanProjectGroups)
	child.AddEvent(EventStoreQuery, trace.WithAttributes(attribute.String(AttrProjectID, "p1")))
	RecordError(child, errors.New("store unavailable"))
	child.End()
	parent.End()

	require.NoError(t, tp.Shutdown(context.Background()))

	records := readRecords(t, path)
	require.Len(t, records, 2)

	childRec, parentRec := records[0], records[1]
	require.Equal(t, SpanProjectGroups, childRec.Name)
	require.Equal(t, parentRec.SpanID, childRec.ParentSpanID)
	require.Equal(t, parentRec.TraceID, childRec.TraceID)
	require.Equal(t, "ERROR", childRec.Status)
	require.Equal(t, "store unavailable", childRec.StatusMsg)
	require.NotEmpty(t, childRec.Events)
	require.Equal(t, EventStoreQuery, childRec.Events[0].Name)

	require.Empty(t, parentRec.ParentSpanID)
	require.Equal(t, "UNSET", parentRec.Status)
	require.EqualValues(t, 3, parentRec.Attributes[AttrSessionCount])
}

func TestFileExporter_ShutdownIsIdempotent(t *testing.T) {
	exporter, err := NewFileExporter(filepath.Join(t.TempDir(), "traces.jsonl"))
	require.NoError(t, err)

	require.NoError(t, exporter.Shutdown(context.Background()))
	require.NoError(t, exporter.Shutdown(context.Background()))
	require.Error(t, exporter.ExportSpans(context.Background(), nil))
}

func TestRecordError_NilIsIgnored(t *testing.T) {
	tp := sdktrace.NewTracerProvider()
	_, span := tp.Tracer("test").Start(context.Background(), SpanSummary)
	require.NotPanics(t, func() { RecordError(span, nil) })
	span.End()
}
