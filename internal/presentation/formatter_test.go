package presentation

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/homespun/homespun/internal/snapshot"
	"github.com/homespun/homespun/internal/status"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{in: "", want: FormatTable},
		{in: "table", want: FormatTable},
		{in: "JSON", want: FormatJSON},
		{in: " yaml ", want: FormatYAML},
		{in: "xml", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				require.ErrorContains(t, err, "unknown output format")
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestFormatter_Defaults(t *testing.T) {
	f := NewFormatter(&bytes.Buffer{}, WithWidth(0))
	require.Equal(t, FormatTable, f.Format())
	require.Equal(t, DefaultWidth, f.width)
}

func TestFormatter_SummaryJSON(t *testing.T) {
	var buf bytes.Buffer
	f := NewFormatter(&buf, WithFormat(FormatJSON))

	require.NoError(t, f.FormatSummary(FromCounts(status.Counts{Working: 1, PlanReady: 2})))

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Equal(t, "attention", got["indicator"])
	require.Equal(t, float64(3), got["total"])
	counts := got["counts"].(map[string]any)
	require.Equal(t, float64(2), counts["plan_ready"])
	require.True(t, strings.Contains(buf.String(), "\n  \""), "output is indented")
}

func TestFormatter_ImportResultYAML(t *testing.T) {
	var buf bytes.Buffer
	f := NewFormatter(&buf, WithFormat(FormatYAML))

	require.NoError(t, f.FormatImportResult(snapshot.Result{ImportID: "imp-1", Sessions: 3, GeneratedIDs: 1}))

	var got ImportResultDTO
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	require.Equal(t, "imp-1", got.ImportID)
	require.Equal(t, 3, got.Sessions)
	require.Equal(t, 1, got.GeneratedIDs)
}

func TestFormatter_StatusGroupsEmptyJSON(t *testing.T) {
	var buf bytes.Buffer
	f := NewFormatter(&buf, WithFormat(FormatJSON))

	require.NoError(t, f.FormatStatusGroups([]StatusGroupDTO{}))
	require.Equal(t, "[]\n", buf.String())
}

func TestFormatter_SnapshotTable(t *testing.T) {
	var buf bytes.Buffer
	f := NewFormatter(&buf)

	snap := SnapshotDTO{
		Summary: FromCounts(status.Counts{Working: 1}),
		ByProject: []ProjectGroupDTO{{
			Name:     "Alpha",
			Sessions: []SessionDTO{{Title: "Fix login", Status: "Running", StatusLabel: "Working"}},
		}},
	}
	require.NoError(t, f.FormatSnapshot(snap))

	out := buf.String()
	require.Contains(t, out, "working")
	require.Contains(t, out, "Alpha")
	require.Contains(t, out, "Fix login")
	require.Contains(t, out, "No containers")
}
