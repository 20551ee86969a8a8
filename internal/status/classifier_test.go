package status

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/homespun/homespun/internal/sessions/domain"
)

func sessionsWith(statuses ...domain.Status) []*domain.Session {
	out := make([]*domain.Session, len(statuses))
	for i, s := range statuses {
		out[i] = domain.NewSession("s", "e", "p", s)
	}
	return out
}

func TestClassify_Empty(t *testing.T) {
	require.Equal(t, Counts{}, Classify(nil))
	require.Equal(t, 0, Classify([]*domain.Session{}).Total())
}

func TestClassify_Buckets(t *testing.T) {
	counts := Classify(sessionsWith(
		domain.StatusRunning,
		domain.StatusRunning,
		domain.StatusWaitingForQuestionAnswer,
		domain.StatusWaitingForPlanExecution,
		domain.StatusWaitingForInput,
		domain.StatusWaitingForInput,
		domain.StatusWaitingForInput,
		domain.StatusError,
		domain.StatusStarting,
		domain.StatusRunningHooks,
		domain.StatusStopped,
		domain.Status("Hibernating"),
	))

	require.Equal(t, Counts{
		Working:   2,
		Question:  1,
		PlanReady: 1,
		Waiting:   3,
		Error:     1,
		Unknown:   1,
	}, counts)
	require.Equal(t, 7, counts.Total())
}

func TestClassify_TotalExcludesErrorAndUnknown(t *testing.T) {
	counts := Classify(sessionsWith(domain.StatusError, domain.StatusError, domain.Status("???")))
	require.Equal(t, 2, counts.Error)
	require.Equal(t, 1, counts.Unknown)
	require.Equal(t, 0, counts.Total())
}

func TestClassifyStatuses_MatchesClassify(t *testing.T) {
	statuses := []domain.Status{domain.StatusRunning, domain.StatusStopped, domain.StatusWaitingForInput}
	require.Equal(t, Classify(sessionsWith(statuses...)), ClassifyStatuses(statuses))
}

// TestClassify_TotalProperty checks the total invariant over arbitrary status sequences.
func TestClassify_TotalProperty(t *testing.T) {
	pool := append(domain.KnownStatuses(), "Paused", "Archived", "")
	rapid.Check(t, func(r *rapid.T) {
		statuses := rapid.SliceOf(rapid.SampledFrom(pool)).Draw(r, "statuses")
		c := ClassifyStatuses(statuses)

		if c.Total() != c.Working+c.Question+c.PlanReady+c.Waiting {
			r.Fatalf("total %d does not match active buckets %+v", c.Total(), c)
		}

		excluded := 0
		for _, s := range statuses {
			switch s {
			case domain.StatusStarting, domain.StatusRunningHooks, domain.StatusStopped:
				excluded++
			}
		}
		if got := c.Total() + c.Error + c.Unknown + excluded; got != len(statuses) {
			r.Fatalf("buckets account for %d of %d sessions", got, len(statuses))
		}
	})
}

func TestTooltipText_AllZero(t *testing.T) {
	require.Equal(t, "Click to view", TooltipText(0, 0, 0, 0, 0, 0))
	require.Equal(t, "Click to view", Counts{}.Tooltip())
}

func TestTooltipText(t *testing.T) {
	tests := []struct {
		name                                               string
		working, question, planReady, waiting, err, unknown int
		expected                                           string
	}{
		{"working only", 2, 0, 0, 0, 0, 0, "2 working - Click to view"},
		{"question only", 0, 1, 0, 0, 0, 0, "1 awaiting response - Click to view"},
		{"plan ready only", 0, 0, 3, 0, 0, 0, "3 plan ready - Click to view"},
		{"waiting only", 0, 0, 0, 1, 0, 0, "1 waiting for input - Click to view"},
		{"error only", 0, 0, 0, 0, 4, 0, "4 in error - Click to view"},
		{"unknown only", 0, 0, 0, 0, 0, 1, "1 unknown status - Click to view"},
		{
			"all present",
			1, 2, 3, 4, 5, 6,
			"1 working, 2 awaiting response, 3 plan ready, 4 waiting for input, 5 in error, 6 unknown status - Click to view",
		},
		{"sparse", 1, 0, 0, 2, 0, 0, "1 working, 2 waiting for input - Click to view"},
		{"error and working", 3, 0, 0, 0, 1, 0, "3 working, 1 in error - Click to view"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, TooltipText(tt.working, tt.question, tt.planReady, tt.waiting, tt.err, tt.unknown))
		})
	}
}

// TestTooltipText_OrderProperty checks clause order is fixed regardless of which counts are set.
func TestTooltipText_OrderProperty(t *testing.T) {
	phrases := []string{"working", "awaiting response", "plan ready", "waiting for input", "in error", "unknown status"}
	rapid.Check(t, func(r *rapid.T) {
		n := rapid.SliceOfN(rapid.IntRange(0, 20), 6, 6).Draw(r, "counts")
		text := TooltipText(n[0], n[1], n[2], n[3], n[4], n[5])

		last := -1
		for i, phrase := range phrases {
			idx := strings.Index(text, phrase)
			if n[i] == 0 {
				continue
			}
			if idx < 0 {
				r.Fatalf("missing clause %q in %q", phrase, text)
			}
			if idx <= last {
				r.Fatalf("clause %q out of order in %q", phrase, text)
			}
			last = idx
		}
		if last == -1 && text != "Click to view" {
			r.Fatalf("expected bare text, got %q", text)
		}
	})
}

func TestCounts_Indicator(t *testing.T) {
	require.Equal(t, IndicatorIdle, Counts{}.Indicator())
	require.Equal(t, IndicatorWorking, Counts{Working: 1}.Indicator())
	require.Equal(t, IndicatorAttention, Counts{Working: 1, Waiting: 1}.Indicator())
	require.Equal(t, IndicatorAttention, Counts{PlanReady: 1}.Indicator())
	require.Equal(t, IndicatorError, Counts{Working: 1, Question: 1, Error: 1}.Indicator())
	require.Equal(t, IndicatorIdle, Counts{Unknown: 3}.Indicator())

	require.Equal(t, "attention", IndicatorAttention.String())
	require.Equal(t, "unknown", Indicator(42).String())
}
