package flags

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegistry_Enabled(t *testing.T) {
	tests := []struct {
		name     string
		registry *Registry
		flag     string
		expected bool
	}{
		{
			name:     "known flag set to true returns true",
			registry: New(map[string]bool{FlagLiveWatch: true}),
			flag:     FlagLiveWatch,
			expected: true,
		},
		{
			name:     "known flag set to false returns false",
			registry: New(map[string]bool{FlagContainerUptime: false}),
			flag:     FlagContainerUptime,
			expected: false,
		},
		{
			name:     "unknown flag returns false",
			registry: New(map[string]bool{FlagLiveWatch: true}),
			flag:     "unknown-flag",
			expected: false,
		},
		{
			name:     "nil registry returns false",
			registry: nil,
			flag:     FlagLiveWatch,
			expected: false,
		},
		{
			name:     "nil flags map returns false",
			registry: New(nil),
			flag:     FlagLiveWatch,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, tt.registry.Enabled(tt.flag))
		})
	}
}

func TestRegistry_CopiesInput(t *testing.T) {
	input := map[string]bool{FlagLiveWatch: true}
	r := New(input)

	input[FlagLiveWatch] = false
	require.True(t, r.Enabled(FlagLiveWatch))

	all := r.All()
	all[FlagLiveWatch] = false
	require.True(t, r.Enabled(FlagLiveWatch))
}

func TestRegistry_EnabledNames(t *testing.T) {
	r := New(map[string]bool{"b": true, "a": true, "c": false})
	require.Equal(t, []string{"a", "b"}, r.EnabledNames())

	var nilRegistry *Registry
	require.Empty(t, nilRegistry.EnabledNames())
	require.Empty(t, nilRegistry.All())
}
