package flagx

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		allowed []string
		want    []string
	}{
		{
			name:    "separate value kept",
			args:    []string{"-a", "http://127.0.0.1:8080", "-x", "other"},
			allowed: []string{"-a"},
			want:    []string{"-a", "http://127.0.0.1:8080"},
		},
		{
			name:    "joined value kept",
			args:    []string{"--api=http://h:1", "--nope=2"},
			allowed: []string{"--api"},
			want:    []string{"--api=http://h:1"},
		},
		{
			name:    "flag followed by another flag keeps only the flag",
			args:    []string{"-a", "-b"},
			allowed: []string{"-a"},
			want:    []string{"-a"},
		},
		{
			name:    "nothing allowed",
			args:    []string{"-a", "1"},
			allowed: nil,
			want:    []string{},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, FilterArgs(tc.args, tc.allowed))
		})
	}
}
