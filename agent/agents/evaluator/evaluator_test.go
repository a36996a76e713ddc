package evaluator

import (
	"testing"
)

func TestProgressScore(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		progress map[string]string
		want     float64
	}{
		{"empty", nil, 0},
		{"all excellent", map[string]string{"a": "excellent", "b": "excellent"}, 1},
		{"mixed", map[string]string{"a": "good", "b": "fair"}, 0.625},
		{"needs work", map[string]string{"a": "needs_work"}, 0.25},
		{"unknown grade ignored", map[string]string{"a": "excellent", "b": "???"}, 0.5},
	}
	for _, tc := range cases {
		if got := progressScore(tc.progress); got != tc.want {
			t.Fatalf("%s: progressScore() = %v, want %v", tc.name, got, tc.want)
		}
	}
}
