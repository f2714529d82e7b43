// AngelaMos | 2026
// database_test.go

package core

import (
	"testing"
	"time"
)

func TestJittered(t *testing.T) {
	tests := []struct {
		name string
		base time.Duration
	}{
		{"zero lifetime passes through", 0},
		{"negative lifetime passes through", -time.Hour},
		{"sub-jitter lifetime passes through", 3 * time.Nanosecond},
		{"typical lifetime", time.Hour},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := jittered(tt.base)

			if tt.base <= 7*time.Nanosecond {
				if got != tt.base {
					t.Errorf("jittered(%v) = %v, want unchanged", tt.base, got)
				}
				return
			}

			if got < tt.base || got > tt.base+tt.base/7 {
				t.Errorf("jittered(%v) = %v, want within [base, base+base/7]", tt.base, got)
			}
		})
	}
}
