//go:build !race

package main

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

// Stress mode races the unsynchronized provider and the unguarded ledger on
// purpose, so it only runs without the race detector.
func TestRunStress(t *testing.T) {
	path := writeConfig(t, `
mode: stress
stress:
  trials: 5
  workers: 8
  iterations: 100
  amount: 1
`)

	var out bytes.Buffer
	if err := run(context.Background(), []string{"-config", path}, &out); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	got := out.String()
	for _, want := range []string{"STRATEGY", "deferred_synchronized", "enumerated", "LEDGER", "guarded"} {
		if !strings.Contains(got, want) {
			t.Errorf("expected %q in output:\n%s", want, got)
		}
	}
	if !strings.Contains(got, "1800.00") {
		t.Errorf("expected the guarded total 1800.00:\n%s", got)
	}
}
