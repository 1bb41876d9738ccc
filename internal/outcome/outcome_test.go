package outcome

import (
	"errors"
	"fmt"
	"testing"
)

func TestLevelStatus(t *testing.T) {
	t.Parallel()

	cases := map[Level]string{
		LevelInfo:     "info",
		LevelWarning:  "warning",
		LevelError:    "error",
		LevelCritical: "critical",
	}
	for level, want := range cases {
		if got := level.Status(); got != want {
			t.Fatalf("Status(%d): expected %q, got %q", level, want, got)
		}
	}
}

func TestOutcomeSurvivesWrapping(t *testing.T) {
	t.Parallel()

	cause := errors.New("connection refused")
	wrapped := fmt.Errorf("resolve: %w", Error("internal failure", cause))

	var classified *Outcome
	if !errors.As(wrapped, &classified) {
		t.Fatal("expected errors.As to find the outcome")
	}
	if classified.Level != LevelError {
		t.Fatalf("unexpected level: %v", classified.Level)
	}
	if classified.Message != "internal failure" {
		t.Fatalf("unexpected message: %q", classified.Message)
	}
	if !errors.Is(wrapped, cause) {
		t.Fatal("expected the cause to stay reachable through the chain")
	}
}

func TestInfoHasNoCause(t *testing.T) {
	t.Parallel()

	o := Info("still processing")
	if o.Unwrap() != nil {
		t.Fatal("info outcomes carry no cause")
	}
	if o.Error() != "still processing" {
		t.Fatalf("unexpected error string: %q", o.Error())
	}
}
