package scoring

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestContentScoreBlendsBreadthAndDepth(t *testing.T) {
	t.Parallel()

	p := Default()

	// 4 interesting out of 10 processed: breadth 40.0.
	// mean ratio 0.6125, boosted: 91.875, truncated: 91.8.
	got := p.ContentScore(4, 10, []float64{0.5, 0.6, 0.45, 0.9})
	if !almostEqual(got, 65.9) {
		t.Fatalf("expected 65.9, got %v", got)
	}
}

func TestContentScoreNoInteresting(t *testing.T) {
	t.Parallel()

	p := Default()
	if got := p.ContentScore(0, 5, nil); got != 0 {
		t.Fatalf("expected 0 without interesting candidates, got %v", got)
	}
}

func TestContentScoreDepthCap(t *testing.T) {
	t.Parallel()

	p := Default()

	// Boosted depth would be 150; the cap holds it at 100.
	got := p.ContentScore(2, 2, []float64{1.0, 1.0})
	if !almostEqual(got, 100) {
		t.Fatalf("expected 100, got %v", got)
	}
}

func TestGlobalScore(t *testing.T) {
	t.Parallel()

	// (100-60)/100*60 + 60*80/100 = 24 + 48.
	if got := GlobalScore(80, 60); !almostEqual(got, 72.0) {
		t.Fatalf("expected 72.0, got %v", got)
	}
	if got := GlobalScore(0, 0); got != 0 {
		t.Fatalf("expected 0 for an unknown site, got %v", got)
	}
}

func TestIsolatedScore(t *testing.T) {
	t.Parallel()

	if got := IsolatedScore(0, 5); !almostEqual(got, 100) {
		t.Fatalf("expected 100 with no isolated articles, got %v", got)
	}
	if got := IsolatedScore(1, 3); !almostEqual(got, 75) {
		t.Fatalf("expected 75, got %v", got)
	}
	if got := IsolatedScore(2, 0); got != 0 {
		t.Fatalf("expected 0 for an all-isolated domain, got %v", got)
	}
}

func TestTruncate1(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   float64
		want float64
	}{
		{91.875, 91.8},
		{65.99, 65.9},
		{40.0, 40.0},
		{-1.25, -1.2},
	}

	for _, tc := range cases {
		if got := Truncate1(tc.in); !almostEqual(got, tc.want) {
			t.Fatalf("Truncate1(%v): expected %v, got %v", tc.in, tc.want, got)
		}
	}
}

func TestDefaultPolicyVersion(t *testing.T) {
	t.Parallel()

	if Default().Version != CurrentVersion {
		t.Fatalf("default policy must carry the current version")
	}
}
