package controllers

import "testing"

func TestIsImprovementHigherScoreWins(t *testing.T) {
	if !isImprovement(15, 10, 30, 20) {
		t.Fatal("higher score should win even with a slower time")
	}
	if isImprovement(5, 10, 1, 20) {
		t.Fatal("lower score must never win")
	}
}

func TestIsImprovementTieBreaksOnTime(t *testing.T) {
	if !isImprovement(10, 10, 18, 20) {
		t.Fatal("equal score with faster time should count as improvement")
	}
	if isImprovement(10, 10, 20, 20) {
		t.Fatal("equal score with equal time is not an improvement")
	}
	if isImprovement(10, 10, 25, 20) {
		t.Fatal("equal score with slower time is not an improvement")
	}
}

func TestIsImprovementMissingTimeReadsAsZero(t *testing.T) {
	// An untimed run carries time 0, so it beats any timed run on a tied score.
	if !isImprovement(10, 10, 0, 20) {
		t.Fatal("zero time should beat a positive stored time on tie")
	}
	// And a stored untimed best can never be tied away.
	if isImprovement(10, 10, 15, 0) {
		t.Fatal("positive time must not beat a stored zero time on tie")
	}
}

func TestCanPlay(t *testing.T) {
	cases := []struct {
		attempts, limit int
		want            bool
	}{
		{0, 1, true},
		{1, 1, false},
		{2, 1, false}, // limit lowered after plays were recorded
		{4, 5, true},
		{5, 5, false},
	}
	for _, c := range cases {
		if got := canPlay(c.attempts, c.limit); got != c.want {
			t.Fatalf("canPlay(%d, %d) = %v, want %v", c.attempts, c.limit, got, c.want)
		}
	}
}

func TestRemainingPlaysNeverNegative(t *testing.T) {
	if got := remainingPlays(3, 5); got != 2 {
		t.Fatalf("remainingPlays(3, 5) = %d, want 2", got)
	}
	if got := remainingPlays(5, 5); got != 0 {
		t.Fatalf("remainingPlays(5, 5) = %d, want 0", got)
	}
	if got := remainingPlays(7, 5); got != 0 {
		t.Fatalf("remainingPlays(7, 5) = %d, want 0", got)
	}
}
