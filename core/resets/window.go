package resets

import (
	"fmt"
	"time"
)

// Window is a half-open reset interval [Start, End).
type Window struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the window.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

// Anchor identifies a raid's reset cycle: the start of its first reset and
// the period length in days. Different raids and raid sizes may carry
// different anchors.
type Anchor struct {
	Start      time.Time
	PeriodDays int
}

// WindowFor returns the reset window containing when, for the cycle
// described by anchor. The period must be positive. Timestamps before the
// anchor start yield the window of a negative cycle number; callers that
// consider such timestamps invalid must reject them upstream.
func WindowFor(when time.Time, anchor Anchor) (Window, error) {
	if anchor.PeriodDays <= 0 {
		return Window{}, fmt.Errorf("reset period must be positive, got %d", anchor.PeriodDays)
	}

	// Duration division truncates toward zero; a when fractionally
	// below the anchor must still floor into the earlier second.
	diff := when.Sub(anchor.Start)
	seconds := int(diff / time.Second)
	if diff%time.Second < 0 {
		seconds--
	}
	days := floorDiv(seconds, 86400)
	n := floorDiv(days, anchor.PeriodDays)
	start := anchor.Start.AddDate(0, 0, n*anchor.PeriodDays)
	return Window{Start: start, End: start.AddDate(0, 0, anchor.PeriodDays)}, nil
}

// UnionRange widens a coarse [from, to] range to the reset-aligned range
// covering it across every observed anchor: the earliest window start
// containing from and the latest window end containing to. When no anchors
// were observed the coarse range is returned unchanged; that fallback is
// deliberate, not an error.
func UnionRange(from, to time.Time, anchors []Anchor) (time.Time, time.Time, error) {
	if len(anchors) == 0 {
		return from, to, nil
	}

	var lo, hi time.Time
	for i, anchor := range anchors {
		wFrom, err := WindowFor(from, anchor)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		wTo, err := WindowFor(to, anchor)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		if i == 0 || wFrom.Start.Before(lo) {
			lo = wFrom.Start
		}
		if i == 0 || wTo.End.After(hi) {
			hi = wTo.End
		}
	}
	return lo, hi, nil
}

// floorDiv divides rounding toward negative infinity, so timestamps before
// the anchor land in negative cycles instead of cycle zero.
func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}
