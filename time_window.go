package main

import (
	"time"

	"github.com/andareed/siftly-changepoints/changepoints"
)

const (
	timeInputLayout = "2006-01-02 15:04:05"

	// used when the page has no parsable calculated_on values
	defaultWindowSpan = 7 * 24 * time.Hour
)

// now is swapped out in tests.
var now = time.Now

type timeBounds struct {
	min, max time.Time
	ok       bool
}

// calculatedOnBounds scans the page for its earliest and latest calculated_on.
func calculatedOnBounds(rows []changepoints.GridRow) timeBounds {
	var b timeBounds
	for _, r := range rows {
		ts, ok := changepoints.ParseCalculatedOn(r.CalculatedOn)
		if !ok {
			continue
		}
		if !b.ok {
			b = timeBounds{min: ts, max: ts, ok: true}
			continue
		}
		if ts.Before(b.min) {
			b.min = ts
		}
		if ts.After(b.max) {
			b.max = ts
		}
	}
	return b
}

// defaultWindowBounds is the draft a fresh drawer opens with: the span of the
// current page, or the last week.
func defaultWindowBounds(rows []changepoints.GridRow) (time.Time, time.Time) {
	b := calculatedOnBounds(rows)
	if b.ok && b.max.After(b.min) {
		return b.min.Truncate(time.Second), b.max.Truncate(time.Second).Add(time.Second)
	}
	end := now().UTC().Truncate(time.Second)
	if b.ok {
		end = b.max.Truncate(time.Second).Add(time.Second)
	}
	return end.Add(-defaultWindowSpan), end
}
