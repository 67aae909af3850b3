// Package eta computes the derived service-duration estimate for a wizard
// step. One or more independently rendered selection groups funnel into a
// single canonical total.
package eta

import "fmt"

// Group identifies an independent selection group on a step.
type Group string

const (
	GroupService     Group = "service"
	GroupAddon       Group = "addon"
	GroupTireService Group = "tireService"
)

// Selection is one selectable item with its duration weight.
type Selection struct {
	ID              string
	Group           Group
	DurationMinutes int
	Checked         bool
}

// Estimate is the canonical derived value written into every duration output
// on the step.
type Estimate struct {
	TotalMinutes int
	// Hint is the human-readable helper text; empty when the total is 0,
	// which also means the hint element is hidden.
	Hint string
}

// Aggregate sums the duration weights of every checked selection across all
// groups. Recomputation always walks every group, not just the one that
// changed: selections live only in the current form document and cached sums
// are never trusted.
//
// Malformed weights have already been normalized to 0 by the markup parser;
// negative weights are clamped here so the total can never go below 0.
func Aggregate(groups ...[]Selection) Estimate {
	total := 0
	for _, group := range groups {
		for _, sel := range group {
			if !sel.Checked {
				continue
			}
			if sel.DurationMinutes > 0 {
				total += sel.DurationMinutes
			}
		}
	}

	est := Estimate{TotalMinutes: total}
	if total > 0 {
		est.Hint = fmt.Sprintf("Estimated total time: %d mins", total)
	}
	return est
}
