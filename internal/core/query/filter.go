// Package query provides pure filter, sort, and aggregation functions over
// task collections. Every view (CLI lists, TUI, HTTP stats endpoints, briefs)
// goes through this package so the formulas exist exactly once.
//
// Nothing here mutates its inputs or reads the wall clock; callers pass an
// explicit reference time where date math is needed.
package query

import (
	"strings"
	"time"

	"github.com/hay-kot/trellis/internal/core/task"
)

// DueRange selects a due-date window for filtering.
type DueRange string

const (
	DueAll      DueRange = "all"
	DueToday    DueRange = "today"
	DueThisWeek DueRange = "this_week"
	DueOverdue  DueRange = "overdue"
	DueCustom   DueRange = "custom"
)

// Criteria describes a task filter. Each populated criterion is applied as an
// AND; within a criterion, membership is OR. The zero value matches everything.
type Criteria struct {
	Statuses   []task.Status
	Priorities []task.Priority
	Tags       []string
	Impacts    []task.Impact
	Urgencies  []task.Urgency

	// SearchText matches case-insensitively against title or description.
	SearchText string

	// DueDate selects a window relative to the reference time passed to
	// Filter. DueCustom uses the inclusive [CustomStart, CustomEnd] range.
	DueDate     DueRange
	CustomStart time.Time
	CustomEnd   time.Time
}

// Empty reports whether the criteria imposes no restriction.
func (c Criteria) Empty() bool {
	return len(c.Statuses) == 0 &&
		len(c.Priorities) == 0 &&
		len(c.Tags) == 0 &&
		len(c.Impacts) == 0 &&
		len(c.Urgencies) == 0 &&
		c.SearchText == "" &&
		(c.DueDate == "" || c.DueDate == DueAll)
}

// Filter returns the tasks matching the criteria, preserving input order.
// The reference time anchors the relative due-date windows.
func Filter(tasks []task.Task, c Criteria, ref time.Time) []task.Task {
	if c.Empty() {
		return tasks
	}

	out := make([]task.Task, 0, len(tasks))
	for _, t := range tasks {
		if c.matches(t, ref) {
			out = append(out, t)
		}
	}
	return out
}

func (c Criteria) matches(t task.Task, ref time.Time) bool {
	if len(c.Statuses) > 0 && !containsStatus(c.Statuses, t.Status) {
		return false
	}
	if len(c.Priorities) > 0 && !containsPriority(c.Priorities, t.Priority) {
		return false
	}
	if len(c.Impacts) > 0 && !containsImpact(c.Impacts, t.Impact) {
		return false
	}
	if len(c.Urgencies) > 0 && !containsUrgency(c.Urgencies, t.Urgency) {
		return false
	}
	if len(c.Tags) > 0 && !hasAnyTag(t, c.Tags) {
		return false
	}
	if c.SearchText != "" {
		needle := strings.ToLower(c.SearchText)
		if !strings.Contains(strings.ToLower(t.Title), needle) &&
			!strings.Contains(strings.ToLower(t.Description), needle) {
			return false
		}
	}
	return c.matchesDue(t, ref)
}

func (c Criteria) matchesDue(t task.Task, ref time.Time) bool {
	if c.DueDate == "" || c.DueDate == DueAll {
		return true
	}

	due, ok := t.DueOn()
	if !ok {
		// Tasks without a due date never match a relative window.
		return false
	}

	today := startOfDay(ref)
	switch c.DueDate {
	case DueToday:
		return due.Equal(today)
	case DueThisWeek:
		return !due.Before(today) && due.Before(today.AddDate(0, 0, 7))
	case DueOverdue:
		return due.Before(today) && !t.Completed()
	case DueCustom:
		start := startOfDay(c.CustomStart)
		end := startOfDay(c.CustomEnd)
		return !due.Before(start) && !due.After(end)
	default:
		return true
	}
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func containsStatus(set []task.Status, v task.Status) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

func containsPriority(set []task.Priority, v task.Priority) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

func containsImpact(set []task.Impact, v task.Impact) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

func containsUrgency(set []task.Urgency, v task.Urgency) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

func hasAnyTag(t task.Task, tags []string) bool {
	for _, tag := range tags {
		if t.HasTag(tag) {
			return true
		}
	}
	return false
}
