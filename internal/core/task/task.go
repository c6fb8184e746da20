// Package task defines the task domain model and its persistence port.
package task

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hay-kot/criterio"

	"github.com/hay-kot/trellis/internal/core/validate"
)

// ErrNotFound is returned when a task does not exist.
var ErrNotFound = errors.New("task not found")

// Status represents the lifecycle state of a task.
//
// The wire values are display strings, so existing tasks.json
// collections load without migration.
type Status string

const (
	StatusTodo       Status = "To Do"
	StatusInProgress Status = "In Progress"
	StatusCompleted  Status = "Completed"
)

// Priority represents how important a task is.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Impact represents the expected payoff of completing a task.
type Impact string

const (
	ImpactLow    Impact = "low"
	ImpactMedium Impact = "medium"
	ImpactHigh   Impact = "high"
)

// Urgency represents how time-sensitive a task is.
type Urgency string

const (
	UrgencyLow    Urgency = "low"
	UrgencyNormal Urgency = "normal"
	UrgencyUrgent Urgency = "urgent"
)

// Task is a single unit of work, optionally attached to a project.
type Task struct {
	ID            string     `json:"id"`
	ProjectID     string     `json:"projectId"`
	Title         string     `json:"title"`
	Description   string     `json:"description,omitempty"`
	Status        Status     `json:"status"`
	DueDate       string     `json:"dueDate,omitempty"` // YYYY-MM-DD, empty = no due date
	Priority      Priority   `json:"priority"`
	Tags          []string   `json:"tags"`
	TimeEstimate  int        `json:"timeEstimate"` // minutes
	Impact        Impact     `json:"impact"`
	Urgency       Urgency    `json:"urgency"`
	DateCreated   time.Time  `json:"dateCreated"`
	DateCompleted *time.Time `json:"dateCompleted,omitempty"`
	URL           string     `json:"url,omitempty"`
}

// Completed reports whether the task has been completed.
func (t Task) Completed() bool {
	return t.Status == StatusCompleted
}

// HasTag reports whether the task carries the given tag.
func (t Task) HasTag(tag string) bool {
	for _, have := range t.Tags {
		if have == tag {
			return true
		}
	}
	return false
}

// DueOn returns the parsed due date. The second return is false when the
// task has no due date or the stored value is malformed.
func (t Task) DueOn() (time.Time, bool) {
	if t.DueDate == "" {
		return time.Time{}, false
	}
	d, err := time.Parse("2006-01-02", t.DueDate)
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}

// Input holds caller-supplied fields for creating a task.
// Zero values are replaced with defaults by New.
type Input struct {
	ProjectID    string   `json:"projectId"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Status       Status   `json:"status"`
	DueDate      string   `json:"dueDate"`
	Priority     Priority `json:"priority"`
	Tags         []string `json:"tags"`
	TimeEstimate *int     `json:"timeEstimate"`
	Impact       Impact   `json:"impact"`
	Urgency      Urgency  `json:"urgency"`
	URL          string   `json:"url"`
}

// New constructs a Task from caller input, assigning the ID and creation
// time and filling defaulted fields. Returns criterio field errors when the
// title is blank or an enumerated field holds an unknown value.
func New(in Input, now time.Time) (Task, error) {
	t := Task{
		ID:           uuid.NewString(),
		ProjectID:    in.ProjectID,
		Title:        strings.TrimSpace(in.Title),
		Description:  in.Description,
		Status:       in.Status,
		DueDate:      in.DueDate,
		Priority:     in.Priority,
		Tags:         in.Tags,
		TimeEstimate: 60,
		Impact:       in.Impact,
		Urgency:      in.Urgency,
		DateCreated:  now,
		URL:          in.URL,
	}

	if t.Status == "" {
		t.Status = StatusTodo
	}
	if t.Priority == "" {
		t.Priority = PriorityMedium
	}
	if t.Impact == "" {
		t.Impact = ImpactMedium
	}
	if t.Urgency == "" {
		t.Urgency = UrgencyNormal
	}
	if t.Tags == nil {
		t.Tags = []string{}
	}
	if in.TimeEstimate != nil {
		t.TimeEstimate = *in.TimeEstimate
	}

	if t.Status == StatusCompleted {
		completed := now
		t.DateCompleted = &completed
	}

	if err := t.Validate(); err != nil {
		return Task{}, err
	}

	return t, nil
}

// Validate checks required fields and enum membership.
func (t Task) Validate() error {
	var errs criterio.FieldErrorsBuilder

	if err := validate.Required(t.Title); err != nil {
		errs = errs.Append("title", err)
	}

	switch t.Status {
	case StatusTodo, StatusInProgress, StatusCompleted:
	default:
		errs = errs.Append("status", fmt.Errorf("unknown status %q", t.Status))
	}

	switch t.Priority {
	case PriorityLow, PriorityMedium, PriorityHigh:
	default:
		errs = errs.Append("priority", fmt.Errorf("unknown priority %q", t.Priority))
	}

	switch t.Impact {
	case ImpactLow, ImpactMedium, ImpactHigh:
	default:
		errs = errs.Append("impact", fmt.Errorf("unknown impact %q", t.Impact))
	}

	switch t.Urgency {
	case UrgencyLow, UrgencyNormal, UrgencyUrgent:
	default:
		errs = errs.Append("urgency", fmt.Errorf("unknown urgency %q", t.Urgency))
	}

	if t.TimeEstimate < 0 {
		errs = errs.Append("timeEstimate", fmt.Errorf("must be non-negative, got %d", t.TimeEstimate))
	}

	if err := validate.Date(t.DueDate); err != nil {
		errs = errs.Append("dueDate", err)
	}

	return errs.ToError()
}
