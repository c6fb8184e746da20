package task

import "time"

// Patch holds a partial update. Nil fields are left unchanged.
// ID, DateCreated, and DateCompleted are never patched directly:
// the first two are immutable and the last is derived from status
// transitions by Apply.
type Patch struct {
	ProjectID    *string   `json:"projectId"`
	Title        *string   `json:"title"`
	Description  *string   `json:"description"`
	Status       *Status   `json:"status"`
	DueDate      *string   `json:"dueDate"`
	Priority     *Priority `json:"priority"`
	Tags         *[]string `json:"tags"`
	TimeEstimate *int      `json:"timeEstimate"`
	Impact       *Impact   `json:"impact"`
	Urgency      *Urgency  `json:"urgency"`
	URL          *string   `json:"url"`
}

// Apply merges the patch into t and returns the result. When the patch moves
// the task into Completed, DateCompleted is stamped with now; when it moves
// the task out of Completed, DateCompleted is cleared. The merged task is not
// validated here; callers validate before persisting.
func (p Patch) Apply(t Task, now time.Time) Task {
	wasCompleted := t.Completed()

	if p.ProjectID != nil {
		t.ProjectID = *p.ProjectID
	}
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	if p.DueDate != nil {
		t.DueDate = *p.DueDate
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.Tags != nil {
		t.Tags = *p.Tags
	}
	if p.TimeEstimate != nil {
		t.TimeEstimate = *p.TimeEstimate
	}
	if p.Impact != nil {
		t.Impact = *p.Impact
	}
	if p.Urgency != nil {
		t.Urgency = *p.Urgency
	}
	if p.URL != nil {
		t.URL = *p.URL
	}

	switch {
	case t.Completed() && !wasCompleted:
		completed := now
		t.DateCompleted = &completed
	case !t.Completed():
		t.DateCompleted = nil
	}

	return t
}
