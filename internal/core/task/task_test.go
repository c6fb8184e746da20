package task

import (
	"testing"
	"time"

	"github.com/hay-kot/criterio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)

func TestNew_Defaults(t *testing.T) {
	created, err := New(Input{Title: "write report"}, testNow)
	require.NoError(t, err)

	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "write report", created.Title)
	assert.Equal(t, StatusTodo, created.Status)
	assert.Equal(t, PriorityMedium, created.Priority)
	assert.Equal(t, ImpactMedium, created.Impact)
	assert.Equal(t, UrgencyNormal, created.Urgency)
	assert.Equal(t, 60, created.TimeEstimate)
	assert.Equal(t, testNow, created.DateCreated)
	assert.Nil(t, created.DateCompleted)
	assert.NotNil(t, created.Tags)
	assert.Empty(t, created.Tags)
}

func TestNew_ExplicitFields(t *testing.T) {
	estimate := 30
	created, err := New(Input{
		Title:        "  review PR  ",
		ProjectID:    "p1",
		Status:       StatusInProgress,
		Priority:     PriorityHigh,
		Impact:       ImpactLow,
		Urgency:      UrgencyUrgent,
		DueDate:      "2026-02-01",
		Tags:         []string{"work"},
		TimeEstimate: &estimate,
	}, testNow)
	require.NoError(t, err)

	assert.Equal(t, "review PR", created.Title)
	assert.Equal(t, "p1", created.ProjectID)
	assert.Equal(t, StatusInProgress, created.Status)
	assert.Equal(t, PriorityHigh, created.Priority)
	assert.Equal(t, 30, created.TimeEstimate)
	assert.Equal(t, "2026-02-01", created.DueDate)
}

func TestNew_CreatedCompletedStampsCompletionTime(t *testing.T) {
	created, err := New(Input{Title: "done already", Status: StatusCompleted}, testNow)
	require.NoError(t, err)

	require.NotNil(t, created.DateCompleted)
	assert.Equal(t, testNow, *created.DateCompleted)
}

func TestNew_ValidationErrors(t *testing.T) {
	tests := []struct {
		name  string
		input Input
		field string
	}{
		{"blank title", Input{Title: "   "}, "title"},
		{"unknown status", Input{Title: "x", Status: "Pending"}, "status"},
		{"unknown priority", Input{Title: "x", Priority: "critical"}, "priority"},
		{"unknown impact", Input{Title: "x", Impact: "huge"}, "impact"},
		{"unknown urgency", Input{Title: "x", Urgency: "asap"}, "urgency"},
		{"malformed due date", Input{Title: "x", DueDate: "tomorrow"}, "dueDate"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.input, testNow)

			var fieldErrs criterio.FieldErrors
			require.ErrorAs(t, err, &fieldErrs)
			require.Len(t, fieldErrs, 1)
			assert.Equal(t, tt.field, fieldErrs[0].Field)
		})
	}
}

func TestValidate_NegativeTimeEstimate(t *testing.T) {
	estimate := -5
	_, err := New(Input{Title: "x", TimeEstimate: &estimate}, testNow)

	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Equal(t, "timeEstimate", fieldErrs[0].Field)
}

func TestDueOn(t *testing.T) {
	withDue := Task{DueDate: "2026-03-01"}
	due, ok := withDue.DueOn()
	require.True(t, ok)
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), due)

	noDue := Task{}
	_, ok = noDue.DueOn()
	assert.False(t, ok)

	malformed := Task{DueDate: "someday"}
	_, ok = malformed.DueOn()
	assert.False(t, ok)
}

func TestHasTag(t *testing.T) {
	task := Task{Tags: []string{"work", "urgent"}}
	assert.True(t, task.HasTag("work"))
	assert.False(t, task.HasTag("home"))
	assert.False(t, Task{}.HasTag("work"))
}
