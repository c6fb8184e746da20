package query

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hay-kot/trellis/internal/core/task"
)

// ref is a Thursday.
var ref = time.Date(2026, 1, 15, 14, 30, 0, 0, time.UTC)

func mkTask(t *testing.T, title string, mutate func(*task.Input)) task.Task {
	t.Helper()

	in := task.Input{Title: title}
	if mutate != nil {
		mutate(&in)
	}

	created, err := task.New(in, ref.Add(-48*time.Hour))
	require.NoError(t, err)
	return created
}

func titles(tasks []task.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.Title
	}
	return out
}

func TestFilter_EmptyCriteriaReturnsEverything(t *testing.T) {
	tasks := []task.Task{
		mkTask(t, "a", nil),
		mkTask(t, "b", nil),
	}

	got := Filter(tasks, Criteria{}, ref)
	assert.Equal(t, []string{"a", "b"}, titles(got))

	got = Filter(tasks, Criteria{DueDate: DueAll}, ref)
	assert.Equal(t, []string{"a", "b"}, titles(got))
}

func TestFilter_PreservesOrder(t *testing.T) {
	tasks := []task.Task{
		mkTask(t, "c", func(in *task.Input) { in.Tags = []string{"keep"} }),
		mkTask(t, "a", nil),
		mkTask(t, "b", func(in *task.Input) { in.Tags = []string{"keep"} }),
	}

	got := Filter(tasks, Criteria{Tags: []string{"keep"}}, ref)
	assert.Equal(t, []string{"c", "b"}, titles(got))
}

func TestFilter_StatusAndPriority(t *testing.T) {
	tasks := []task.Task{
		mkTask(t, "todo-high", func(in *task.Input) { in.Priority = task.PriorityHigh }),
		mkTask(t, "active", func(in *task.Input) { in.Status = task.StatusInProgress }),
		mkTask(t, "done", func(in *task.Input) { in.Status = task.StatusCompleted }),
	}

	got := Filter(tasks, Criteria{Statuses: []task.Status{task.StatusTodo, task.StatusInProgress}}, ref)
	assert.Equal(t, []string{"todo-high", "active"}, titles(got))

	got = Filter(tasks, Criteria{
		Statuses:   []task.Status{task.StatusTodo},
		Priorities: []task.Priority{task.PriorityHigh},
	}, ref)
	assert.Equal(t, []string{"todo-high"}, titles(got))
}

func TestFilter_SearchTextIsCaseInsensitive(t *testing.T) {
	tasks := []task.Task{
		mkTask(t, "Fix Login Bug", nil),
		mkTask(t, "other", func(in *task.Input) { in.Description = "touches the LOGIN flow" }),
		mkTask(t, "unrelated", nil),
	}

	got := Filter(tasks, Criteria{SearchText: "login"}, ref)
	assert.Equal(t, []string{"Fix Login Bug", "other"}, titles(got))
}

func TestFilter_DueWindows(t *testing.T) {
	day := func(offset int) string {
		return ref.AddDate(0, 0, offset).Format("2006-01-02")
	}

	tasks := []task.Task{
		mkTask(t, "overdue", func(in *task.Input) { in.DueDate = day(-2) }),
		mkTask(t, "overdue-done", func(in *task.Input) {
			in.DueDate = day(-2)
			in.Status = task.StatusCompleted
		}),
		mkTask(t, "today", func(in *task.Input) { in.DueDate = day(0) }),
		mkTask(t, "in-three-days", func(in *task.Input) { in.DueDate = day(3) }),
		mkTask(t, "next-week", func(in *task.Input) { in.DueDate = day(8) }),
		mkTask(t, "no-due", nil),
	}

	tests := []struct {
		name string
		rng  DueRange
		want []string
	}{
		{"today", DueToday, []string{"today"}},
		{"this week includes today", DueThisWeek, []string{"today", "in-three-days"}},
		{"overdue skips completed", DueOverdue, []string{"overdue"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(tasks, Criteria{DueDate: tt.rng}, ref)
			assert.Equal(t, tt.want, titles(got))
		})
	}
}

func TestFilter_CustomRangeIsInclusive(t *testing.T) {
	tasks := []task.Task{
		mkTask(t, "before", func(in *task.Input) { in.DueDate = "2026-01-09" }),
		mkTask(t, "start", func(in *task.Input) { in.DueDate = "2026-01-10" }),
		mkTask(t, "end", func(in *task.Input) { in.DueDate = "2026-01-20" }),
		mkTask(t, "after", func(in *task.Input) { in.DueDate = "2026-01-21" }),
	}

	got := Filter(tasks, Criteria{
		DueDate:     DueCustom,
		CustomStart: time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC),
		CustomEnd:   time.Date(2026, 1, 20, 23, 0, 0, 0, time.UTC),
	}, ref)

	assert.Equal(t, []string{"start", "end"}, titles(got))
}

func TestFilter_TasksWithoutDueDateNeverMatchWindows(t *testing.T) {
	tasks := []task.Task{mkTask(t, "floating", nil)}

	for _, rng := range []DueRange{DueToday, DueThisWeek, DueOverdue} {
		got := Filter(tasks, Criteria{DueDate: rng}, ref)
		assert.Empty(t, got, "window %s", rng)
	}
}
