package query

import (
	"sort"

	"github.com/hay-kot/trellis/internal/core/task"
)

// Order selects a task sort order.
type Order string

const (
	// OrderDefault sorts by creation time ascending.
	OrderDefault Order = "default"
	// OrderDueDate sorts by due date ascending; tasks without a due date
	// sort last.
	OrderDueDate Order = "dueDate"
	// OrderPriority sorts high before medium before low.
	OrderPriority Order = "priority"
	// OrderCreatedAt sorts by creation time ascending.
	OrderCreatedAt Order = "createdAt"
)

var priorityRank = map[task.Priority]int{
	task.PriorityHigh:   0,
	task.PriorityMedium: 1,
	task.PriorityLow:    2,
}

// Sort returns a sorted copy of tasks. The sort is stable: tasks that compare
// equal keep their original relative order.
func Sort(tasks []task.Task, order Order) []task.Task {
	out := make([]task.Task, len(tasks))
	copy(out, tasks)

	switch order {
	case OrderPriority:
		sort.SliceStable(out, func(i, j int) bool {
			return priorityRank[out[i].Priority] < priorityRank[out[j].Priority]
		})
	case OrderDueDate:
		sort.SliceStable(out, func(i, j int) bool {
			di, iok := out[i].DueOn()
			dj, jok := out[j].DueOn()
			if iok != jok {
				return iok
			}
			if !iok {
				return false
			}
			return di.Before(dj)
		})
	case OrderCreatedAt, OrderDefault, "":
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].DateCreated.Before(out[j].DateCreated)
		})
	}

	return out
}
