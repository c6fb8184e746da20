package query

import (
	"time"

	"github.com/hay-kot/trellis/internal/core/task"
)

// Stats summarizes a task collection.
type Stats struct {
	TotalCount      int     `json:"totalCount"`
	TodoCount       int     `json:"todoCount"`
	InProgressCount int     `json:"inProgressCount"`
	CompletedCount  int     `json:"completedCount"`
	// CompletionRate is completed/total as a percentage, 0 for an empty
	// collection.
	CompletionRate float64 `json:"completionRate"`
}

// ComputeStats counts tasks by status and derives the completion rate.
func ComputeStats(tasks []task.Task) Stats {
	s := Stats{TotalCount: len(tasks)}
	for _, t := range tasks {
		switch t.Status {
		case task.StatusTodo:
			s.TodoCount++
		case task.StatusInProgress:
			s.InProgressCount++
		case task.StatusCompleted:
			s.CompletedCount++
		}
	}
	if s.TotalCount > 0 {
		s.CompletionRate = float64(s.CompletedCount) / float64(s.TotalCount) * 100
	}
	return s
}

// ProductivityScore derives a 0-100 score weighting completion 70% and
// in-progress momentum 30%. Returns 0 for an empty collection.
func ProductivityScore(tasks []task.Task) float64 {
	if len(tasks) == 0 {
		return 0
	}
	s := ComputeStats(tasks)
	score := s.CompletionRate*0.7 + float64(s.InProgressCount)/float64(s.TotalCount)*30
	if score > 100 {
		score = 100
	}
	return score
}

// AverageCompletionDays is the mean creation-to-completion span in days over
// completed tasks, rounding each span up to a whole day. Returns 0 when no
// completed tasks exist.
func AverageCompletionDays(tasks []task.Task) float64 {
	var total, count int
	for _, t := range tasks {
		if !t.Completed() || t.DateCompleted == nil {
			continue
		}
		span := t.DateCompleted.Sub(t.DateCreated)
		if span < 0 {
			span = -span
		}
		days := int(span / (24 * time.Hour))
		if span%(24*time.Hour) != 0 {
			days++
		}
		total += days
		count++
	}
	if count == 0 {
		return 0
	}
	return float64(total) / float64(count)
}

// DailyBucket counts completions and additions on a single calendar day.
type DailyBucket struct {
	Date           string `json:"date"` // YYYY-MM-DD
	CompletedCount int    `json:"completedCount"`
	AddedCount     int    `json:"addedCount"`
}

// DailyBuckets buckets task activity by calendar day for the `days` most
// recent days ending at ref, ordered oldest first. Day boundaries are taken
// in ref's location.
func DailyBuckets(tasks []task.Task, days int, ref time.Time) []DailyBucket {
	if days <= 0 {
		return []DailyBucket{}
	}

	buckets := make([]DailyBucket, days)
	index := make(map[string]*DailyBucket, days)
	for i := range days {
		date := ref.AddDate(0, 0, i-days+1).Format("2006-01-02")
		buckets[i] = DailyBucket{Date: date}
		index[date] = &buckets[i]
	}

	for _, t := range tasks {
		if b, ok := index[t.DateCreated.In(ref.Location()).Format("2006-01-02")]; ok {
			b.AddedCount++
		}
		if t.DateCompleted != nil {
			if b, ok := index[t.DateCompleted.In(ref.Location()).Format("2006-01-02")]; ok {
				b.CompletedCount++
			}
		}
	}

	return buckets
}
