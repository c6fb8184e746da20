package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hay-kot/trellis/internal/core/task"
)

// TaskStore implements task.Store using SQLite.
type TaskStore struct {
	db *DB
}

var _ task.Store = (*TaskStore)(nil)

// NewTaskStore creates a new SQLite-backed task store.
func NewTaskStore(db *DB) *TaskStore {
	return &TaskStore{db: db}
}

// LoadAll returns the full task collection in stored order.
func (s *TaskStore) LoadAll(ctx context.Context) ([]task.Task, error) {
	rows, err := s.db.conn.QueryContext(ctx, `
		SELECT id, project_id, title, description, status, due_date, priority,
		       tags, time_estimate, impact, urgency, date_created, date_completed, url
		FROM tasks ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("query tasks: %w", err)
	}
	defer func() { _ = rows.Close() }()

	tasks := []task.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tasks: %w", err)
	}

	return tasks, nil
}

// SaveAll replaces the stored collection inside one transaction.
func (s *TaskStore) SaveAll(ctx context.Context, tasks []task.Task) error {
	return s.db.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM tasks`); err != nil {
			return fmt.Errorf("clear tasks: %w", err)
		}

		for i, t := range tasks {
			tags, err := json.Marshal(t.Tags)
			if err != nil {
				return fmt.Errorf("marshal tags for task %s: %w", t.ID, err)
			}

			var completed sql.NullInt64
			if t.DateCompleted != nil {
				completed = sql.NullInt64{Int64: t.DateCompleted.UnixNano(), Valid: true}
			}

			_, err = tx.ExecContext(ctx, `
				INSERT INTO tasks (id, project_id, title, description, status, due_date,
				                   priority, tags, time_estimate, impact, urgency,
				                   date_created, date_completed, url, position)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				t.ID, t.ProjectID, t.Title, t.Description, string(t.Status), t.DueDate,
				string(t.Priority), string(tags), t.TimeEstimate, string(t.Impact),
				string(t.Urgency), t.DateCreated.UnixNano(), completed, t.URL, i)
			if err != nil {
				return fmt.Errorf("insert task %s: %w", t.ID, err)
			}
		}

		return nil
	})
}

func scanTask(rows *sql.Rows) (task.Task, error) {
	var (
		t         task.Task
		status    string
		priority  string
		impact    string
		urgency   string
		tagsJSON  string
		created   int64
		completed sql.NullInt64
	)

	err := rows.Scan(&t.ID, &t.ProjectID, &t.Title, &t.Description, &status,
		&t.DueDate, &priority, &tagsJSON, &t.TimeEstimate, &impact, &urgency,
		&created, &completed, &t.URL)
	if err != nil {
		return task.Task{}, fmt.Errorf("scan task: %w", err)
	}

	t.Status = task.Status(status)
	t.Priority = task.Priority(priority)
	t.Impact = task.Impact(impact)
	t.Urgency = task.Urgency(urgency)
	t.DateCreated = time.Unix(0, created)

	if completed.Valid {
		done := time.Unix(0, completed.Int64)
		t.DateCompleted = &done
	}

	if err := json.Unmarshal([]byte(tagsJSON), &t.Tags); err != nil {
		return task.Task{}, fmt.Errorf("unmarshal tags for task %s: %w", t.ID, err)
	}
	if t.Tags == nil {
		t.Tags = []string{}
	}

	return t, nil
}
