package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hay-kot/trellis/internal/core/project"
)

// ProjectStore implements project.Store using SQLite.
type ProjectStore struct {
	db *DB
}

var _ project.Store = (*ProjectStore)(nil)

// NewProjectStore creates a new SQLite-backed project store.
func NewProjectStore(db *DB) *ProjectStore {
	return &ProjectStore{db: db}
}

// LoadAll returns the full project collection in stored order.
func (s *ProjectStore) LoadAll(ctx context.Context) ([]project.Project, error) {
	rows, err := s.db.conn.QueryContext(ctx, `
		SELECT id, name, description, is_main_project, is_completed, task_urls, date_created
		FROM projects ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("query projects: %w", err)
	}
	defer func() { _ = rows.Close() }()

	projects := []project.Project{}
	for rows.Next() {
		var (
			p        project.Project
			urlsJSON string
			created  int64
		)
		err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.IsMainProject,
			&p.IsCompleted, &urlsJSON, &created)
		if err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}

		p.DateCreated = time.Unix(0, created)
		if err := json.Unmarshal([]byte(urlsJSON), &p.TaskURLs); err != nil {
			return nil, fmt.Errorf("unmarshal task urls for project %s: %w", p.ID, err)
		}
		if p.TaskURLs == nil {
			p.TaskURLs = []string{}
		}

		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate projects: %w", err)
	}

	return projects, nil
}

// SaveAll replaces the stored collection inside one transaction.
func (s *ProjectStore) SaveAll(ctx context.Context, projects []project.Project) error {
	return s.db.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM projects`); err != nil {
			return fmt.Errorf("clear projects: %w", err)
		}

		for i, p := range projects {
			urls, err := json.Marshal(p.TaskURLs)
			if err != nil {
				return fmt.Errorf("marshal task urls for project %s: %w", p.ID, err)
			}

			_, err = tx.ExecContext(ctx, `
				INSERT INTO projects (id, name, description, is_main_project,
				                      is_completed, task_urls, date_created, position)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
				p.ID, p.Name, p.Description, p.IsMainProject, p.IsCompleted,
				string(urls), p.DateCreated.UnixNano(), i)
			if err != nil {
				return fmt.Errorf("insert project %s: %w", p.ID, err)
			}
		}

		return nil
	})
}
