// Package project defines the project domain model and its persistence port.
package project

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hay-kot/criterio"

	"github.com/hay-kot/trellis/internal/core/validate"
)

// ErrNotFound is returned when a project does not exist.
var ErrNotFound = errors.New("project not found")

// Project groups related tasks and carries its own reference links.
type Project struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description,omitempty"`
	IsMainProject bool      `json:"isMainProject"`
	IsCompleted   bool      `json:"isCompleted"`
	TaskURLs      []string  `json:"taskUrls"`
	DateCreated   time.Time `json:"dateCreated"`
}

// Input holds caller-supplied fields for creating a project.
type Input struct {
	Name          string `json:"name"`
	Description   string `json:"description"`
	IsMainProject bool   `json:"isMainProject"`
}

// New constructs a Project from caller input, assigning the ID and creation
// time. Returns a criterio field error when the name is blank.
func New(in Input, now time.Time) (Project, error) {
	p := Project{
		ID:            uuid.NewString(),
		Name:          strings.TrimSpace(in.Name),
		Description:   in.Description,
		IsMainProject: in.IsMainProject,
		TaskURLs:      []string{},
		DateCreated:   now,
	}

	if err := p.Validate(); err != nil {
		return Project{}, err
	}

	return p, nil
}

// Validate checks required fields.
func (p Project) Validate() error {
	var errs criterio.FieldErrorsBuilder

	if err := validate.Required(p.Name); err != nil {
		errs = errs.Append("name", err)
	}

	return errs.ToError()
}

// Patch holds a partial update. Nil fields are left unchanged.
type Patch struct {
	Name          *string `json:"name"`
	Description   *string `json:"description"`
	IsMainProject *bool   `json:"isMainProject"`
	IsCompleted   *bool   `json:"isCompleted"`
}

// Apply merges the patch into p and returns the result.
func (pt Patch) Apply(p Project) Project {
	if pt.Name != nil {
		p.Name = *pt.Name
	}
	if pt.Description != nil {
		p.Description = *pt.Description
	}
	if pt.IsMainProject != nil {
		p.IsMainProject = *pt.IsMainProject
	}
	if pt.IsCompleted != nil {
		p.IsCompleted = *pt.IsCompleted
	}
	return p
}
