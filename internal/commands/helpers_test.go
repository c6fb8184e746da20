package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hay-kot/trellis/internal/core/task"
)

func TestSplitTags(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "empty", input: "", want: nil},
		{name: "whitespace only", input: "   ", want: nil},
		{name: "single", input: "backend", want: []string{"backend"}},
		{name: "multiple", input: "backend,frontend", want: []string{"backend", "frontend"}},
		{name: "trims spaces", input: " backend , frontend ", want: []string{"backend", "frontend"}},
		{name: "skips empty segments", input: "backend,,frontend,", want: []string{"backend", "frontend"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, splitTags(tt.input))
		})
	}
}

func TestMatchGlob(t *testing.T) {
	assert.True(t, matchGlob("front*", "frontend"))
	assert.True(t, matchGlob("frontend", "frontend"))
	assert.False(t, matchGlob("front*", "backend"))

	// invalid pattern falls back to literal comparison
	assert.True(t, matchGlob("[", "["))
	assert.False(t, matchGlob("[", "frontend"))
}

func TestExpandTagGlobs(t *testing.T) {
	tasks := []task.Task{
		{Tags: []string{"frontend", "urgent"}},
		{Tags: []string{"front-page"}},
		{Tags: []string{"backend"}},
	}

	t.Run("no patterns", func(t *testing.T) {
		assert.Nil(t, expandTagGlobs(tasks, nil))
	})

	t.Run("glob matches multiple tags", func(t *testing.T) {
		got := expandTagGlobs(tasks, []string{"front*"})
		assert.ElementsMatch(t, []string{"frontend", "front-page"}, got)
	})

	t.Run("literal match", func(t *testing.T) {
		got := expandTagGlobs(tasks, []string{"backend"})
		assert.Equal(t, []string{"backend"}, got)
	})

	t.Run("no tags match", func(t *testing.T) {
		assert.Empty(t, expandTagGlobs(tasks, []string{"nope*"}))
	})
}
