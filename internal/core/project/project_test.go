package project

import (
	"testing"
	"time"

	"github.com/hay-kot/criterio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)

func TestNew(t *testing.T) {
	created, err := New(Input{Name: "  Website Redesign  ", Description: "q1 push", IsMainProject: true}, testNow)
	require.NoError(t, err)

	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Website Redesign", created.Name)
	assert.Equal(t, "q1 push", created.Description)
	assert.True(t, created.IsMainProject)
	assert.False(t, created.IsCompleted)
	assert.NotNil(t, created.TaskURLs)
	assert.Empty(t, created.TaskURLs)
	assert.Equal(t, testNow, created.DateCreated)
}

func TestNew_BlankName(t *testing.T) {
	_, err := New(Input{Name: "   "}, testNow)

	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	require.Len(t, fieldErrs, 1)
	assert.Equal(t, "name", fieldErrs[0].Field)
}

func TestPatchApply(t *testing.T) {
	original, err := New(Input{Name: "Original"}, testNow)
	require.NoError(t, err)

	name := "Renamed"
	completed := true
	merged := Patch{Name: &name, IsCompleted: &completed}.Apply(original)

	assert.Equal(t, "Renamed", merged.Name)
	assert.True(t, merged.IsCompleted)
	assert.Equal(t, original.ID, merged.ID)
	assert.Equal(t, original.Description, merged.Description)

	untouched := Patch{}.Apply(original)
	assert.Equal(t, original, untouched)
}
