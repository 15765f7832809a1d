package services_test

import (
	"testing"

	"tugas/internal/services"

	"github.com/stretchr/testify/assert"
)

func TestParseTaskListOptions(t *testing.T) {
	// Empty query means no filter, no sort, no bounds
	opts := services.ParseTaskListOptions("", "", "", "")
	assert.Nil(t, opts.Completed)
	assert.Empty(t, opts.SortField)
	assert.Nil(t, opts.Limit)
	assert.Nil(t, opts.Skip)

	// completed is an exact-match boolean; any value other than "true" is false
	opts = services.ParseTaskListOptions("true", "", "", "")
	assert.NotNil(t, opts.Completed)
	assert.True(t, *opts.Completed)

	opts = services.ParseTaskListOptions("false", "", "", "")
	assert.NotNil(t, opts.Completed)
	assert.False(t, *opts.Completed)

	opts = services.ParseTaskListOptions("yes", "", "", "")
	assert.NotNil(t, opts.Completed)
	assert.False(t, *opts.Completed)

	// sortBy maps known fields and directions; unknown direction means asc
	opts = services.ParseTaskListOptions("", "createdAt:desc", "", "")
	assert.Equal(t, "created_at", opts.SortField)
	assert.True(t, opts.SortDesc)

	opts = services.ParseTaskListOptions("", "description:asc", "", "")
	assert.Equal(t, "description", opts.SortField)
	assert.False(t, opts.SortDesc)

	opts = services.ParseTaskListOptions("", "updatedAt:sideways", "", "")
	assert.Equal(t, "updated_at", opts.SortField)
	assert.False(t, opts.SortDesc)

	opts = services.ParseTaskListOptions("", "completed", "", "")
	assert.Equal(t, "completed", opts.SortField)
	assert.False(t, opts.SortDesc)

	// Unknown sort field leaves the listing unsorted
	opts = services.ParseTaskListOptions("", "password:desc", "", "")
	assert.Empty(t, opts.SortField)

	// Numeric bounds parse; anything else means unbounded
	opts = services.ParseTaskListOptions("", "", "5", "10")
	assert.NotNil(t, opts.Limit)
	assert.Equal(t, 5, *opts.Limit)
	assert.NotNil(t, opts.Skip)
	assert.Equal(t, 10, *opts.Skip)

	opts = services.ParseTaskListOptions("", "", "lots", "-3")
	assert.Nil(t, opts.Limit)
	assert.Nil(t, opts.Skip)
}
