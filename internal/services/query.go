package services

import (
	"strconv"
	"strings"

	"tugas/internal/repositories"
)

// sortColumns maps the sort keys the API accepts to storage column names.
// Anything else leaves the listing in store order.
var sortColumns = map[string]string{
	"createdAt":   "created_at",
	"updatedAt":   "updated_at",
	"description": "description",
	"completed":   "completed",
}

// ParseTaskListOptions turns the raw query parameters of GET /tasks into
// listing options. Parsing is deliberately permissive: a limit or skip that
// is not a number means "no bound", and an unrecognized sort direction means
// ascending.
func ParseTaskListOptions(completed, sortBy, limit, skip string) repositories.TaskListOptions {
	var opts repositories.TaskListOptions

	if completed != "" {
		value := completed == "true"
		opts.Completed = &value
	}

	if sortBy != "" {
		parts := strings.SplitN(sortBy, ":", 2)
		if column, ok := sortColumns[parts[0]]; ok {
			opts.SortField = column
			opts.SortDesc = len(parts) == 2 && parts[1] == "desc"
		}
	}

	opts.Limit = parseOptionalInt(limit)
	opts.Skip = parseOptionalInt(skip)
	return opts
}

// parseOptionalInt returns nil for anything that is not a non-negative
// integer, so malformed bounds silently fall back to "unbounded".
func parseOptionalInt(s string) *int {
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return nil
	}
	return &n
}
