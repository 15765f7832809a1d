package repositories

import "errors"

// ErrNotFound is returned when the requested record does not exist, or when
// it exists but is not visible to the caller (e.g. a task owned by somebody
// else). Handlers map it to 404.
var ErrNotFound = errors.New("record not found")
