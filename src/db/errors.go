package db

import "errors"

// ErrNotFound covers both a missing record and a record owned by another
// user. The two cases are deliberately indistinguishable to callers.
var ErrNotFound = errors.New("not found")
