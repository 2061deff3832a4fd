package repositories

import "errors"

// ErrNotFound is returned by repositories when a lookup matches no document.
var ErrNotFound = errors.New("record not found")
