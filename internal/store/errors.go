package store

import "errors"

// Sentinel errors returned by store operations. The service layer maps
// these to the coded error taxonomy.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
)
