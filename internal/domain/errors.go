package domain

import "errors"

// Error kinds the handler maps to HTTP statuses. Each phase wraps its own
// failures into one of these before they reach the outer boundary.
var (
	ErrNoFiles      = errors.New("no files uploaded")
	ErrTooManyFiles = errors.New("too many files uploaded")
	ErrFileTooLarge = errors.New("file exceeds size limit")
	ErrStorage      = errors.New("storage failure")
	ErrCompletion   = errors.New("completion failure")
)
