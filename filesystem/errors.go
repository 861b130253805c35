package filesystem

import "errors"

var (
	ErrNotFound  = errors.New("node not found")
	ErrNotFolder = errors.New("node is not a folder")
)
