package port

import "github.com/flash-go/sdk/errors"

var (
	ErrPathNotFound = errors.New(errors.ErrNotFound, "path_not_found")
	ErrNotFound     = errors.New(errors.ErrNotFound, "not_found")
)
