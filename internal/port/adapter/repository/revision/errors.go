package port

import "github.com/flash-go/sdk/errors"

var (
	ErrNotFound = errors.New(errors.ErrNotFound, "not_found")
)
