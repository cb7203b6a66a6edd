package core

import "errors"

// ErrNotFound is returned by stores when the requested entry does not exist.
var ErrNotFound = errors.New("not found")

// ErrNotImplemented is returned by defaulted must-override methods that a
// concrete implementation failed to supply.
var ErrNotImplemented = errors.New("not implemented")
