// Package util contains small internal helpers shared across packages.
package util

import "github.com/google/uuid"

// NewID returns a new random run/experiment identifier.
func NewID() string { return uuid.NewString() }
