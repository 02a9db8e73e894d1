package repository

import "errors"

// ErrEmailExists is returned when a registration hits the unique email
// constraint on users or vendors. Handlers translate this into HTTP 400.
var ErrEmailExists = errors.New("email already exists")

// ErrProductNotFound is returned when a product row is absent, or when it
// exists but is not owned by the calling vendor. Handlers translate this
// into HTTP 404 without revealing which of the two it was.
var ErrProductNotFound = errors.New("product not found")
