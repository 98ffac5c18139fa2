// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios. For
// example, ErrOutOfStock indicates that an order requested more units
// of a sneaker than the catalog currently holds, while ErrNotFound
// signals that the addressed entity does not exist.
package repository

import "errors"

// ErrNotFound is returned when the addressed entity does not exist.
// Handlers should translate this into an HTTP 404 response.
var ErrNotFound = errors.New("not found")

// ErrUsernameExists is returned when registration collides with an
// existing username. Handlers should translate this into HTTP 409.
var ErrUsernameExists = errors.New("username already exists")

// ErrEmailExists is returned when registration collides with an
// existing email address. Handlers should translate this into HTTP 409.
var ErrEmailExists = errors.New("email already exists")

// ErrUnknownSneaker is returned during order placement when a line item
// references a sneaker that does not exist. Handlers should translate
// this into an HTTP 400 response.
var ErrUnknownSneaker = errors.New("unknown sneaker")

// ErrOutOfStock is returned during order placement when a line item
// requests more units than the catalog holds. Handlers should
// translate this into an HTTP 400 response.
var ErrOutOfStock = errors.New("insufficient stock")
