// Package repository contains data access logic separated from HTTP
// handlers. This file defines sentinel error values shared across the
// repositories so handlers can translate failures into the right HTTP
// status without inspecting driver errors.
package repository

import "errors"

// ErrEmailExists is returned when registering with an email that is
// already taken. Handlers translate this into a validation error (400),
// not a server error.
var ErrEmailExists = errors.New("email already registered")

// ErrUserNotFound is returned when a user row cannot be found.
var ErrUserNotFound = errors.New("user not found")

// ErrContentNotFound is returned when a content row cannot be found.
// Handlers translate this into a 404 response.
var ErrContentNotFound = errors.New("content not found")
