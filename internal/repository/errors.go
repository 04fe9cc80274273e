// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios. For
// example, ErrForbidden indicates that the current user is not
// authorized to operate on somebody else's reservation, while
// ErrConflict signals that an operation cannot proceed because of
// dependent records (e.g. deleting a package that reservations still
// reference) or because a table is already booked for the slot.
package repository

import "errors"

// ErrForbidden is returned when the caller attempts an operation
// on a resource they do not own. Handlers should translate this
// into an HTTP 403 response.
var ErrForbidden = errors.New("forbidden")

// ErrConflict is returned when a write cannot be performed because of
// conflicting state, such as deleting a package with reservations or
// confirming a reservation onto a table already booked for the same
// date and slot. Handlers should translate this into an HTTP 409
// response.
var ErrConflict = errors.New("conflict")

// ErrVersionConflict is returned when a state transition is attempted
// against a stale version of a reservation. The losing writer must
// re-fetch and retry; handlers translate this into an HTTP 409
// response so concurrent staff actions never silently overwrite each
// other.
var ErrVersionConflict = errors.New("version conflict")
