// Package booking contains the reservation core: the time-slot
// calculator, the table availability matcher, the reservation state
// machine and the table status controller. Everything here is pure
// computation over model values; persistence and HTTP concerns live in
// the repository and handler layers. The sentinel errors below allow
// handlers to translate failures into precise HTTP responses.
package booking

import "errors"

// ErrInvalidStateTransition is returned when a requested transition is
// not allowed from the reservation's current state. Handlers should
// translate this into an HTTP 409 response and leave the entity
// untouched.
var ErrInvalidStateTransition = errors.New("invalid state transition")

// ErrInvalidStatus is returned when a table status value is not one of
// the four enumerated states. Handlers should translate this into an
// HTTP 400 response.
var ErrInvalidStatus = errors.New("invalid table status")

// ErrNoCandidateTable is returned by helpers that require at least one
// eligible table. It is advisory rather than fatal: confirmation
// proceeds without an assignment and staff may assign manually later.
var ErrNoCandidateTable = errors.New("no candidate table")

// ErrTableUnsuitable is returned by manual assignment when the chosen
// table cannot seat the party or sits in the wrong area and the caller
// did not request an override.
var ErrTableUnsuitable = errors.New("table unsuitable for reservation")
