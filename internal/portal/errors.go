package portal

import "errors"

var (
	// ErrNotAuthorized means the caller's role or tenant does not permit
	// the requested operation. No partial data accompanies it.
	ErrNotAuthorized = errors.New("portal: not authorized")

	// ErrNotFound marks a write aimed at an id that does not exist.
	ErrNotFound = errors.New("portal: not found")

	// ErrInvalidInput marks a value outside the closed enums.
	ErrInvalidInput = errors.New("portal: invalid input")

	// ErrStatusImmutable rejects status changes smuggled through the
	// generic update path; transitions go through the status operations
	// so the derived log and audit entries cannot be skipped.
	ErrStatusImmutable = errors.New("portal: status cannot be changed via update")
)
