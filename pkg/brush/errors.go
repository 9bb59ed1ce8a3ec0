package brush

import "errors"

var (
	// ErrNoStructureSelected is returned when a stroke is attempted
	// without an active structure; the interaction is a no-op.
	ErrNoStructureSelected = errors.New("no structure selected")

	// ErrInsufficientGeometry is returned when a stroke yields fewer
	// than 3 usable patient-space points. The contour store is left
	// unchanged; the user redraws.
	ErrInsufficientGeometry = errors.New("stroke has insufficient geometry")

	// ErrStrokeInFlight is returned when a stroke is started while a
	// previous one has not finished committing. The state machine
	// normally makes this unreachable.
	ErrStrokeInFlight = errors.New("another stroke is in flight")
)
