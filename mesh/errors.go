package mesh

import "errors"

var (
	// ErrInvalidVertex reports a vertex reference outside the arena.
	ErrInvalidVertex = errors.New("mesh: vertex reference out of range")
	// ErrDuplicateVertex reports a cube using the same vertex twice.
	ErrDuplicateVertex = errors.New("mesh: cube corners must be distinct")
	// ErrInvalidCube reports a cube reference outside the arena.
	ErrInvalidCube = errors.New("mesh: cube reference out of range")
	// ErrOwnerMismatch reports vertex owner lists that disagree with cube
	// membership, usually because Validate was not run after an edit.
	ErrOwnerMismatch = errors.New("mesh: vertex owners out of date")
	// ErrMalformedDocument reports an unreadable persisted mesh.
	ErrMalformedDocument = errors.New("mesh: malformed document")
)
