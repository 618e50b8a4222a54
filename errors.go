package dhmap

import "errors"

var (
	// ErrTableFull is returned by Set when a probe sequence visits only
	// occupied slots. Under GrowAt75 the table keeps a quarter of its
	// slots free, so hitting this means the sequence degenerated into a
	// short cycle instead of covering the table.
	ErrTableFull = errors.New("dhmap: table is full")

	// ErrOverHalfFull is returned by Set under RefuseAt50 once half of
	// the slots are occupied.
	ErrOverHalfFull = errors.New("dhmap: table is over half full")
)
