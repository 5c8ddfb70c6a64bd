package priority

import (
	"fmt"

	"guild-ledger/core/wow"
)

// UnknownSeparatorError reports a cell that is neither a role, a blank,
// nor one of the three separators. Pos is the zero-based cell index
// within the parsed row.
type UnknownSeparatorError struct {
	Pos  int
	Text string
}

func (e *UnknownSeparatorError) Error() string {
	return fmt.Sprintf("cell %d: expected separator, got %q", e.Pos, e.Text)
}

// DuplicateRoleError reports a role that was already placed earlier in the
// same list. Pos is the zero-based cell index of the repeated occurrence.
type DuplicateRoleError struct {
	Pos  int
	Role wow.RoleTuple
}

func (e *DuplicateRoleError) Error() string {
	return fmt.Sprintf("cell %d: duplicate role %s", e.Pos, e.Role)
}
