package cp

import (
	"errors"
	"fmt"

	"github.com/Xabibax/choco-solver/pkg/sat"
)

// Contradiction is raised when an instantiation or bound update would
// empty a variable's domain. It is always fatal to the current branch:
// the search driver must backtrack, and if explanations are tracked the
// attached reason feeds conflict analysis.
type Contradiction struct {
	Variable Variable
	Cause    Cause
	Why      sat.Reason
	Message  string
}

func (c *Contradiction) Error() string {
	name := "?"
	if c.Variable != nil {
		name = c.Variable.Name()
	}
	cause := "null"
	if c.Cause != nil {
		cause = c.Cause.String()
	}
	return fmt.Sprintf("contradiction: %s on %s (cause: %s)", c.Message, name, cause)
}

// IsContradiction reports whether err is, or wraps, a domain wipe-out.
// Any other error out of a propagator indicates a bug rather than an
// inconsistent branch.
func IsContradiction(err error) bool {
	var c *Contradiction
	return errors.As(err, &c)
}
