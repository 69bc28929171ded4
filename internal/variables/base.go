package variables

import (
	"fmt"

	"github.com/Xabibax/choco-solver/pkg/cp"
	"github.com/Xabibax/choco-solver/pkg/sat"
)

const msgEmpty = "empty domain"

// vbase carries the identity and listener plumbing shared by stored
// variables and views.
type vbase struct {
	name      string
	id        int
	listeners []cp.Listener
}

func (b *vbase) Name() string { return b.name }

func (b *vbase) ID() int { return b.id }

func (b *vbase) Subscribe(l cp.Listener) {
	b.listeners = append(b.listeners, l)
}

// notify dispatches e to every listener except the cause itself, on the
// caller's stack, exactly once per listener.
func (b *vbase) notify(self cp.IntVar, e cp.Event, cause cp.Cause) error {
	for _, l := range b.listeners {
		if lc, ok := l.(cp.Cause); ok && lc == cause {
			continue
		}
		if err := l.NotifyChange(self, e, cause); err != nil {
			return err
		}
	}
	return nil
}

func (b *vbase) contradiction(self cp.Variable, cause cp.Cause, why sat.Reason, msg string) error {
	return &cp.Contradiction{Variable: self, Cause: cause, Why: why, Message: msg}
}

// mustBeInstantiated guards value accessors: querying the value of an
// unfixed variable is a bug in the calling propagator, surfaced
// immediately.
func (b *vbase) mustBeInstantiated(instantiated bool) {
	if !instantiated {
		panic(fmt.Sprintf("variables: Value() called on %s, which is not instantiated", b.name))
	}
}
