package search

import "github.com/Xabibax/choco-solver/pkg/cp"

// engine runs propagation to fixpoint. Variables wake the propagators
// subscribed to them when their domain narrows; a propagator is queued at
// most once until it runs.
type engine struct {
	all       []cp.Propagator
	queue     []cp.Propagator
	scheduled map[cp.Propagator]bool
}

func newEngine(props []cp.Propagator) *engine {
	e := &engine{
		all:       props,
		scheduled: make(map[cp.Propagator]bool, len(props)),
	}
	for _, p := range props {
		h := &hook{e: e, p: p}
		for _, v := range p.Variables() {
			v.Subscribe(h)
		}
	}
	return e
}

// hook adapts a propagator to the variable Listener contract. A
// propagator is never woken by its own modifications.
type hook struct {
	e *engine
	p cp.Propagator
}

func (h *hook) NotifyChange(_ cp.IntVar, _ cp.Event, cause cp.Cause) error {
	if cause == cp.Cause(h.p) {
		return nil
	}
	h.e.schedule(h.p)
	return nil
}

func (e *engine) schedule(p cp.Propagator) {
	if e.scheduled[p] {
		return
	}
	e.scheduled[p] = true
	e.queue = append(e.queue, p)
}

// propagateAll seeds the queue with every propagator, then drains it.
func (e *engine) propagateAll() error {
	for _, p := range e.all {
		e.schedule(p)
	}
	return e.propagate()
}

// propagate drains the queue. On failure the queue is flushed: the branch
// is dead and whatever was pending is meaningless after backtracking.
func (e *engine) propagate() error {
	for len(e.queue) > 0 {
		p := e.queue[len(e.queue)-1]
		e.queue = e.queue[:len(e.queue)-1]
		e.scheduled[p] = false
		if err := p.Propagate(); err != nil {
			e.flush()
			return err
		}
	}
	return nil
}

func (e *engine) flush() {
	for _, p := range e.queue {
		e.scheduled[p] = false
	}
	e.queue = e.queue[:0]
}
