// Package gesture tracks user input that unlocks platform-restricted actions
// and runs one-shot hooks on the next qualifying input.
package gesture

import "sync"

// Kind identifies a class of user input.
type Kind int

const (
	Click Kind = iota
	Touch
	KeyPress
)

// AllKinds lists every input class a hook can listen on.
var AllKinds = []Kind{Click, Touch, KeyPress}

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case Click:
		return "click"
	case Touch:
		return "touch"
	case KeyPress:
		return "keypress"
	default:
		return "unknown"
	}
}

type hook struct {
	fn    func(Kind)
	kinds map[Kind]bool
}

// Registry holds one-shot hooks keyed by an internal id.
//
// A hook listening on several kinds is a single entry: the first matching
// Fire runs it and removes it from every kind at once.
type Registry struct {
	mu        sync.Mutex
	hooks     map[uint64]*hook
	order     []uint64
	nextID    uint64
	activated bool
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{hooks: make(map[uint64]*hook)}
}

// Once registers fn to run on the next gesture of one of kinds (all kinds
// when none are given). The returned cancel removes the hook if it has not
// fired yet; calling it more than once is safe.
func (r *Registry) Once(fn func(Kind), kinds ...Kind) (cancel func()) {
	if len(kinds) == 0 {
		kinds = AllKinds
	}
	h := &hook{fn: fn, kinds: make(map[Kind]bool, len(kinds))}
	for _, k := range kinds {
		h.kinds[k] = true
	}

	r.mu.Lock()
	r.nextID++
	id := r.nextID
	r.hooks[id] = h
	r.order = append(r.order, id)
	r.mu.Unlock()

	return func() { r.remove(id) }
}

// Fire records a user gesture of the given kind and runs every hook
// listening on it. Hooks are removed before they run and are invoked outside
// the lock in registration order, so a hook may register new hooks; those
// wait for the next gesture. Returns the number of hooks run.
func (r *Registry) Fire(kind Kind) int {
	r.mu.Lock()
	r.activated = true
	var due []*hook
	kept := r.order[:0]
	for _, id := range r.order {
		h, ok := r.hooks[id]
		if !ok {
			continue
		}
		if h.kinds[kind] {
			due = append(due, h)
			delete(r.hooks, id)
			continue
		}
		kept = append(kept, id)
	}
	r.order = kept
	r.mu.Unlock()

	for _, h := range due {
		h.fn(kind)
	}
	return len(due)
}

// Activated reports whether any gesture has been observed. Like a browser's
// sticky user activation it never resets.
func (r *Registry) Activated() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.activated
}

// Pending returns the number of hooks waiting for a gesture.
func (r *Registry) Pending() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.hooks)
}

func (r *Registry) remove(id uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.hooks[id]; !ok {
		return
	}
	delete(r.hooks, id)
	for i, v := range r.order {
		if v == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}
