package serve

import (
	"sync"
	gt "time"

	"github.com/google/uuid"

	"recognition.dev/cheers/metrics"
	"recognition.dev/cheers/util/time"
	"recognition.dev/cheers/view"
)

// registry holds the mounted views by id. A view lives until it has been idle
// longer than ttl, or until it submits successfully.
type registry struct {
	ttl gt.Duration
	now func() gt.Time

	mu    sync.Mutex
	views map[string]*entry
}

type entry struct {
	v    *view.View
	seen gt.Time
}

func newRegistry(ttl gt.Duration) *registry {
	return &registry{ttl: ttl, now: time.Now, views: map[string]*entry{}}
}

// add mounts v under a new id.
func (r *registry) add(v *view.View) string {
	id := uuid.NewString()
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sweepLocked()
	r.views[id] = &entry{v: v, seen: r.now()}
	metrics.SetViewsMounted(len(r.views))
	return id
}

// get returns the view with the given id and marks it as used.
func (r *registry) get(id string) (*view.View, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.views[id]
	if !ok {
		return nil, false
	}
	if r.expiredLocked(e) {
		r.removeLocked(id)
		return nil, false
	}
	e.seen = r.now()
	return e.v, true
}

// remove unmounts the view. A submission it has in flight still completes.
func (r *registry) remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.removeLocked(id)
}

func (r *registry) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.views)
}

func (r *registry) expiredLocked(e *entry) bool {
	if r.ttl <= 0 || e.v.Status().InFlight() {
		return false
	}
	return r.now().Sub(e.seen) > r.ttl
}

func (r *registry) sweepLocked() {
	for id, e := range r.views {
		if r.expiredLocked(e) {
			r.removeLocked(id)
		}
	}
}

func (r *registry) removeLocked(id string) {
	e, ok := r.views[id]
	if !ok {
		return
	}
	e.v.Close()
	delete(r.views, id)
	metrics.SetViewsMounted(len(r.views))
}
