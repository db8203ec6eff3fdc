package activity

import (
	"sort"
	"sync"
)

// Registry owns the process-wide set of activities. It is created once at
// startup from a seed and mutated in place; nothing is persisted.
type Registry struct {
	mu         sync.RWMutex
	activities map[string]*Activity
}

// NewRegistry copies seed into a fresh Registry. Later entries with a
// duplicate name replace earlier ones.
func NewRegistry(seed []Activity) *Registry {
	r := &Registry{activities: make(map[string]*Activity, len(seed))}
	for _, a := range seed {
		c := a.clone()
		r.activities[c.Name] = &c
	}
	return r
}

// List returns a snapshot of every activity keyed by name.
func (r *Registry) List() map[string]Activity {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]Activity, len(r.activities))
	for name, a := range r.activities {
		out[name] = a.clone()
	}
	return out
}

// Names returns the activity names in lexical order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.activities))
	for name := range r.activities {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Signup appends email to the roster of the named activity and returns the
// updated activity. Capacity is not enforced.
func (r *Registry) Signup(name, email string) (Activity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.activities[name]
	if !ok {
		return Activity{}, ErrActivityNotFound
	}
	if a.HasParticipant(email) {
		return Activity{}, ErrAlreadySignedUp
	}
	a.Participants = append(a.Participants, email)
	return a.clone(), nil
}

// Unregister removes email from the roster of the named activity, keeping
// the order of the remaining participants.
func (r *Registry) Unregister(name, email string) (Activity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.activities[name]
	if !ok {
		return Activity{}, ErrActivityNotFound
	}
	i := indexOf(a.Participants, email)
	if i < 0 {
		return Activity{}, ErrNotSignedUp
	}
	a.Participants = append(a.Participants[:i], a.Participants[i+1:]...)
	return a.clone(), nil
}
