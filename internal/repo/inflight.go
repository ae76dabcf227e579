package repo

import "sync"

// inflightSet tracks entry ids with an operation in flight. It is an advisory
// guard against duplicate user-triggered requests for the same entry, not a
// lock: operations on different entries proceed independently.
type inflightSet struct {
	mu  sync.Mutex
	ids map[int]struct{}
}

func newInflightSet() *inflightSet {
	return &inflightSet{ids: map[int]struct{}{}}
}

// begin marks id busy; false when it already is.
func (f *inflightSet) begin(id int) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, busy := f.ids[id]; busy {
		return false
	}
	f.ids[id] = struct{}{}
	return true
}

func (f *inflightSet) end(id int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.ids, id)
}

func (f *inflightSet) busy(id int) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, busy := f.ids[id]
	return busy
}
