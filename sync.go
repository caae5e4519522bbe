package agingbloom

import "sync"

// SyncFilter wraps a Filter with a read-write lock. Checks share the lock
// unless the wrapped filter's Check mutates it.
type SyncFilter struct {
	mu          sync.RWMutex
	f           Filter
	exclusiveCk bool
}

// NewSyncFilter wraps f. f must not be used directly afterwards.
func NewSyncFilter(f Filter) *SyncFilter {
	sf := &SyncFilter{f: f}
	if m, ok := f.(interface{ CheckMutates() bool }); ok {
		sf.exclusiveCk = m.CheckMutates()
	}
	return sf
}

// Put inserts an item.
func (sf *SyncFilter) Put(d []byte) {
	sf.mu.Lock()
	defer sf.mu.Unlock()
	sf.f.Put(d)
}

// Check reports whether an item was possibly inserted.
func (sf *SyncFilter) Check(d []byte) bool {
	if sf.exclusiveCk {
		sf.mu.Lock()
		defer sf.mu.Unlock()
	} else {
		sf.mu.RLock()
		defer sf.mu.RUnlock()
	}
	return sf.f.Check(d)
}

// Delete removes an item when the wrapped filter is a CBF. Other filters
// cannot delete and return an error.
func (sf *SyncFilter) Delete(d []byte) error {
	cf, ok := sf.f.(*CBF)
	if !ok {
		return Error.New("delete unsupported by %T", sf.f)
	}
	sf.mu.Lock()
	defer sf.mu.Unlock()
	return cf.Delete(d)
}

// Empty clears the wrapped filter.
func (sf *SyncFilter) Empty() {
	sf.mu.Lock()
	defer sf.mu.Unlock()
	sf.f.Empty()
}

// Do runs fn with exclusive access to the wrapped filter.
func (sf *SyncFilter) Do(fn func(Filter)) {
	sf.mu.Lock()
	defer sf.mu.Unlock()
	fn(sf.f)
}

func (sf *SyncFilter) HashCount() uint64          { return sf.f.HashCount() }
func (sf *SyncFilter) FalsePositiveRate() float64 { return sf.f.FalsePositiveRate() }
func (sf *SyncFilter) ExpectedInserts() uint64    { return sf.f.ExpectedInserts() }
func (sf *SyncFilter) Len() uint64                { return sf.f.Len() }

// ActualInserts returns the insert counter of the wrapped filter.
func (sf *SyncFilter) ActualInserts() uint64 {
	sf.mu.RLock()
	defer sf.mu.RUnlock()
	return sf.f.ActualInserts()
}

var _ Filter = (*SyncFilter)(nil)
