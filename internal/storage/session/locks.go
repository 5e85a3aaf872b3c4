package storage_session

import (
	"sort"
	"sync"
)

type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// roomLocks is a set of mutexes keyed by room name.
// Entries live only while someone holds or waits on them.
type roomLocks struct {
	mu    sync.Mutex
	locks map[string]*lockEntry
}

func newRoomLocks() *roomLocks {
	return &roomLocks{locks: make(map[string]*lockEntry)}
}

func (l *roomLocks) acquire(names ...string) func() {
	keys := normalize(names)

	// Sorted order keeps two multi-room callers from deadlocking.
	entries := make([]*lockEntry, 0, len(keys))
	for _, key := range keys {
		e := l.ref(key)
		e.mu.Lock()
		entries = append(entries, e)
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			for i := len(entries) - 1; i >= 0; i-- {
				entries[i].mu.Unlock()
				l.unref(keys[i])
			}
		})
	}
}

func (l *roomLocks) ref(key string) *lockEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	e, ok := l.locks[key]
	if !ok {
		e = &lockEntry{}
		l.locks[key] = e
	}
	e.refs++
	return e
}

func (l *roomLocks) unref(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	e, ok := l.locks[key]
	if !ok {
		return
	}
	e.refs--
	if e.refs == 0 {
		delete(l.locks, key)
	}
}

func normalize(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	keys := make([]string, 0, len(names))
	for _, n := range names {
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		keys = append(keys, n)
	}
	sort.Strings(keys)
	return keys
}
