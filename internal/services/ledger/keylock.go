package ledger

import (
	"sync"

	"github.com/KirkDiggler/scum-bot-discord/internal/domain/character"
)

// keyLocks hands out one RWMutex per character key.
// Entries are created on first use and dropped once nobody holds or waits on them,
// so the table only ever contains keys with work in flight. mu guards the map and
// reference counts only; it is never held while a key lock is held or awaited.
type keyLocks struct {
	mu    sync.Mutex
	locks map[character.Key]*keyLock
}

type keyLock struct {
	sync.RWMutex
	refs int
}

func newKeyLocks() *keyLocks {
	return &keyLocks{locks: make(map[character.Key]*keyLock)}
}

// Lock takes the key's write lock and returns its release func
func (l *keyLocks) Lock(key character.Key) func() {
	entry := l.acquire(key)
	entry.Lock()
	return func() {
		entry.Unlock()
		l.release(key, entry)
	}
}

// RLock takes the key's read lock and returns its release func
func (l *keyLocks) RLock(key character.Key) func() {
	entry := l.acquire(key)
	entry.RLock()
	return func() {
		entry.RUnlock()
		l.release(key, entry)
	}
}

func (l *keyLocks) acquire(key character.Key) *keyLock {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry, ok := l.locks[key]
	if !ok {
		entry = &keyLock{}
		l.locks[key] = entry
	}
	entry.refs++
	return entry
}

func (l *keyLocks) release(key character.Key, entry *keyLock) {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry.refs--
	if entry.refs == 0 {
		delete(l.locks, key)
	}
}

func (l *keyLocks) len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
