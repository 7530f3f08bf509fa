package services

import (
	"fmt"
	"sync"
)

// KeyedMutex serializes state-mutating operations per entity (per project,
// per user). A lock is held for the whole operation and released on every
// exit path, so no collaborator call can observe an entity mid-transition.
type KeyedMutex struct {
	mu    sync.Mutex
	locks map[string]*entityLock
}

type entityLock struct {
	mu   sync.Mutex
	refs int
}

func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{locks: make(map[string]*entityLock)}
}

// Lock acquires the mutex for key and returns its unlock function.
func (k *KeyedMutex) Lock(key string) func() {
	k.mu.Lock()
	l, ok := k.locks[key]
	if !ok {
		l = &entityLock{}
		k.locks[key] = l
	}
	l.refs++
	k.mu.Unlock()

	l.mu.Lock()

	return func() {
		l.mu.Unlock()
		k.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(k.locks, key)
		}
		k.mu.Unlock()
	}
}

// ProjectKey builds the lock key for a project.
func ProjectKey(projectID uint) string {
	return fmt.Sprintf("project:%d", projectID)
}

// UserKey builds the lock key for a user.
func UserKey(userID uint) string {
	return fmt.Sprintf("user:%d", userID)
}
