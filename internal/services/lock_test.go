package services

import (
	"sync"
	"testing"
)

func TestKeyedMutexSerializesSameKey(t *testing.T) {
	km := NewKeyedMutex()

	counter := 0
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := km.Lock(ProjectKey(1))
			counter++
			unlock()
		}()
	}
	wg.Wait()

	if counter != 100 {
		t.Errorf("expected counter 100, got %d", counter)
	}
}

func TestKeyedMutexIndependentKeys(t *testing.T) {
	km := NewKeyedMutex()

	unlock1 := km.Lock(ProjectKey(1))
	// A different key must not block.
	unlock2 := km.Lock(ProjectKey(2))
	unlock3 := km.Lock(UserKey(1))
	unlock1()
	unlock2()
	unlock3()
}

func TestKeyedMutexCleansUpEntries(t *testing.T) {
	km := NewKeyedMutex()

	unlock := km.Lock(ProjectKey(42))
	unlock()

	km.mu.Lock()
	defer km.mu.Unlock()
	if len(km.locks) != 0 {
		t.Errorf("expected lock map to be empty, got %d entries", len(km.locks))
	}
}
