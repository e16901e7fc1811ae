package cache

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
)

// mapCache is a trivial Cache implementation for manager tests.
type mapCache struct {
	mu   sync.Mutex
	data map[string]int
}

func newMapCache() *mapCache {
	return &mapCache{data: make(map[string]int)}
}

func (c *mapCache) Get(_ context.Context, key string) (int, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.data[key]
	return v, ok, nil
}

func (c *mapCache) Put(_ context.Context, key string, value int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value
	return nil
}

func (c *mapCache) Evict(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

func (c *mapCache) Clear(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = make(map[string]int)
	return nil
}

func TestNewManager_NilConstructor(t *testing.T) {
	_, err := NewManager[string, int]("test", nil)
	if !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestManager_CacheMemoization(t *testing.T) {
	m, err := NewManager("test", func(name string) (Cache[string, int], error) {
		return newMapCache(), nil
	})
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}

	first, err := m.Cache("sessions")
	if err != nil {
		t.Fatalf("Cache failed: %v", err)
	}
	second, err := m.Cache("sessions")
	if err != nil {
		t.Fatalf("second Cache failed: %v", err)
	}
	if first != second {
		t.Error("same name must resolve to the same Cache instance")
	}

	other, err := m.Cache("users")
	if err != nil {
		t.Fatalf("Cache(users) failed: %v", err)
	}
	if other == first {
		t.Error("different names must resolve to different Cache instances")
	}
}

func TestManager_CacheEmptyName(t *testing.T) {
	m, err := NewManager("test", func(name string) (Cache[string, int], error) {
		return newMapCache(), nil
	})
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}

	_, err = m.Cache("")
	if !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument for empty name, got %v", err)
	}
	if len(m.All()) != 0 {
		t.Error("rejected call must not mutate manager state")
	}
}

func TestManager_CreateFailureWrapped(t *testing.T) {
	boom := errors.New("backend exploded")
	m, err := NewManager("test", func(name string) (Cache[string, int], error) {
		return nil, boom
	})
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}

	_, err = m.Cache("sessions")
	if err == nil {
		t.Fatal("expected construction failure")
	}

	var oe *OpError
	if !errors.As(err, &oe) {
		t.Fatalf("expected *OpError, got %T: %v", err, err)
	}
	if oe.Op != "create" || oe.Cache != "sessions" {
		t.Errorf("unexpected error context: op=%q cache=%q", oe.Op, oe.Cache)
	}
	if !errors.Is(err, boom) {
		t.Error("original backend error must remain unwrappable")
	}

	// Failed construction is not memoized; the next call tries again.
	if len(m.All()) != 0 {
		t.Error("failed construction must not be memoized")
	}
}

func TestManager_ConcurrentFirstAccess(t *testing.T) {
	var constructions atomic.Int32
	m, err := NewManager("test", func(name string) (Cache[string, int], error) {
		constructions.Add(1)
		return newMapCache(), nil
	})
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}

	const goroutines = 32
	results := make([]Cache[string, int], goroutines)

	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			c, err := m.Cache("sessions")
			if err != nil {
				t.Errorf("Cache failed: %v", err)
				return
			}
			results[i] = c
		}(i)
	}
	wg.Wait()

	if got := constructions.Load(); got != 1 {
		t.Errorf("expected exactly 1 construction under concurrent first access, got %d", got)
	}
	for i := 1; i < goroutines; i++ {
		if results[i] != results[0] {
			t.Fatal("all callers must observe the same Cache instance")
		}
	}
}

func TestManager_All(t *testing.T) {
	m, err := NewManager("test", func(name string) (Cache[string, int], error) {
		return newMapCache(), nil
	})
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}

	for i := 0; i < 3; i++ {
		if _, err := m.Cache(fmt.Sprintf("cache-%d", i)); err != nil {
			t.Fatalf("Cache failed: %v", err)
		}
	}

	all := m.All()
	if len(all) != 3 {
		t.Fatalf("expected 3 caches, got %d", len(all))
	}

	// The returned map is a snapshot.
	delete(all, "cache-0")
	if len(m.All()) != 3 {
		t.Error("mutating the snapshot must not affect the manager")
	}
}
