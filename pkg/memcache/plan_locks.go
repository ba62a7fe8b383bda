// pkg/memcache/plan_locks.go
package memcache

import (
	"sync"
	"time"
)

// GenerationGuard serializes plan generation per key so that a double-submit
// of the same savings target does not call the advisor twice.
type GenerationGuard interface {
	// TryAcquire reserves key for ttl. Returns false if another generation
	// for the key is still running.
	TryAcquire(key string, ttl time.Duration) bool

	// Release frees key before its ttl expires.
	Release(key string)
}

type entry struct {
	expiresAt time.Time
}

type PlanLocks struct {
	mu   sync.Mutex
	data map[string]entry
}

func NewPlanLocks() *PlanLocks {
	return &PlanLocks{
		data: make(map[string]entry),
	}
}

func (s *PlanLocks) TryAcquire(key string, ttl time.Duration) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.data[key]
	if ok && time.Now().Before(e.expiresAt) {
		return false
	}
	s.data[key] = entry{expiresAt: time.Now().Add(ttl)}
	return true
}

func (s *PlanLocks) Release(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
}
