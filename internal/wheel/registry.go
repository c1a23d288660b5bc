package wheel

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/osse101/WheelPortal_Go/internal/domain"
	"github.com/osse101/WheelPortal_Go/internal/logger"
)

// Factory builds the orchestrator for a user the registry has not seen yet
type Factory func(userID string) *Orchestrator

// Registry keeps one orchestrator per user in an expirable LRU.
// Entries idle for longer than the TTL are evicted and their sessions cancelled.
type Registry struct {
	mu      sync.Mutex
	lru     *expirable.LRU[string, *Orchestrator]
	factory Factory
	closed  bool
	retired sync.WaitGroup
}

// NewRegistry creates a registry holding at most size orchestrators
func NewRegistry(size int, ttl time.Duration, factory Factory) *Registry {
	if size <= 0 {
		size = DefaultRegistrySize
	}
	if ttl <= 0 {
		ttl = DefaultRegistryTTL
	}

	r := &Registry{factory: factory}
	r.lru = expirable.NewLRU[string, *Orchestrator](size, r.onEvict, ttl)
	return r
}

// Get returns the orchestrator for userID, creating it on first use.
// Every call refreshes the entry's TTL.
func (r *Registry) Get(userID string) (*Orchestrator, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil, domain.ErrOrchestratorShutdown
	}

	o, ok := r.lru.Get(userID)
	if !ok {
		o = r.factory(userID)
	}
	r.lru.Add(userID, o)
	return o, nil
}

// Peek returns the orchestrator for userID without creating it or refreshing its TTL
func (r *Registry) Peek(userID string) (*Orchestrator, bool) {
	return r.lru.Peek(userID)
}

// Remove evicts the orchestrator of userID, cancelling its session
func (r *Registry) Remove(userID string) {
	r.lru.Remove(userID)
}

// Len returns the number of live orchestrators
func (r *Registry) Len() int {
	return r.lru.Len()
}

// Shutdown cancels every session and waits for all timers and pollers to exit
func (r *Registry) Shutdown(ctx context.Context) error {
	r.mu.Lock()
	r.closed = true
	live := r.lru.Values()
	r.mu.Unlock()

	r.lru.Purge()

	var errs []error
	for _, o := range live {
		if err := o.Shutdown(ctx); err != nil {
			errs = append(errs, err)
		}
	}

	done := make(chan struct{})
	go func() {
		r.retired.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		errs = append(errs, ctx.Err())
	}

	return errors.Join(errs...)
}

func (r *Registry) onEvict(userID string, o *Orchestrator) {
	logger.FromContext(context.Background()).Debug(LogMsgOrchestratorEvicted, logger.AttrKeyUserID, userID, "busy", o.Busy())
	o.Close()

	r.retired.Add(1)
	go func() {
		defer r.retired.Done()
		_ = o.Shutdown(context.Background())
	}()
}
