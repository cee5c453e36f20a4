// usage:
//
//	raw := sloghooks.New(slog.Default(), sloghooks.Options{CountedEvery: 100})
//	hooks := asynchook.New(raw, 1, 1000) // 1 worker; queue 1000 events
//	defer hooks.Close()
//
//	cache, _ := replaycache.New(replaycache.Options{
//	    Store: store,
//	    Hooks: hooks, // or `raw` if you don't want async
//	})
package asynchook

import (
	"sync"
	"sync/atomic"

	"github.com/sourcegraph/conc"

	"github.com/unkn0wn-root/replaycache"
)

// Hooks forwards events to inner on background workers. Events are dropped
// when the queue is full so tracked calls never block on a slow hook.
// Events raised after Close are dropped too.
type Hooks struct {
	inner   replaycache.Hooks
	q       chan func()
	wg      conc.WaitGroup
	once    sync.Once
	mu      sync.RWMutex // guards sends on q against close
	closed  atomic.Bool
	dropped atomic.Uint64
}

var _ replaycache.Hooks = (*Hooks)(nil)

func New(inner replaycache.Hooks, workers, qlen int) *Hooks {
	if workers <= 0 {
		workers = 1
	}
	if qlen <= 0 {
		qlen = 1024
	}

	h := &Hooks{inner: inner, q: make(chan func(), qlen)}
	for i := 0; i < workers; i++ {
		h.wg.Go(func() {
			for f := range h.q {
				f()
			}
		})
	}
	return h
}

// Close drains queued events and stops the workers. A panic in inner is
// re-raised here.
func (h *Hooks) Close() {
	h.once.Do(func() {
		h.mu.Lock()
		h.closed.Store(true)
		close(h.q)
		h.mu.Unlock()
		h.wg.Wait()
	})
}

// Dropped returns how many events were discarded, either because the queue
// was full or because they arrived after Close.
func (h *Hooks) Dropped() uint64 { return h.dropped.Load() }

func (h *Hooks) try(f func()) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.closed.Load() {
		h.dropped.Add(1)
		return
	}
	select {
	case h.q <- f:
	default:
		h.dropped.Add(1)
	}
}

func (h *Hooks) Flushed() { h.try(func() { h.inner.Flushed() }) }
func (h *Hooks) InstrumentationDisabled(s string) {
	h.try(func() { h.inner.InstrumentationDisabled(s) })
}
func (h *Hooks) CallCounted(m string, n int64)  { h.try(func() { h.inner.CallCounted(m, n) }) }
func (h *Hooks) CallFailed(m string, err error) { h.try(func() { h.inner.CallFailed(m, err) }) }
func (h *Hooks) ReplaySkipped(m string)         { h.try(func() { h.inner.ReplaySkipped(m) }) }
func (h *Hooks) RecordError(m, stage string, err error) {
	h.try(func() { h.inner.RecordError(m, stage, err) })
}
