package sloghooks

import (
	"log/slog"
	"sync/atomic"

	"github.com/unkn0wn-root/replaycache"
)

type Options struct {
	// Sampling to avoid floods; 0/1 = log all.
	CountedEvery uint64
	FailedEvery  uint64
}

// Hooks logs instrumentation events to a slog.Logger. CallCounted is
// logged at Debug since it fires on every tracked call.
type Hooks struct {
	l    *slog.Logger
	opts Options

	countedCtr atomic.Uint64
	failedCtr  atomic.Uint64
}

var _ replaycache.Hooks = (*Hooks)(nil)

func New(l *slog.Logger, opts Options) *Hooks {
	return &Hooks{l: l, opts: opts}
}

func sample(n uint64, ctr *atomic.Uint64) bool {
	if n == 0 || n == 1 {
		return true
	}
	return ctr.Add(1)%n == 0
}

func (h *Hooks) Flushed() {
	if h.l == nil {
		return
	}
	h.l.Info("replaycache.flushed")
}

func (h *Hooks) InstrumentationDisabled(storeType string) {
	if h.l == nil {
		return
	}
	h.l.Warn("replaycache.instrumentation_disabled",
		"store", storeType,
		"detail", "store is not a ledger; calls are not counted or recorded")
}

func (h *Hooks) CallCounted(method string, n int64) {
	if h.l == nil || !sample(h.opts.CountedEvery, &h.countedCtr) {
		return
	}
	h.l.Debug("replaycache.call_counted",
		"method", method,
		"count", n)
}

func (h *Hooks) CallFailed(method string, err error) {
	if h.l == nil || !sample(h.opts.FailedEvery, &h.failedCtr) {
		return
	}
	h.l.Warn("replaycache.call_failed",
		"method", method,
		"err", err)
}

func (h *Hooks) RecordError(method, stage string, err error) {
	if h.l == nil {
		return
	}
	h.l.Error("replaycache.record_error",
		"method", method,
		"stage", stage,
		"err", err)
}

func (h *Hooks) ReplaySkipped(method string) {
	if h.l == nil {
		return
	}
	h.l.Debug("replaycache.replay_skipped",
		"method", method)
}
