package replaycache

// Hooks lightweight callbacks for instrumentation events.
// Implementations MUST be cheap and non-blocking; they run inline with
// every tracked call.
type Hooks interface {
	// The backing database was flushed while building the cache.
	Flushed()

	// The configured store is not a store.Ledger, so calls are neither
	// counted nor recorded. storeType is the %T of the store.
	InstrumentationDisabled(storeType string)

	// A tracked call was counted; n is the counter value after the increment.
	CallCounted(method string, n int64)

	// The wrapped operation failed and a failure marker was recorded as its output.
	CallFailed(method string, err error)

	// A counter or history write failed.
	// stage ∈ {"count", "inputs", "outputs"}
	RecordError(method, stage string, err error)

	// Replay printed nothing because the owning cache is not instrumented.
	ReplaySkipped(method string)
}

// NopHooks is the default no-op
type NopHooks struct{}

func (NopHooks) Flushed()                          {}
func (NopHooks) InstrumentationDisabled(string)    {}
func (NopHooks) CallCounted(string, int64)         {}
func (NopHooks) CallFailed(string, error)          {}
func (NopHooks) RecordError(string, string, error) {}
func (NopHooks) ReplaySkipped(string)              {}
