package replaycache

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/unkn0wn-root/replaycache/internal/keys"
	"github.com/unkn0wn-root/replaycache/store"
)

// failurePrefix marks an output entry written for a call that returned an error.
const failurePrefix = "!error: "

// Func is an operation that can be wrapped by CountCalls and CallHistory.
type Func[In, Out any] func(ctx context.Context, in In) (Out, error)

type RecorderOptions struct {
	Logger Logger // if nil, NopLogger is used
	Hooks  Hooks  // if nil, NopHooks is used
}

// Recorder writes call counters and call history into a store.Ledger.
// A nil *Recorder, or one built without a ledger, records nothing and the
// wrappers built from it call straight through.
type Recorder struct {
	ledger store.Ledger
	log    Logger
	hooks  Hooks
}

func NewRecorder(l store.Ledger, opts RecorderOptions) *Recorder {
	return &Recorder{
		ledger: l,
		log:    coalesce[Logger](opts.Logger, NopLogger{}),
		hooks:  coalesce[Hooks](opts.Hooks, NopHooks{}),
	}
}

// Enabled reports whether calls wrapped with r are recorded.
func (r *Recorder) Enabled() bool { return r != nil && r.ledger != nil }

func (r *Recorder) recordErr(method, stage string, err error) error {
	r.log.Error("instrumentation write failed", Fields{"method": method, "stage": stage, "err": err})
	r.hooks.RecordError(method, stage, err)
	return &RecordError{Method: method, Stage: stage, Err: err}
}

// CountCalls increments the counter of id before every call to next.
// The increment is kept even when next fails.
func CountCalls[In, Out any](r *Recorder, id string, next Func[In, Out]) Func[In, Out] {
	if !r.Enabled() {
		return next
	}
	counterKey := keys.Counter(id)
	return func(ctx context.Context, in In) (Out, error) {
		n, err := r.ledger.Incr(ctx, counterKey)
		if err != nil {
			var zero Out
			return zero, r.recordErr(id, StageCount, err)
		}
		r.hooks.CallCounted(id, n)
		return next(ctx, in)
	}
}

// CallHistory appends Text(in) to the inputs list of id before calling next
// and Text(out) to the outputs list after it returns. When next fails a
// failure marker is appended instead so both lists stay index-aligned.
func CallHistory[In, Out any](r *Recorder, id string, next Func[In, Out]) Func[In, Out] {
	if !r.Enabled() {
		return next
	}
	inKey, outKey := keys.Inputs(id), keys.Outputs(id)
	return func(ctx context.Context, in In) (Out, error) {
		var zero Out
		if err := r.ledger.RPush(ctx, inKey, Text(in)); err != nil {
			return zero, r.recordErr(id, StageInputs, err)
		}

		out, callErr := next(ctx, in)
		entry := Text(out)
		if callErr != nil {
			entry = failurePrefix + callErr.Error()
			r.hooks.CallFailed(id, callErr)
		}

		if err := r.ledger.RPush(ctx, outKey, entry); err != nil {
			return zero, errors.Join(callErr, r.recordErr(id, StageOutputs, err))
		}
		return out, callErr
	}
}

// Text renders a value the way it is kept in call history: anything the
// store can hold is rendered as the store would hold it (so []byte("a") and
// "a" both become a), Stringers use String, the rest fmt.Sprint.
func Text(v any) string {
	if b, err := store.Encode(v); err == nil {
		return string(b)
	}
	if s, ok := v.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprint(v)
}

// IsFailure reports whether a recorded output stands for a failed call.
func IsFailure(output string) bool { return strings.HasPrefix(output, failurePrefix) }
