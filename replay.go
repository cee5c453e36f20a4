package replaycache

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/unkn0wn-root/replaycache/internal/keys"
)

// Method is a replayable reference to a tracked method: its stable id plus
// the cache that owns the recorded history.
type Method struct {
	id    string
	owner *cache
}

func (m *Method) ID() string { return m.id }

// Call is one recorded invocation.
type Call struct {
	Input  string
	Output string
}

// Failed reports whether the call returned an error.
func (c Call) Failed() bool { return IsFailure(c.Output) }

// History is everything recorded for one method id.
type History struct {
	Method  string
	Count   int64
	Inputs  []string
	Outputs []string
}

// Calls pairs inputs with outputs in call order, up to the shorter list.
func (h History) Calls() []Call {
	n := min(len(h.Inputs), len(h.Outputs))
	out := make([]Call, n)
	for i := 0; i < n; i++ {
		out[i] = Call{Input: h.Inputs[i], Output: h.Outputs[i]}
	}
	return out
}

// History reads the counter (0 when absent) and both history lists of id.
func (r *Recorder) History(ctx context.Context, id string) (History, error) {
	h := History{Method: id}
	if !r.Enabled() {
		return h, nil
	}

	counterKey := keys.Counter(id)
	exists, err := r.ledger.Exists(ctx, counterKey)
	if err != nil {
		return h, err
	}
	if exists {
		raw, ok, err := r.ledger.Get(ctx, counterKey)
		if err != nil {
			return h, err
		}
		if ok {
			if h.Count, err = strconv.ParseInt(string(raw), 10, 64); err != nil {
				return h, fmt.Errorf("replaycache: counter %q: %w", counterKey, err)
			}
		}
	}

	if h.Inputs, err = r.ledger.LRange(ctx, keys.Inputs(id), 0, -1); err != nil {
		return h, err
	}
	if h.Outputs, err = r.ledger.LRange(ctx, keys.Outputs(id), 0, -1); err != nil {
		return h, err
	}
	return h, nil
}

// Replay prints the recorded history of m to stdout. See ReplayTo.
func Replay(ctx context.Context, m *Method) error {
	return ReplayTo(ctx, os.Stdout, m)
}

// ReplayTo writes
//
//	<id> was called <count> times:
//	<id>(*<input>) -> <output>
//	...
//
// oldest call first. It writes nothing and returns nil when m is nil, has
// no owning cache, or the owner does not record calls. Store and write
// errors are returned.
func ReplayTo(ctx context.Context, w io.Writer, m *Method) error {
	if m == nil || m.owner == nil {
		return nil
	}
	owner := m.owner
	if !owner.rec.Enabled() {
		owner.log.Debug("replay skipped; cache is not instrumented", Fields{"method": m.id})
		owner.hooks.ReplaySkipped(m.id)
		return nil
	}

	h, err := owner.rec.History(ctx, m.id)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "%s was called %d times:\n", h.Method, h.Count); err != nil {
		return err
	}
	for _, c := range h.Calls() {
		if _, err := fmt.Fprintf(w, "%s(*%s) -> %s\n", h.Method, c.Input, c.Output); err != nil {
			return err
		}
	}
	return nil
}
