package replaycache

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unkn0wn-root/replaycache/store/local"
)

func TestReplayPrintsCallsInOrder(t *testing.T) {
	ctx := context.Background()
	cc := newTestCache(t, local.New(), func(o *Options) { o.NewKey = sequentialKeys() })

	for _, in := range []any{"foo", "bar", 42} {
		_, err := cc.Store(ctx, in)
		require.NoError(t, err)
	}

	var buf bytes.Buffer
	require.NoError(t, ReplayTo(ctx, &buf, cc.StoreMethod()))
	want := "Cache.store was called 3 times:\n" +
		"Cache.store(*foo) -> k1\n" +
		"Cache.store(*bar) -> k2\n" +
		"Cache.store(*42) -> k3\n"
	assert.Equal(t, want, buf.String())
}

func TestReplayFreshCache(t *testing.T) {
	ctx := context.Background()
	cc := newTestCache(t, local.New(), nil)

	var buf bytes.Buffer
	require.NoError(t, ReplayTo(ctx, &buf, cc.StoreMethod()))
	assert.Equal(t, "Cache.store was called 0 times:\n", buf.String())
}

func TestReplayShowsFailedCalls(t *testing.T) {
	ctx := context.Background()
	backing := &faultyStore{Store: local.New()}
	cc := newTestCache(t, backing, func(o *Options) { o.NewKey = sequentialKeys() })

	_, err := cc.Store(ctx, "ok")
	require.NoError(t, err)
	backing.setErr = errors.New("read only replica")
	_, err = cc.Store(ctx, "nope")
	require.Error(t, err)

	var buf bytes.Buffer
	require.NoError(t, ReplayTo(ctx, &buf, cc.StoreMethod()))
	want := "Cache.store was called 2 times:\n" +
		"Cache.store(*ok) -> k1\n" +
		"Cache.store(*nope) -> !error: read only replica\n"
	assert.Equal(t, want, buf.String())
}

func TestReplayWithoutMethodOrOwnerIsSilent(t *testing.T) {
	ctx := context.Background()
	var buf bytes.Buffer

	require.NoError(t, ReplayTo(ctx, &buf, nil))
	require.NoError(t, ReplayTo(ctx, &buf, &Method{id: "Cache.store"}))
	require.NoError(t, Replay(ctx, nil))
	assert.Empty(t, buf.String())
}

func TestHistoryCallsStopAtShorterList(t *testing.T) {
	h := History{
		Method:  "m",
		Count:   3,
		Inputs:  []string{"a", "b", "c"},
		Outputs: []string{"x", "y"},
	}
	assert.Equal(t, []Call{{Input: "a", Output: "x"}, {Input: "b", Output: "y"}}, h.Calls())
}

func TestHistoryRejectsCorruptCounter(t *testing.T) {
	ctx := context.Background()
	l := local.New()
	require.NoError(t, l.Set(ctx, "m", "not-a-number"))

	_, err := NewRecorder(l, RecorderOptions{}).History(ctx, "m")
	assert.ErrorContains(t, err, `counter "m"`)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("closed pipe") }

func TestReplayReturnsWriteErrors(t *testing.T) {
	ctx := context.Background()
	cc := newTestCache(t, local.New(), nil)
	assert.ErrorContains(t, ReplayTo(ctx, failingWriter{}, cc.StoreMethod()), "closed pipe")
}
