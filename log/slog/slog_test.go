package slog

import (
	"bytes"
	stdslog "log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/unkn0wn-root/replaycache"
)

func newBufferLogger(level stdslog.Level) (Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	h := stdslog.NewTextHandler(&buf, &stdslog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(_ []string, a stdslog.Attr) stdslog.Attr {
			if a.Key == stdslog.TimeKey {
				return stdslog.Attr{}
			}
			return a
		},
	})
	return Logger{L: stdslog.New(h)}, &buf
}

func TestSlogLoggerOrdersFields(t *testing.T) {
	l, buf := newBufferLogger(stdslog.LevelDebug)
	l.Warn("instrumentation disabled", replaycache.Fields{"store": "plain", "method": "Cache.store"})

	assert.Equal(t, `level=WARN msg="instrumentation disabled" method=Cache.store store=plain`+"\n", buf.String())
}

func TestSlogLoggerRespectsLevel(t *testing.T) {
	l, buf := newBufferLogger(stdslog.LevelInfo)
	l.Debug("hidden", replaycache.Fields{"k": "v"})
	l.Info("shown", nil)
	l.Error("failed", replaycache.Fields{"stage": "count"})

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "msg=shown")
	assert.True(t, strings.HasSuffix(out, "level=ERROR msg=failed stage=count\n"), out)
}
