package logrus

import (
	"github.com/sirupsen/logrus"
	"github.com/unkn0wn-root/replaycache"
)

var _ replaycache.Logger = LogrusLogger{}

type LogrusLogger struct{ E *logrus.Entry }

func (l LogrusLogger) Debug(msg string, f replaycache.Fields) { l.with(f).Debug(msg) }
func (l LogrusLogger) Info(msg string, f replaycache.Fields)  { l.with(f).Info(msg) }
func (l LogrusLogger) Warn(msg string, f replaycache.Fields)  { l.with(f).Warn(msg) }
func (l LogrusLogger) Error(msg string, f replaycache.Fields) { l.with(f).Error(msg) }

// with routes an "err" field through WithError so hooks and formatters
// see it under logrus.ErrorKey.
func (l LogrusLogger) with(f replaycache.Fields) *logrus.Entry {
	e := l.E
	fields := make(logrus.Fields, len(f))
	for k, v := range f {
		if err, ok := v.(error); ok && k == "err" {
			e = e.WithError(err)
			continue
		}
		fields[k] = v
	}
	if len(fields) == 0 {
		return e
	}
	return e.WithFields(fields)
}
