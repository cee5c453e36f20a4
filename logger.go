package replaycache

// Fields is a minimal structured field map for logs.
type Fields map[string]any

// Logger is a tiny leveled logger; adapters for zap, logrus, zerolog and
// log/slog live under log/. If Logger is nil in Options, logging is disabled.
//
// The cache logs the initial flush (Info), disabled instrumentation (Warn),
// failed counter/history writes (Error) and skipped replays (Debug).
type Logger interface {
	Debug(msg string, f Fields)
	Info(msg string, f Fields)
	Warn(msg string, f Fields)
	Error(msg string, f Fields)
}

type NopLogger struct{}

func (NopLogger) Debug(string, Fields) {}
func (NopLogger) Info(string, Fields)  {}
func (NopLogger) Warn(string, Fields)  {}
func (NopLogger) Error(string, Fields) {}
