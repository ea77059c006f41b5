package ports

// Fields is a structured log payload.
type Fields map[string]any

// Logger is a level-based structured logger. WithContext returns a new
// logger carrying the receiver's context merged with fields; the receiver
// is left untouched. Per-call payload wins over bound context on key clash.
type Logger interface {
	Debug(msg string, payload ...Fields)
	Info(msg string, payload ...Fields)
	Warn(msg string, payload ...Fields)
	Error(msg string, payload ...Fields)
	WithContext(fields Fields) Logger
}
