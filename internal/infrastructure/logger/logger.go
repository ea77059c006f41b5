package logger

import (
	"os"
	"sort"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"user-registry-api/internal/application/ports"
)

type FileRotate struct {
	Filename   string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

type Options struct {
	Level  string // debug / info / warn / error
	JSON   bool
	Rotate *FileRotate // nil disables the file sink
}

// New builds the process zap logger: stdout plus an optional rotating file.
// The returned func flushes buffered entries.
func New(opt Options) (*zap.Logger, func()) {
	var lvl zapcore.Level
	if err := lvl.Set(opt.Level); err != nil {
		lvl = zapcore.InfoLevel
	}

	var enc zapcore.Encoder
	if opt.JSON {
		cfg := zap.NewProductionEncoderConfig()
		cfg.EncodeTime = zapcore.ISO8601TimeEncoder
		cfg.TimeKey = "ts"
		cfg.EncodeCaller = zapcore.ShortCallerEncoder
		enc = zapcore.NewJSONEncoder(cfg)
	} else {
		cfg := zap.NewDevelopmentEncoderConfig()
		cfg.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05.000")
		cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		cfg.EncodeCaller = zapcore.ShortCallerEncoder
		enc = zapcore.NewConsoleEncoder(cfg)
	}

	cores := []zapcore.Core{zapcore.NewCore(enc, zapcore.AddSync(os.Stdout), lvl)}
	if opt.Rotate != nil && opt.Rotate.Filename != "" {
		rotator := &lumberjack.Logger{
			Filename:   opt.Rotate.Filename,
			MaxSize:    max(1, opt.Rotate.MaxSizeMB),
			MaxBackups: max(0, opt.Rotate.MaxBackups),
			MaxAge:     max(0, opt.Rotate.MaxAgeDays),
			Compress:   opt.Rotate.Compress,
		}
		cores = append(cores, zapcore.NewCore(enc, zapcore.AddSync(rotator), lvl))
	}

	l := zap.New(zapcore.NewTee(cores...), zap.AddCaller())
	return l, func() { _ = l.Sync() }
}

// Logger adapts zap to ports.Logger.
type Logger struct {
	zl  *zap.Logger
	ctx ports.Fields
}

func NewFromZap(zl *zap.Logger) *Logger {
	if zl == nil {
		zl = zap.NewNop()
	}
	// skip the adapter frame so callers show up in the caller field
	return &Logger{zl: zl.WithOptions(zap.AddCallerSkip(2)), ctx: ports.Fields{}}
}

var _ ports.Logger = (*Logger)(nil)

func (l *Logger) Debug(msg string, payload ...ports.Fields) { l.log(zapcore.DebugLevel, msg, payload) }
func (l *Logger) Info(msg string, payload ...ports.Fields)  { l.log(zapcore.InfoLevel, msg, payload) }
func (l *Logger) Warn(msg string, payload ...ports.Fields)  { l.log(zapcore.WarnLevel, msg, payload) }
func (l *Logger) Error(msg string, payload ...ports.Fields) { l.log(zapcore.ErrorLevel, msg, payload) }

func (l *Logger) WithContext(fields ports.Fields) ports.Logger {
	return &Logger{zl: l.zl, ctx: merge(l.ctx, fields)}
}

func (l *Logger) log(lvl zapcore.Level, msg string, payload []ports.Fields) {
	ce := l.zl.Check(lvl, msg)
	if ce == nil {
		return
	}
	ce.Write(toZap(merge(l.ctx, payload...))...)
}

func merge(base ports.Fields, over ...ports.Fields) ports.Fields {
	out := make(ports.Fields, len(base))
	for k, v := range base {
		out[k] = v
	}
	for _, f := range over {
		for k, v := range f {
			out[k] = v
		}
	}
	return out
}

func toZap(f ports.Fields) []zap.Field {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]zap.Field, 0, len(keys))
	for _, k := range keys {
		if err, ok := f[k].(error); ok {
			out = append(out, zap.NamedError(k, err))
			continue
		}
		out = append(out, zap.Any(k, f[k]))
	}
	return out
}
