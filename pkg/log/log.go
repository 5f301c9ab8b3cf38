package log

import "context"

// Logger is the logging contract every component in this module depends on.
// Implementations must be safe for concurrent use.
type Logger interface {
	Debug(ctx context.Context, args ...any)
	Debugf(ctx context.Context, template string, args ...any)
	Info(ctx context.Context, args ...any)
	Infof(ctx context.Context, template string, args ...any)
	Warn(ctx context.Context, args ...any)
	Warnf(ctx context.Context, template string, args ...any)
	Error(ctx context.Context, args ...any)
	Errorf(ctx context.Context, template string, args ...any)
	Fatal(ctx context.Context, args ...any)
	Fatalf(ctx context.Context, template string, args ...any)
	DPanic(ctx context.Context, args ...any)
	DPanicf(ctx context.Context, template string, args ...any)
	Panic(ctx context.Context, args ...any)
	Panicf(ctx context.Context, template string, args ...any)
}

// ZapConfig configures the zap-backed logger built by Init.
type ZapConfig struct {
	Level        string // debug | info | warn | error | dpanic | panic | fatal
	Mode         string // debug | development | production
	Encoding     string // console | json
	ColorEnabled bool
}

// Init builds the process-wide logger. Call once from main and inject the
// returned Logger into every component.
func Init(cfg ZapConfig) Logger {
	return newZapLogger(cfg)
}
