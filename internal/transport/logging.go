package transport

import (
	"context"
	"log/slog"
	"time"
)

// LoggingCaller logs every call at debug level. The developer key is never
// logged.
type LoggingCaller struct {
	next   Caller
	logger *slog.Logger
}

// WithLogging wraps next with call logging. A nil logger disables it.
func WithLogging(next Caller, logger *slog.Logger) Caller {
	if logger == nil {
		return next
	}
	return &LoggingCaller{next: next, logger: logger}
}

// Call forwards the call and logs its outcome.
func (l *LoggingCaller) Call(ctx context.Context, method string, args map[string]any) (any, error) {
	if !l.logger.Enabled(ctx, slog.LevelDebug) {
		return l.next.Call(ctx, method, args)
	}

	start := time.Now()
	l.logger.Debug("rpc call", "stage", "request", "method", method, "args", argNames(args))
	reply, err := l.next.Call(ctx, method, args)
	elapsed := time.Since(start)
	if err != nil {
		l.logger.Debug("rpc call", "stage", "response", "method", method, "duration", elapsed, "error", err)
		return nil, err
	}
	res := Decode(reply)
	l.logger.Debug("rpc call", "stage", "response", "method", method, "duration", elapsed, "records", len(res.Records), "error_shape", res.Err() != nil)
	return reply, nil
}

func argNames(args map[string]any) []string {
	names := make([]string, 0, len(args))
	for name := range args {
		if name == DevKeyArg {
			continue
		}
		names = append(names, name)
	}
	sortIDs(names)
	return names
}
