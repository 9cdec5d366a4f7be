package jobs

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"
)

// slogCronLogger adapts slog to the cron.Logger interface so the job
// wrappers (skip, recover) report through the application logger.
type slogCronLogger struct {
	logger *slog.Logger
}

var _ cron.Logger = slogCronLogger{}

func (l slogCronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.LogAttrs(context.Background(), slog.LevelDebug, msg, attrs(keysAndValues)...)
}

func (l slogCronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	kv := append([]interface{}{"error", err}, keysAndValues...)
	l.logger.LogAttrs(context.Background(), slog.LevelError, msg, attrs(kv)...)
}

func attrs(keysAndValues []interface{}) []slog.Attr {
	out := make([]slog.Attr, 0, len(keysAndValues)/2)
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			continue
		}
		out = append(out, slog.Any(key, keysAndValues[i+1]))
	}
	return out
}

// newJobCron builds a seconds-resolution scheduler whose jobs skip
// overlapping runs and survive panics.
func newJobCron(logger *slog.Logger) *cron.Cron {
	cronLogger := slogCronLogger{logger: logger}
	return cron.New(
		cron.WithSeconds(),
		cron.WithChain(cron.SkipIfStillRunning(cronLogger), cron.Recover(cronLogger)),
	)
}
