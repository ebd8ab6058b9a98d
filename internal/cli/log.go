package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/semichord/pkg/observability"
)

// newLogger returns the CLI logger: timestamps as "15:04:05.00", messages
// below level dropped.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// stopwatch logs how long a command step took. Not safe for concurrent use.
type stopwatch struct {
	logger *log.Logger
	start  time.Time
}

func startStopwatch(l *log.Logger) *stopwatch {
	return &stopwatch{logger: l, start: time.Now()}
}

// done logs msg at info level with keyvals and the elapsed time, rounded
// to the millisecond, under "took".
func (s *stopwatch) done(msg string, keyvals ...any) {
	keyvals = append(keyvals, "took", time.Since(s.start).Round(time.Millisecond))
	s.logger.Info(msg, keyvals...)
}

type ctxKey int

const loggerKey ctxKey = 0

// withLogger attaches l to ctx.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext returns the logger attached to ctx, or log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

// logHooks reports pipeline stages at debug level.
type logHooks struct {
	logger *log.Logger
}

var _ observability.PipelineHooks = logHooks{}

func (h logHooks) OnLoadStart(_ context.Context, path string) {
	h.logger.Debug("loading", "path", path)
}

func (h logHooks) OnLoadComplete(_ context.Context, path string, records int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("load failed", "path", path, "err", err)
		return
	}
	h.logger.Debug("loaded", "path", path, "records", records, "took", d.Round(time.Microsecond))
}

func (h logHooks) OnRenderStart(_ context.Context, formats []string) {
	h.logger.Debug("rendering", "formats", formats)
}

func (h logHooks) OnRenderComplete(_ context.Context, formats []string, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("render failed", "formats", formats, "err", err)
		return
	}
	h.logger.Debug("rendered", "formats", formats, "took", d.Round(time.Microsecond))
}
