package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
)

// levelRouter sends records below ERROR to the info handler and ERROR and
// above to the errs handler. When file is set, every record is also written
// there.
type levelRouter struct {
	level slog.Leveler
	info  slog.Handler
	errs  slog.Handler
	file  slog.Handler
}

func (lr *levelRouter) Enabled(_ context.Context, level slog.Level) bool {
	return level >= lr.level.Level()
}

func (lr *levelRouter) Handle(ctx context.Context, r slog.Record) error {
	console := lr.info
	if r.Level >= slog.LevelError {
		console = lr.errs
	}
	err := console.Handle(ctx, r)
	if lr.file != nil {
		err = errors.Join(err, lr.file.Handle(ctx, r.Clone()))
	}
	return err
}

func (lr *levelRouter) WithAttrs(attrs []slog.Attr) slog.Handler {
	return lr.derive(func(h slog.Handler) slog.Handler { return h.WithAttrs(attrs) })
}

func (lr *levelRouter) WithGroup(name string) slog.Handler {
	return lr.derive(func(h slog.Handler) slog.Handler { return h.WithGroup(name) })
}

func (lr *levelRouter) derive(fn func(slog.Handler) slog.Handler) *levelRouter {
	out := &levelRouter{level: lr.level, info: fn(lr.info), errs: fn(lr.errs)}
	if lr.file != nil {
		out.file = fn(lr.file)
	}
	return out
}

// setupLogger installs the default logger. Console output is text: records
// below ERROR go to info and the rest to errs. If logPath is non-empty the
// log file gets every record as a JSON line. The returned cleanup closes the
// file and is never nil.
func setupLogger(info, errs io.Writer, logPath string, level slog.Level) (func(), error) {
	opts := &slog.HandlerOptions{Level: level}
	handler := &levelRouter{
		level: level,
		info:  slog.NewTextHandler(info, opts),
		errs:  slog.NewTextHandler(errs, opts),
	}
	cleanup := func() {}

	if logPath != "" {
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return cleanup, fmt.Errorf("opening log file: %w", err)
		}
		cleanup = func() { f.Close() }
		handler.file = slog.NewJSONHandler(f, opts)
	}

	slog.SetDefault(slog.New(handler))
	return cleanup, nil
}
