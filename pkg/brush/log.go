package brush

import (
	"context"
	"log/slog"
)

// nopHandler discards all log records. Enabled returns false so the
// caller skips attribute formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

// nopLogger returns a logger that produces no output; used whenever a
// caller passes nil so logging calls never need a nil check.
func nopLogger() *slog.Logger { return slog.New(nopHandler{}) }
