package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Environment selects the log output format.
type Environment string

const (
	EnvDev  Environment = "dev"
	EnvProd Environment = "prod"
)

// Module names the component a log line originates from.
type Module string

type ServiceInfo struct {
	Name     string
	Version  string
	Revision string
}

type Config struct {
	ServiceInfo   ServiceInfo
	Environment   Environment
	Level         slog.Level
	DefaultModule Module
	Output        io.Writer
}

// NewLogger builds the process logger. Dev emits text, everything else JSON.
func NewLogger(cfg Config) *slog.Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}

	opts := &slog.HandlerOptions{Level: cfg.Level}

	var base slog.Handler
	if cfg.Environment == EnvDev {
		base = slog.NewTextHandler(out, opts)
	} else {
		base = slog.NewJSONHandler(out, opts)
	}

	h := &contextHandler{
		Handler:       base,
		defaultModule: cfg.DefaultModule,
	}

	return slog.New(h).With(
		slog.Group("service",
			slog.String("name", cfg.ServiceInfo.Name),
			slog.String("version", cfg.ServiceInfo.Version),
			slog.String("revision", cfg.ServiceInfo.Revision),
		),
		slog.String("env", string(cfg.Environment)),
	)
}

// ParseLevel maps LOG_LEVEL values onto slog levels, defaulting to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// contextHandler adds request, pass and trace identifiers carried on the
// context to every record.
type contextHandler struct {
	slog.Handler
	defaultModule Module
}

func (h *contextHandler) Handle(ctx context.Context, r slog.Record) error {
	module := h.defaultModule
	if m, ok := ctx.Value(moduleKey{}).(Module); ok && m != "" {
		module = m
	}
	if module != "" {
		r.AddAttrs(slog.String("module", string(module)))
	}
	if id := RequestIDFromContext(ctx); id != "" {
		r.AddAttrs(slog.String("request_id", id))
	}
	if id := PassIDFromContext(ctx); id != "" {
		r.AddAttrs(slog.String("pass_id", id))
	}
	r.AddAttrs(traceAttrs(ctx)...)

	return h.Handler.Handle(ctx, r)
}

func (h *contextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &contextHandler{Handler: h.Handler.WithAttrs(attrs), defaultModule: h.defaultModule}
}

func (h *contextHandler) WithGroup(name string) slog.Handler {
	return &contextHandler{Handler: h.Handler.WithGroup(name), defaultModule: h.defaultModule}
}
