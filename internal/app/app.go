package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/tldr-it-stepankutaj/whodat/internal/prefs"
	"github.com/tldr-it-stepankutaj/whodat/internal/registry"
)

// Context carries app-wide dependencies and metadata.
type Context struct {
	Ctx       context.Context
	Config    Config
	Workspace WorkspaceHandle
	Now       time.Time
	Logger    *slog.Logger

	Registry *registry.Registry
	Schema   *prefs.Schema
	Prefs    *prefs.Store
}

// WorkspaceHandle is a minimal contract the workspace package provides.
type WorkspaceHandle interface {
	Path(parts ...string) string
}
