package app

import (
	"log/slog"
	"os"

	"github.com/shandysiswandi/godna/internal/dashboard"
)

func (a *App) initModules() {
	if !a.config.GetBool("modules.dashboard.enabled") {
		slog.Warn("dashboard module disabled, only /health and /metrics are served")
		return
	}

	stop, err := dashboard.New(dashboard.Dependency{
		Config:    a.config,
		Router:    a.router,
		Goroutine: a.goroutine,
		Context:   a.ctx,
		ID:        a.uuid,
		Numbers:   a.snowflake,
		Metrics:   a.metrics,
		Clock:     a.clock,
	})
	if err != nil {
		slog.Error("failed to init module dashboard", "error", err)
		os.Exit(1)
	}

	// Pending chat replies are drained after the HTTP server stops accepting
	// new messages.
	a.addCloser("Dashboard chat consumer", stop)
	slog.Info("dashboard module initialized")
}
