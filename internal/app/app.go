package app

import (
	"context"
	"net/http"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/shandysiswandi/godna/internal/pkg/pkgconfig"
	"github.com/shandysiswandi/godna/internal/pkg/pkglog"
	"github.com/shandysiswandi/godna/internal/pkg/pkgmetric"
	"github.com/shandysiswandi/godna/internal/pkg/pkgrouter"
	"github.com/shandysiswandi/godna/internal/pkg/pkgroutine"
	"github.com/shandysiswandi/godna/internal/pkg/pkguid"
)

const defaultShutdownTimeout = 10 * time.Second

// closer releases one resource at shutdown.
type closer struct {
	name string
	fn   func(context.Context) error
}

// App wires the dashboard service: config, shared libraries, the HTTP
// server and the enabled modules.
type App struct {
	// ctx is canceled at shutdown and stops background loops such as the
	// pipeline stepper.
	ctx    context.Context
	cancel context.CancelFunc

	config pkgconfig.Config

	uuid      pkguid.StringID
	snowflake pkguid.NumberID
	clock     clockwork.Clock
	metrics   *pkgmetric.Recorder
	goroutine *pkgroutine.Manager

	router     *pkgrouter.Router
	httpServer *http.Server

	// closers run in reverse registration order after the HTTP server and
	// the background goroutines have stopped.
	closers []closer
}

func New() *App {
	pkglog.InitLogging("info")

	ctx, cancel := context.WithCancel(context.Background())
	app := &App{
		ctx:    ctx,
		cancel: cancel,
	}

	app.initConfig()
	app.initLibraries()
	app.initHTTPServer()
	app.initModules()

	return app
}

// ShutdownTimeout bounds Stop; it reads server.shutdown_timeout.
func (a *App) ShutdownTimeout() time.Duration {
	if d := a.config.GetDuration("server.shutdown_timeout"); d > 0 {
		return d
	}
	return defaultShutdownTimeout
}

func (a *App) addCloser(name string, fn func(context.Context) error) {
	a.closers = append(a.closers, closer{name: name, fn: fn})
}
