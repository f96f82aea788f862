package app

import (
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"
	"github.com/rs/cors"

	"github.com/shandysiswandi/godna/internal/pkg/pkgconfig"
	"github.com/shandysiswandi/godna/internal/pkg/pkglog"
	"github.com/shandysiswandi/godna/internal/pkg/pkgmetric"
	"github.com/shandysiswandi/godna/internal/pkg/pkgrouter"
	"github.com/shandysiswandi/godna/internal/pkg/pkgroutine"
	"github.com/shandysiswandi/godna/internal/pkg/pkguid"
)

// defaults apply to keys missing from both the config file and the environment.
var defaults = map[string]any{
	"tz":                                   "UTC",
	"log.level":                            "info",
	"server.address.http":                  ":8080",
	"server.shutdown_timeout":              "10s",
	"server.cors.allowed_origins":          "*",
	"modules.dashboard.enabled":            true,
	"dashboard.fixtures.path":              "",
	"dashboard.pipeline.interval":          "2s",
	"dashboard.chat.reply_delay":           "1200ms",
	"dashboard.chat.workers":               4,
	"dashboard.chat.queue_size":            512,
	"dashboard.chat.max_retries":           3,
	"dashboard.chat.base_backoff":          "200ms",
	"dashboard.chat.dedup_window":          1024,
	"dashboard.export.pdf.page_size":       "A4",
	"dashboard.export.pdf.font_size":       16,
	"dashboard.upload.min_process_seconds": 2,
	"dashboard.upload.max_process_seconds": 10,
	"metrics.enabled":                      true,
	"snowflake.node_id":                    -1,
}

func (a *App) initConfig() {
	// .env is optional; real environment variables win over it.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("failed to load .env file", "error", err)
	}

	path := "/config/config.yaml"
	if os.Getenv("LOCAL") == "true" {
		path = "./config/config.yaml"
	}

	cfg, err := pkgconfig.NewViper(path, pkgconfig.WithDefaults(defaults))
	if err != nil {
		slog.Error("failed to init config", "error", err)
		os.Exit(1)
	}

	//nolint:errcheck,gosec // ignore error
	os.Setenv("TZ", cfg.GetString("tz"))

	pkglog.InitLogging(cfg.GetString("log.level"))

	a.config = cfg
}

func (a *App) initLibraries() {
	a.goroutine = pkgroutine.NewManager(100)
	a.uuid = pkguid.NewUUID()
	a.clock = clockwork.NewRealClock()

	var (
		sf  *pkguid.Snowflake
		err error
	)
	if node := a.config.GetInt("snowflake.node_id"); node >= 0 {
		sf, err = pkguid.NewSnowflakeWithNode(node)
	} else {
		sf, err = pkguid.NewSnowflake()
	}
	if err != nil {
		slog.Error("failed to init snowflake", "error", err)
		os.Exit(1)
	}
	a.snowflake = sf

	if a.config.GetBool("metrics.enabled") {
		a.metrics = pkgmetric.NewRecorder()
	}
}

func (a *App) initHTTPServer() {
	a.router = pkgrouter.NewRouter(a.uuid)

	if a.metrics != nil {
		a.router.Handle(http.MethodGet, "/metrics", a.metrics.Handler())
	}

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: a.config.GetArray("server.cors.allowed_origins"),
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodPatch,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: true,
	})

	a.httpServer = &http.Server{
		Addr:              a.config.GetString("server.address.http"),
		Handler:           corsHandler.Handler(a.router),
		ReadHeaderTimeout: 10 * time.Second,
	}
}
