package commands

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/beetlebot/travel-options/internal/adapters/live"
	"github.com/beetlebot/travel-options/internal/adapters/mock"
	"github.com/beetlebot/travel-options/internal/cache"
	"github.com/beetlebot/travel-options/internal/config"
	"github.com/beetlebot/travel-options/internal/core"
	"github.com/beetlebot/travel-options/internal/output"
	"github.com/spf13/cobra"
)

// app holds everything a command needs once flags and config are resolved.
type app struct {
	cfg     *config.Config
	logger  *slog.Logger
	router  *core.Router
	closers []io.Closer
}

func loadApp(cmd *cobra.Command) *app {
	modeFlag, _ := cmd.Flags().GetString("mode")
	cfg := config.Load().WithMode(modeFlag)

	a := &app{cfg: cfg, logger: newLogger(cfg.LogLevel, os.Stderr)}
	a.router = a.buildRouter()
	return a
}

func (a *app) buildRouter() *core.Router {
	router := core.NewRouter(a.cfg)

	router.RegisterLegs(mock.NewMockLegsProvider(time.Now))

	pg := live.NewPostgresLegsProvider(a.cfg.Sources.DatabaseURL)
	a.closers = append(a.closers, pg)
	router.RegisterLegs(pg)

	router.RegisterLegs(live.NewFileLegsProvider(a.cfg.Sources.LegsFile))

	return router
}

func (a *app) buildResolver(opts ...core.ResolverOption) *core.Resolver {
	opts = append([]core.ResolverOption{core.WithMinOptions(a.cfg.Resolver.MinOptions)}, opts...)
	return core.NewResolver(opts...)
}

func (a *app) buildOrchestrator(resolver *core.Resolver) *core.Orchestrator {
	opts := []core.OrchestratorOption{
		core.WithTimeout(a.cfg.ProviderTimeout()),
		core.WithLogger(a.logger),
	}

	if a.cfg.Cache.Enabled {
		c, err := a.openCache()
		if err != nil {
			a.logger.Warn("snapshot cache unavailable", "error", err)
		} else {
			a.closers = append(a.closers, c)
			opts = append(opts, core.WithSnapshotCache(c, a.cfg.CacheTTL()))
		}
	}

	return core.NewOrchestrator(a.router, resolver, opts...)
}

func (a *app) openCache() (*cache.BoltCache, error) {
	if a.cfg.Cache.Path != "" {
		return cache.Open(a.cfg.Cache.Path)
	}
	return cache.New()
}

func (a *app) Close() {
	for _, c := range a.closers {
		if err := c.Close(); err != nil {
			a.logger.Warn("close failed", "error", err)
		}
	}
}

func printer(cmd *cobra.Command) *output.Printer {
	compact, _ := cmd.Flags().GetBool("compact")
	return output.New(cmd.OutOrStdout(), compact)
}

func newLogger(level string, w io.Writer) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn", "warning":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl}))
}
