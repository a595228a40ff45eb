package commands

import (
	"os/signal"
	"syscall"

	"github.com/beetlebot/travel-options/internal/server"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

func ServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve flight options and fares over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := loadApp(cmd)
			defer a.Close()

			if addr != "" {
				a.cfg.Server.Addr = addr
			}
			if a.cfg.LogLevel != "debug" {
				gin.SetMode(gin.ReleaseMode)
			}

			orch := a.buildOrchestrator(a.buildResolver())
			engine := server.NewEngine(server.NewHandler(orch, a.router), a.logger)
			srv := server.New(a.cfg.Server, engine, a.logger)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			a.logger.Info("starting travel api", "mode", a.router.Mode(), "providers", len(a.router.ActiveLegProviders()))
			return srv.Run(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from config, :8080)")
	return cmd
}

