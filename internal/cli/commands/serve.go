package commands

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leaprecord/internal/api"
	intconfig "github.com/leapstack-labs/leaprecord/internal/config"
)

// NewServeCommand creates the serve command.
func NewServeCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve employees and reviews over a JSON HTTP API",
		Long: `Start an HTTP server exposing employees and reviews as JSON.

Routes:
  GET    /healthz
  GET    /api/employees            POST /api/employees
  GET    /api/employees/{id}       PUT, DELETE /api/employees/{id}
  GET    /api/employees/{id}/reviews
  GET    /api/reviews[?employee_id=N]
  POST   /api/reviews
  GET    /api/reviews/{id}         PUT, DELETE /api/reviews/{id}

The server stops gracefully on SIGINT or SIGTERM.`,
		Example: `  leaprecord serve
  leaprecord serve --addr :9090`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmdCtx, cleanup, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			defer cleanup()
			if err := cmdCtx.RequireTables(cmd.Context()); err != nil {
				return err
			}

			srvCfg := *intconfig.DefaultServerConfig()
			if cmdCtx.Cfg.Server != nil {
				srvCfg = *cmdCtx.Cfg.Server
			}
			if cmd.Flags().Changed("addr") {
				srvCfg.Addr = addr
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			server := api.NewServer(api.Config{
				Records:         cmdCtx.Records,
				Addr:            srvCfg.Addr,
				ReadTimeout:     srvCfg.ReadTimeout,
				WriteTimeout:    srvCfg.WriteTimeout,
				ShutdownTimeout: srvCfg.ShutdownTimeout,
				Logger:          cmdCtx.Logger,
			})

			cmdCtx.Renderer.Success("Listening on http://" + srvCfg.Addr)
			cmdCtx.Renderer.Muted("Press Ctrl+C to stop")
			return server.Serve(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides server.addr)")
	return cmd
}
