package cli

import (
	"context"
	"firstaid_backend/internal/app"
	"firstaid_backend/internal/config"
	"firstaid_backend/pkg/logger"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

// NewServeCmd builds the subcommand that starts the HTTP server.
func NewServeCmd(configDir *string) *cobra.Command {
	var port string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configDir, port)
		},
	}
	cmd.Flags().StringVar(&port, "port", "", "override server.port")
	return cmd
}

func runServer(ctx context.Context, configDir, port string) error {
	cfg, err := config.LoadConfig(configDir)
	if err != nil {
		return err
	}
	if port != "" {
		cfg.Server.Port = port
	}

	logger.InitLogger(cfg)
	defer logger.Log.Sync()
	gin.SetMode(cfg.Server.Mode)

	application, err := app.NewApp(ctx, cfg, filepath.Join(configDir, "config.yaml"))
	if err != nil {
		return err
	}
	return application.Run(ctx)
}
