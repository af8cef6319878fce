package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"kodibot/internal/logger"
	"kodibot/internal/server"
)

var (
	serveAddress  string
	serveCacheTTL time.Duration
	serveCacheMax int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve chat commands over an HTTP webhook",
	Long: `Start an HTTP server that chat frameworks can post commands to:

  POST /api/v1/commands/{command}   {"from","text","args","delivery_id"}
  GET  /api/v1/commands             chat commands and help
  GET  /api/v1/actions              remote command words
  GET  /api/v1/config/template      configuration template
  GET  /api/v1/health               health check

Each command opens its own connection to Kodi.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// A daemon always logs
		if !verbose {
			logger.SetSilentMode(false)
			logger.SetLevel(logger.LOG_INFO)
			log = logger.New()
		}

		handlers, err := newHandlers(cmd)
		if err != nil {
			log.Error().Err(err).Msg("Failed to load configuration")
			return err
		}

		srv := server.New(handlers, server.Options{
			RequestTimeout: callTimeout,
			CacheSize:      serveCacheMax,
			CacheTTL:       serveCacheTTL,
		})

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return srv.Start(ctx, serveAddress)
	},
}

func init() {
	serveCmd.Flags().StringVarP(&serveAddress, "listen", "l", ":8090", "address to listen on")
	serveCmd.Flags().DurationVar(&serveCacheTTL, "dedupe-ttl", 10*time.Minute, "how long replies are remembered per delivery id")
	serveCmd.Flags().IntVar(&serveCacheMax, "dedupe-size", 256, "maximum remembered delivery ids")

	rootCmd.AddCommand(serveCmd)
}
