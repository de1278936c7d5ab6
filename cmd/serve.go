package cmd

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/openstudio-standards/osstd/internal/api"
	"github.com/openstudio-standards/osstd/standards"
)

const envAddr = "OSSTD_ADDR"

var (
	serveAddr     string        // Listen address
	serveCacheTTL time.Duration // Idle time before a cached Standard is dropped
	serveOrigins  []string      // CORS allowed origins
	serveRelease  bool          // Run gin in release mode
)

// serveCmd serves the rules and tables over HTTP.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the standards rules and tables over HTTP",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		flagFromEnv(cmd, "addr", envAddr, &serveAddr)

		var data *standards.Data
		if dataDir != "" {
			d, err := loadData()
			if err != nil {
				return err
			}
			data = d
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return api.ListenAndServe(ctx, api.Config{
			Addr:           serveAddr,
			Data:           data,
			CacheTTL:       serveCacheTTL,
			AllowedOrigins: serveOrigins,
			Release:        serveRelease,
		})
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "Listen address (default $"+envAddr+" or :8080)")
	serveCmd.Flags().DurationVar(&serveCacheTTL, "cache-ttl", 10*time.Minute, "How long an unused template stays cached")
	serveCmd.Flags().StringSliceVar(&serveOrigins, "cors-origin", nil, "Allowed CORS origins (default any)")
	serveCmd.Flags().BoolVar(&serveRelease, "release", false, "Run in release mode")
	rootCmd.AddCommand(serveCmd)
}
