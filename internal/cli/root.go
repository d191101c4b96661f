// Package cli implements the tijara command line client.
package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/me/tijara/internal/config"
	"github.com/me/tijara/internal/logging"
)

var (
	flagServer    string
	flagDBPath    string
	flagDemo      bool
	flagDebug     bool
	flagLogLevel  string
	flagLogFormat string

	logger *slog.Logger
	app    *App
)

// defaultServer returns the default backend URL: TIJARA_API_URL env,
// then the config file, then localhost.
func defaultServer() string {
	if s := os.Getenv("TIJARA_API_URL"); s != "" {
		return s
	}
	if cfg, err := config.LoadFile(); err == nil && cfg.Server != "" {
		return cfg.Server
	}
	return "http://localhost:5000"
}

// NewRootCmd creates the root cobra command for the tijara CLI.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "tijara",
		Short: "Tijara - B2B commerce platform client",
		Long:  "Tijara manages products, shipments, and marketplace listings on the Tijara platform.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if flagDebug {
				flagLogLevel = "debug"
			}
			logger = logging.New(logging.ParseLevel(flagLogLevel), flagLogFormat)

			var err error
			app, err = NewApp(flagServer, flagDBPath, flagDemo, logger)
			return err
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app != nil {
				app.Close()
			}
		},
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&flagServer, "server", defaultServer(), "Backend URL (or TIJARA_API_URL env)")
	root.PersistentFlags().StringVar(&flagDBPath, "db", "", "Credential store path (default ~/.tijara/credentials.db)")
	root.PersistentFlags().BoolVar(&flagDemo, "demo", false, "Enable demo-account fallback when the backend is unreachable")
	root.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")
	root.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&flagLogFormat, "log-format", "text", "Log format (text, json)")

	root.AddCommand(
		newLoginCmd(),
		newRegisterCmd(),
		newLogoutCmd(),
		newWhoamiCmd(),
		newProductsCmd(),
		newShipmentsCmd(),
		newMarketCmd(),
		newDashboardCmd(),
		newNotificationsCmd(),
		newSearchCmd(),
		newHealthCmd(),
	)

	return root
}
