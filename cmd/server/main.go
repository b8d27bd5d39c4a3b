// Invoice-portal serves the supplier invoice submission form.
//
// Usage:
//
//	invoice-portal serve [flags]
//
// See 'invoice-portal serve --help' for available options.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/garyjia/invoice-portal/internal/config"
	"github.com/garyjia/invoice-portal/internal/container"
	"github.com/garyjia/invoice-portal/pkg/utils"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "invoice-portal",
	Short: "Supplier invoice submission portal",
	Long: `Serves the supplier invoice submission form.

Suppliers identify an invoice by XML file, pasted XML, invoice UUID or PDF and
enter the purchase order and goods receipt numbers. The form is validated on the
server; valid submissions are handed to the configured submission collaborator.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}

// Serve command and flags
var (
	configPath string
	logLevel   string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the form server",
	Long: `Start the HTTP server for the invoice submission form.

Configuration is read from the YAML file given by --config, from a .env file in
the working directory and from INVOICE_PORTAL_* environment variables. A missing
config file is not an error; defaults apply.`,
	Example: `  # Start with the bundled configuration
  invoice-portal serve

  # Start with a custom file and verbose logging
  invoice-portal serve --config /etc/invoice-portal/config.yaml --log-level debug`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&configPath, "config", "configs/config.yaml", "Path to the YAML configuration file")
	serveCmd.Flags().StringVar(&logLevel, "log-level", "", "Log level override (debug, info, warn, error)")
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "invoice-portal %s\n", version)
	},
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if logLevel != "" {
		cfg.Logger.Level = logLevel
	}

	logger, err := utils.NewLogger(utils.LoggerConfig{
		Level:      cfg.Logger.Level,
		OutputPath: cfg.Logger.OutputPath,
		Format:     cfg.Logger.Format,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting invoice portal",
		zap.String("version", version),
		zap.String("address", cfg.Server.Address()),
		zap.String("language", cfg.Form.Language))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	c, err := container.NewContainer(cfg.ToContainerConfig(version), logger)
	if err != nil {
		return fmt.Errorf("failed to create container: %w", err)
	}
	if err := c.Start(ctx); err != nil {
		return fmt.Errorf("failed to start container: %w", err)
	}
	defer func() {
		if err := c.Close(); err != nil {
			logger.Error("Shutdown finished with errors", zap.Error(err))
		}
	}()

	if err := c.Server().Start(ctx); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	logger.Info("Server exited")
	return nil
}
