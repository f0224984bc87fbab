package main

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/ajitpratap0/serieskit/pkg/config"
	"github.com/ajitpratap0/serieskit/pkg/logger"
	"github.com/ajitpratap0/serieskit/pkg/tracing"
)

var version = "0.1.0"

// globalFlags are shared by every command
type globalFlags struct {
	configFile string
	logLevel   string
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load() // Ignore error if .env doesn't exist

	flags := &globalFlags{}
	root := &cobra.Command{
		Use:   "serieskit",
		Short: "serieskit - typed, NA-aware columns from CSV and SQL sources",
		Long: `serieskit loads CSV files and SQL query results into typed columns,
inferring each column's type and tracking missing values, and exports them as
JSON, Apache Arrow or Avro.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVarP(&flags.configFile, "config", "c", "", "Path to a YAML configuration file")
	root.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "Log level (debug, info, warn, error); overrides the configuration")

	// Version command
	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "serieskit v%s\n", version)
			fmt.Fprintf(cmd.OutOrStdout(), "Go version: %s\n", runtime.Version())
			fmt.Fprintf(cmd.OutOrStdout(), "OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	})

	root.AddCommand(newInspectCmd(flags))
	root.AddCommand(newExportCmd(flags))
	root.AddCommand(newQueryCmd(flags))

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// session holds what one command run needs
type session struct {
	cfg      *config.Config
	log      *zap.Logger
	tracer   trace.Tracer
	registry *prometheus.Registry
	shutdown tracing.ShutdownFunc
}

// setup loads the configuration and builds the logger and tracer. Spans go
// to stderr so they never mix with exported data.
func (f *globalFlags) setup() (*session, error) {
	cfg, err := config.Load(f.configFile)
	if err != nil {
		return nil, err
	}
	if f.logLevel != "" {
		cfg.Logging.Level = f.logLevel
	}
	log, err := logger.New(cfg.Logging)
	if err != nil {
		return nil, err
	}
	tp, shutdown, err := tracing.NewProvider(cfg.Tracing, os.Stderr)
	if err != nil {
		return nil, err
	}
	return &session{
		cfg:      cfg,
		log:      log,
		tracer:   tracing.Tracer(tp),
		registry: prometheus.NewRegistry(),
		shutdown: shutdown,
	}, nil
}

// withLogger returns parent carrying the session logger
func (s *session) withLogger(parent context.Context) context.Context {
	return logger.NewContext(parent, s.log)
}

func (s *session) close() {
	if err := s.shutdown(context.Background()); err != nil {
		s.log.Warn("failed to flush spans", zap.Error(err))
	}
	_ = s.log.Sync()
}
