package commands

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/profilebeacon/beacon-go/pkg/config"
	"github.com/profilebeacon/beacon-go/pkg/log"
	"github.com/profilebeacon/beacon-go/pkg/service"
)

var (
	configPath  string
	localHex    string
	logLevel    string
	protocolLog string
	displayName string
	iface       string

	cfg    config.Config
	logger *slog.Logger
)

// Execute builds the command tree and runs it.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "beacon",
		Short:         "Advertise a profile and score nearby peers",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return resolveConfig(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&configPath, "config", "c", "", "config file (.yaml, .yml or .toml)")
	pf.StringVarP(&localHex, "local", "l", "", "local profile payload as hex")
	pf.StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	pf.StringVar(&protocolLog, "protocol-log", "", "write protocol events to this file")
	pf.StringVar(&displayName, "name", "", "display name to advertise")
	pf.StringVar(&iface, "interface", "", "network interface for mDNS (default all)")

	root.AddCommand(
		matchCmd(),
		describeCmd(),
		bitsCmd(),
		buildCmd(),
		advertiseCmd(),
		scanCmd(),
		shellCmd(),
		logCmd(),
	)
	return root
}

// resolveConfig loads the config file, applies flag overrides and sets up
// the operational logger.
func resolveConfig(cmd *cobra.Command) error {
	cfg = config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("local") {
		cfg.LocalProfile = localHex
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	if flags.Changed("protocol-log") {
		cfg.ProtocolLog = protocolLog
	}
	if flags.Changed("name") {
		cfg.DisplayName = displayName
	}
	if flags.Changed("interface") {
		cfg.Interface = iface
	}

	level, err := config.ParseLogLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	logger = newLogger(cmd.ErrOrStderr(), level)
	slog.SetDefault(logger)
	return nil
}

func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// requireLocal validates the full configuration for commands that score or
// advertise.
func requireLocal() error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("%w (set --local or local_profile)", err)
	}
	return nil
}

// openProtocolLogger returns the protocol event sink for this run. Events
// always reach the operational logger at debug level, and the capture file
// when one is configured. Closing the sink reports how many events the
// capture file took.
func openProtocolLogger() (log.CloseLogger, error) {
	adapter := log.NewSlogAdapter(logger)
	if cfg.ProtocolLog == "" {
		return log.NopCloser(adapter), nil
	}

	file, err := log.NewFileLogger(cfg.ProtocolLog)
	if err != nil {
		return nil, fmt.Errorf("open protocol log: %w", err)
	}
	return &captureSink{MultiLogger: log.NewMultiLogger(adapter, file), file: file, path: cfg.ProtocolLog}, nil
}

type captureSink struct {
	*log.MultiLogger
	file *log.FileLogger
	path string
}

func (c *captureSink) Close() error {
	err := c.MultiLogger.Close()
	written, dropped := c.file.Stats()
	logger.Info("protocol log closed", "path", c.path, "events", written, "dropped", dropped)
	return err
}

// newEvaluator builds a scanner with no transports, used for one-off
// evaluation.
func newEvaluator() (*service.ScannerService, error) {
	if err := requireLocal(); err != nil {
		return nil, err
	}
	return service.NewScannerService(service.ScannerConfig{
		LocalProfile: cfg.LocalProfile,
		DisplayName:  cfg.DisplayName,
		Logger:       logger,
	})
}

func printErr(w io.Writer, err error) {
	fmt.Fprintf(w, "Error: %v\n", err)
}
