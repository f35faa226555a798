package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/gonkalabs/noface/internal/config"
	"github.com/gonkalabs/noface/internal/logging"
)

// NewRootCmd creates the root command for NoFace.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "noface",
		Short: "Text anonymization viewer",
		Long: `NoFace sends a .txt file to an anonymization service and shows the original,
the anonymized text with highlighted entity labels, and the text with fake
replacement values.

Configuration is read from .env and the environment (ANONYMIZER_URL, PORT,
LOG_LEVEL, LOG_FILE, CORS_ALLOW_ALL, MAX_UPLOAD_BYTES, SESSION_TTL).
Flags override the environment.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().String("anonymizer-url", "", "Anonymization service base URL (overrides ANONYMIZER_URL)")
	cmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error (overrides LOG_LEVEL)")

	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewAnonymizeCmd())
	cmd.AddCommand(NewLabelsCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig reads the environment, applies flag overrides and installs the
// logger. The returned closer releases the log file, if any.
func loadConfig(cmd *cobra.Command) (*config.Cfg, io.Closer, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("anonymizer-url") {
		u, _ := flags.GetString("anonymizer-url")
		cfg.AnonymizerURL = config.NormalizeAnonymizerURL(u)
	}
	if flags.Changed("log-level") {
		cfg.LogLevel, _ = flags.GetString("log-level")
	}
	if flags.Lookup("port") != nil && flags.Changed("port") {
		port, _ := flags.GetInt("port")
		cfg.ListenAddr = fmt.Sprintf(":%d", port)
	}

	closer, err := logging.Setup(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		return nil, nil, err
	}
	return cfg, closer, nil
}
