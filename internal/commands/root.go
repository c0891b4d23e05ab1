// Package commands contains the CLI command definitions.
package commands

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"beankit/beanutil"
)

// Environment variables read by the CLI.
const (
	EnvConfig   = "BEANKIT_CONFIG"
	EnvLogLevel = "BEANKIT_LOG_LEVEL"
)

// session is the state shared by every subcommand of one invocation.
type session struct {
	configPath string
	verbose    bool

	beans  *beanutil.Context
	logger *slog.Logger
}

// NewRootCmd creates the root command. getenv supplies defaults for the
// persistent flags.
func NewRootCmd(getenv func(string) string) *cobra.Command {
	s := &session{}

	rootCmd := &cobra.Command{
		Use:   "beankit",
		Short: "Read and write document properties with bean expressions",
		Long: `beankit addresses values inside YAML and TOML documents with bean
expressions such as customer.addresses[0].city or attrs(color), converts
values to declared types and checks documents against class definitions.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return s.load(cmd, getenv)
		},
	}

	rootCmd.PersistentFlags().StringVar(&s.configPath, "config", getenv(EnvConfig), "conversion and introspection config file (YAML)")
	rootCmd.PersistentFlags().BoolVarP(&s.verbose, "verbose", "v", false, "log skipped properties and applied defaults")

	rootCmd.AddCommand(
		newGetCmd(s),
		newSetCmd(s),
		newDescribeCmd(s),
		newClassCmd(s),
		newCheckCmd(s),
	)

	return rootCmd
}

func (s *session) load(cmd *cobra.Command, getenv func(string) string) error {
	level := slog.LevelWarn
	if s.verbose {
		level = slog.LevelDebug
	} else if v := getenv(EnvLogLevel); v != "" {
		if err := level.UnmarshalText([]byte(strings.ToUpper(v))); err != nil {
			return fmt.Errorf("invalid %s: %w", EnvLogLevel, err)
		}
	}

	s.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	opts := []beanutil.Option{beanutil.WithLogger(s.logger.With("component", "beanutil"))}

	if s.configPath != "" {
		cfg, err := beanutil.LoadConfig(s.configPath)
		if err != nil {
			return err
		}

		if _, err := cfg.ConvertOptions(); err != nil {
			return fmt.Errorf("invalid config %s: %w", s.configPath, err)
		}

		opts = append(opts, beanutil.WithConfig(cfg))
		s.logger.Debug("loaded config", slog.String("path", s.configPath))
	}

	s.beans = beanutil.New(opts...)

	return nil
}
