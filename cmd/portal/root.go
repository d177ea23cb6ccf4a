package main

import (
	"context"
	"fmt"
	"time"

	"edu_portal/internal/client"
	"edu_portal/internal/config"
	"edu_portal/internal/session"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// app is what every command works with
type app struct {
	cfg      config.ClientConfig
	logger   *zap.Logger
	sessions *session.Provider
	api      *client.Client
}

var (
	flagAPIURL  string
	flagTimeout time.Duration
	flagSession string
	flagVerbose bool

	current *app
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:           "portal",
	Short:         "Command line front-end of the education portal",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		current = a
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if current != nil {
			_ = current.logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runLanding(cmd)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagAPIURL, "api", "", "API base URL (env PORTAL_API_URL)")
	rootCmd.PersistentFlags().DurationVar(&flagTimeout, "timeout", 0, "per-request timeout (env PORTAL_TIMEOUT, default 10s)")
	rootCmd.PersistentFlags().StringVar(&flagSession, "session-file", "", "where the session is kept (env PORTAL_SESSION_FILE)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "print diagnostic logs")
}

func newApp(cmd *cobra.Command) (*app, error) {
	_ = config.LoadEnv()
	cfg := config.LoadClientConfig()
	if flagAPIURL != "" {
		cfg.APIURL = flagAPIURL
	}
	if flagTimeout > 0 {
		cfg.Timeout = flagTimeout
	}
	if flagSession != "" {
		cfg.SessionFile = flagSession
	}

	logger := zap.NewNop()
	if flagVerbose {
		l, err := zap.NewDevelopment()
		if err != nil {
			return nil, err
		}
		logger = l
	}

	sessions := session.NewProvider(session.NewFileStore(cfg.SessionFile), logger)
	if err := sessions.Init(); err != nil {
		return nil, fmt.Errorf("failed to restore session: %w", err)
	}

	api := client.New(cfg.APIURL, client.WithTimeout(cfg.Timeout), client.WithTokenSource(sessions))
	return &app{cfg: cfg, logger: logger, sessions: sessions, api: api}, nil
}

// commandContext returns the command's context; cobra leaves it nil when
// Execute is used without one
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// failure renders err the way a screen would show it
func failure(err error) error {
	return fmt.Errorf("%s", client.Message(err))
}
