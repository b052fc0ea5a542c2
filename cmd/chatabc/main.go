// Command chatabc is a terminal client for the ChatABC server.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"chatabc/internal/client"
	"chatabc/internal/config"
	"chatabc/internal/session"
	"chatabc/internal/transport"
	"chatabc/internal/transport/tcp"
	"chatabc/internal/transport/ws"
	"chatabc/internal/ui"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		host          string
		port          int
		transportKind string
		logFile       string
	)

	cmd := &cobra.Command{
		Use:           "chatabc",
		Short:         "Terminal client for the ChatABC chat server",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("host") {
				cfg.Host = host
			}
			if cmd.Flags().Changed("port") {
				cfg.Port = port
			}
			if cmd.Flags().Changed("transport") {
				cfg.Transport = transportKind
			}
			if cmd.Flags().Changed("log-file") {
				cfg.LogFile = logFile
			}
			return run(cfg)
		},
	}

	cmd.Flags().StringVar(&host, "host", "127.0.0.1", "server host")
	cmd.Flags().IntVar(&port, "port", 7777, "server port")
	cmd.Flags().StringVar(&transportKind, "transport", "tcp", "transport to use (tcp or ws)")
	cmd.Flags().StringVar(&logFile, "log-file", "chatabc.log", "diagnostic log file")
	return cmd
}

func run(cfg *config.Config) error {
	if err := setupLogging(cfg); err != nil {
		return err
	}

	conn, err := dial(cfg)
	if err != nil {
		// Startup connect failure is the one user-visible error.
		return fmt.Errorf("cannot reach server at %s: %w", cfg.Addr(), err)
	}

	sess := session.New()
	term := ui.New()
	ctl := client.NewController(conn, sess, term)
	term.SetController(ctl)
	dispatcher := client.NewDispatcher(conn, sess, term, term)

	log.Info().Str("addr", conn.RemoteAddr()).Str("transport", cfg.Transport).Msg("connected")

	ctl.Start()
	dispatcher.Start()
	defer dispatcher.Stop()

	return term.Run()
}

func dial(cfg *config.Config) (transport.Conn, error) {
	switch cfg.Transport {
	case "ws":
		return ws.Dial(context.Background(), cfg.URL())
	default:
		return tcp.Dial(cfg.Addr())
	}
}

// setupLogging sends diagnostics to a file; the terminal belongs to the TUI.
func setupLogging(cfg *config.Config) error {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: f, NoColor: true})
	return nil
}
