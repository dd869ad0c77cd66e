package main

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/catchase/internal/assets"
	"github.com/vovakirdan/catchase/internal/games/catchase"
	"github.com/vovakirdan/catchase/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the SSH server",
	Long: `Start an SSH server that runs one independent session per
connection, sized to the client's terminal. Sessions are silent.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.catchase/host_key

Examples:
  catchase serve                           # Listen on :23234
  catchase serve --ssh :2222               # Listen on port 2222
  catchase serve --host-key ./my_host_key  # Use a specific host key

Users can connect with:
  ssh -t localhost -p 23234`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	out, closer, err := logOutput("")
	if err != nil {
		return err
	}
	defer closer.Close() //nolint:errcheck

	logger, err := newLogger(out, "catchase-ssh")
	if err != nil {
		return err
	}

	sizes, err := assets.Sizes(cfg)
	if err != nil {
		return err
	}

	srvCfg := tui.DefaultSSHServerConfig()
	srvCfg.Address = flagSSHAddr
	srvCfg.HostKeyPath = flagHostKey
	srvCfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	srvCfg.TickRate = cfg.Screen.TickRate
	srvCfg.Hold = time.Duration(cfg.Input.HoldMillis) * time.Millisecond
	srvCfg.Logger = logger
	srvCfg.NewGame = func(l *log.Logger) tui.Game {
		return catchase.New(catchase.Options{
			Config: cfg,
			Sizes:  sizes,
			Logger: l,
		})
	}

	server, err := tui.NewSSHServer(srvCfg)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return server.ListenAndServe(ctx)
}
