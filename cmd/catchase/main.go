// catchase is a small arcade animation: a cat chases mice that spawn from
// portals, fall under gravity and land on platforms.
//
// Usage:
//
//	catchase play      - Play in the terminal
//	catchase window    - Play in a desktop window with sprites and sound
//	catchase serve     - Start an SSH server, one session per connection
//	catchase sim       - Run headless sessions and report statistics
//	catchase history   - Show saved simulation batches
//	catchase layout    - Print the platform and portal layout
//
// Global flags:
//
//	--config <path>     - Custom config YAML
//	--fps <rate>        - Override the tick rate
//	--seed <value>      - RNG seed for reproducible spawning
//	--log-level <level> - debug, info, warn or error
//	--log-file <path>   - Write logs to a file
//	--db <path>         - Simulation history database (default: ~/.catchase/sim.db)
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/catchase/internal/config"
)

var (
	flagConfig   string
	flagFPS      int
	flagSeed     int64
	flagLogLevel string
	flagLogFile  string
	flagDBPath   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Error("catchase failed", "error", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "catchase",
	Short: "Cat Chase - a cat chasing mice across platforms",
	Long: `Cat Chase is a small real-time arcade animation. You steer a cat
that jumps between platforms and catches the mice that keep spawning from
portals. Caught mice splat and disappear a second later.

Available commands:
  play     - Play in the terminal
  window   - Play in a desktop window
  serve    - Start an SSH server for remote play
  sim      - Run headless sessions and print statistics
  history  - Show saved simulation batches
  layout   - Print the platforms and portals

Examples:
  catchase play
  catchase window --config ./my-layout.yaml
  catchase serve --ssh :2222
  catchase sim --runs 10 --ticks 90000 --trace ./trace.csv
  catchase history`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Tick rate override (0 = config tick_rate)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Log file (terminal play defaults to ~/.catchase/catchase.log)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.catchase/sim.db", "Path to simulation history database")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(windowCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(layoutCmd)
}

// loadConfig loads the configuration and applies the --fps override.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return config.Config{}, err
	}
	if flagFPS > 0 {
		cfg.Screen.TickRate = flagFPS
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// seed returns --seed, or a time-based seed when it is zero.
func seed() int64 {
	if flagSeed != 0 {
		return flagSeed
	}
	return time.Now().UnixNano()
}

// newLogger builds a logger at --log-level writing to w.
func newLogger(w io.Writer, prefix string) (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level: %w", err)
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	}), nil
}

// logOutput opens --log-file, or fallback when it is empty. An empty
// fallback means stderr. The returned closer is never nil.
func logOutput(fallback string) (io.Writer, io.Closer, error) {
	path := flagLogFile
	if path == "" {
		path = fallback
	}
	if path == "" {
		return os.Stderr, io.NopCloser(nil), nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("creating log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	return f, f, nil
}

// dataDir returns ~/.catchase, or an empty string without a home directory.
func dataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".catchase")
}
