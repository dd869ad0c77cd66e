package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/catchase/internal/assets"
	"github.com/vovakirdan/catchase/internal/audio"
	"github.com/vovakirdan/catchase/internal/core"
	"github.com/vovakirdan/catchase/internal/games/catchase"
	"github.com/vovakirdan/catchase/internal/platform/tui"
)

var flagMute bool

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the terminal",
	Long: `Start a session in the terminal. The world is scaled down to the
terminal size; the cat and mice are drawn as glyphs.

Controls:
  Left/A, Right/D  - Run
  Space/Up/W       - Jump (only while standing)
  P                - Pause
  R                - Restart
  Ctrl+S           - Save a text screenshot
  ?                - Toggle help
  Q/Esc/Ctrl+C     - Quit

Logs go to ~/.catchase/catchase.log unless --log-file is set.

Examples:
  catchase play
  catchase play --seed 42 --log-level debug
  catchase play --mute`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagMute, "mute", false, "Disable sound")
}

func runPlay(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	fallback := ""
	if dir := dataDir(); dir != "" {
		fallback = filepath.Join(dir, "catchase.log")
	}
	out, closer, err := logOutput(fallback)
	if err != nil {
		return err
	}
	defer closer.Close() //nolint:errcheck

	logger, err := newLogger(out, "play")
	if err != nil {
		return err
	}

	sizes, err := assets.Sizes(cfg)
	if err != nil {
		return err
	}

	if flagMute {
		cfg.Audio.Enabled = false
	}
	player, err := audio.Open(cfg.Audio, logger)
	if err != nil {
		return err
	}
	defer player.Close() //nolint:errcheck

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width, height = w, h
	}

	game := catchase.New(catchase.Options{
		Config: cfg,
		Sizes:  sizes,
		Sound:  player,
		Logger: logger,
	})

	screenshots := ""
	if dir := dataDir(); dir != "" {
		screenshots = filepath.Join(dir, "screenshots")
	}

	rc := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: cfg.Screen.TickRate,
		Seed:     seed(),
	}
	if err := tui.Run(game, rc, tui.Options{
		Hold:          time.Duration(cfg.Input.HoldMillis) * time.Millisecond,
		ScreenshotDir: screenshots,
		Logger:        logger,
	}); err != nil {
		return fmt.Errorf("play: %w", err)
	}
	return nil
}
