package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/catchase/internal/assets"
	"github.com/vovakirdan/catchase/internal/audio"
	"github.com/vovakirdan/catchase/internal/core"
	"github.com/vovakirdan/catchase/internal/games/catchase"
	"github.com/vovakirdan/catchase/internal/platform/window"
)

var windowCmd = &cobra.Command{
	Use:   "window",
	Short: "Play in a desktop window",
	Long: `Open a window drawing the full 1920x1080 world at half size. The
window can be resized; the world is scaled to fit.

Sprites and sounds come from the config. Empty paths use the built-in
sprites and synthesized sounds.

Controls:
  Left/A, Right/D       - Run
  Space/Up/Left Shift   - Jump (only while standing)
  P                     - Pause
  R                     - Restart
  Q/Esc                 - Quit

Examples:
  catchase window
  catchase window --config ./my-layout.yaml --mute`,
	Args: cobra.NoArgs,
	RunE: runWindow,
}

func init() {
	windowCmd.Flags().BoolVar(&flagMute, "mute", false, "Disable sound")
}

func runWindow(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	out, closer, err := logOutput("")
	if err != nil {
		return err
	}
	defer closer.Close() //nolint:errcheck

	logger, err := newLogger(out, "window")
	if err != nil {
		return err
	}

	sprites, err := assets.Load(cfg)
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

	game := catchase.New(catchase.Options{
		Config: cfg,
		Sizes:  sprites.Sizes,
		Sound:  player,
		Logger: logger,
	})
	game.Reset(core.RuntimeConfig{
		ScreenW:  cfg.Screen.Width,
		ScreenH:  cfg.Screen.Height,
		TickRate: cfg.Screen.TickRate,
		Seed:     seed(),
	})

	if err := window.Run(game, sprites, window.Options{
		Title:    game.Title(),
		TickRate: cfg.Screen.TickRate,
		Logger:   logger,
	}); err != nil {
		return fmt.Errorf("window: %w", err)
	}
	return nil
}
