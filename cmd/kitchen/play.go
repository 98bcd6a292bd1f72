package main

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-kitchen/internal/audio"
	"github.com/vovakirdan/tui-kitchen/internal/config"
	"github.com/vovakirdan/tui-kitchen/internal/core"
	"github.com/vovakirdan/tui-kitchen/internal/kitchen"
	"github.com/vovakirdan/tui-kitchen/internal/platform/tui"
	"github.com/vovakirdan/tui-kitchen/internal/storage"
)

var flagWatch bool

var playCmd = &cobra.Command{
	Use:   "play [recipe]",
	Short: "Open the kitchen",
	Long: `Open the kitchen with the recipe menu, or start a recipe directly.

Every step is a small mouse game:
  tap    - Click the ingredient
  mix    - Drag round and round
  drag   - Press, then let go to pour
  cut    - Swipe across
  hold   - Keep the button down until the gauge is full
  draw   - Drag to draw
  wait   - Click when the needle is in the green window

Controls:
  Enter       - Cook the selected recipe
  Space       - Tap (keyboard)
  R           - Restart the recipe
  A/Tab       - Album
  M           - Mute
  Esc/B       - Back to menu
  Q/Ctrl+C    - Quit

Logs are written to ~/.kitchen/kitchen.log.

Examples:
  kitchen play
  kitchen play omelette
  kitchen play --difficulty easy
  kitchen play --recipes ./my-recipes.yaml --watch`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagWatch, "watch", false, "Reload the recipe file when it changes")
}

func runPlay(_ *cobra.Command, args []string) {
	s, err := loadSetup()
	if err != nil {
		fail("%v", err)
	}

	recipe := ""
	if len(args) == 1 {
		recipe = args[0]
		if _, ok := s.catalog.Recipe(recipe); !ok {
			fail("unknown recipe %q\nRun 'kitchen list' to see available recipes.", recipe)
		}
	}

	logOut, closeLog := openLogFile()
	defer closeLog()
	logger := newLogger(logOut, "kitchen")

	store, closeStore := openStore(s.cfg.Storage.Path, logger)
	defer closeStore()

	profiles := kitchen.NewProfiles(store, storage.DefaultNamespace, s.catalog.Policy(),
		kitchen.WithProfilesLogger(logger))
	if err := profiles.Load(); err != nil {
		logger.Warn("starting with a fresh profile", "error", err)
	}

	player, closeAudio := openAudio(s.cfg.Audio, logger)
	defer closeAudio()

	var watcher *config.Watcher
	if flagWatch {
		watcher = watchRecipes(s.catalogPath, logger)
		if watcher != nil {
			defer watcher.Close()
		}
	}

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	runErr := tui.Run(tui.Options{
		Runtime: core.RuntimeConfig{
			ScreenW:  width,
			ScreenH:  height,
			TickRate: s.cfg.Gameplay.TickRate,
		},
		Kitchen:  s.cfg,
		Catalog:  s.catalog,
		Profiles: profiles,
		Audio:    player,
		Logger:   logger,
		Watcher:  watcher,
		Recipe:   recipe,
	})
	if runErr != nil {
		fail("running kitchen: %v", runErr)
	}
}

// openLogFile opens ~/.kitchen/kitchen.log for appending. The TUI owns the
// terminal, so logs are discarded when the file cannot be opened.
func openLogFile() (io.Writer, func()) {
	home, err := os.UserHomeDir()
	if err != nil {
		return io.Discard, func() {}
	}
	dir := filepath.Join(home, ".kitchen")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return io.Discard, func() {}
	}
	f, err := os.OpenFile(filepath.Join(dir, "kitchen.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return io.Discard, func() {}
	}
	return f, func() { f.Close() }
}

// openStore opens the profile database, falling back to an in-memory store
// so the game stays playable.
func openStore(path string, logger *log.Logger) (kitchen.ProfileStore, func()) {
	store, err := storage.Open(path)
	if err != nil {
		logger.Warn("could not open profile database, progress will not be saved", "path", path, "error", err)
		return storage.NewMemory(), func() {}
	}
	return store, func() { store.Close() }
}

// openAudio opens the speaker when audio is enabled. Without a usable sound
// device the kitchen plays silently.
func openAudio(cfg config.AudioConfig, logger *log.Logger) (kitchen.Audio, func()) {
	if !cfg.Enabled {
		return silent(), func() {}
	}
	player := audio.NewPlayer(
		audio.WithVolume(cfg.Volume),
		audio.WithMuted(flagMute),
		audio.WithLogger(logger),
	)
	if err := player.Open(); err != nil {
		logger.Warn("sound disabled", "error", err)
		return silent(), func() {}
	}
	return player, func() { player.Close() }
}

func silent() kitchen.Audio {
	nop := &audio.Nop{}
	if flagMute {
		nop.ToggleMute()
	}
	return nop
}

// watchRecipes watches the recipe file for changes. The embedded catalog has
// no file to watch.
func watchRecipes(path string, logger *log.Logger) *config.Watcher {
	if path == "" {
		logger.Warn("--watch ignored: using the built-in recipes")
		return nil
	}
	w, err := config.NewWatcher(0, path)
	if err != nil {
		logger.Warn("could not watch recipes", "path", path, "error", err)
		return nil
	}
	logger.Info("watching recipes", "path", path)
	return w
}
