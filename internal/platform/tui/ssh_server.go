package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/tui-kitchen/internal/audio"
	"github.com/vovakirdan/tui-kitchen/internal/config"
	"github.com/vovakirdan/tui-kitchen/internal/core"
	"github.com/vovakirdan/tui-kitchen/internal/kitchen"
	"github.com/vovakirdan/tui-kitchen/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.kitchen/host_key.
	HostKeyPath string

	// DBPath is the path to the profile database.
	DBPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// TickRate is the frame rate of every session.
	TickRate int

	Kitchen config.KitchenConfig
	Catalog *kitchen.Catalog
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		DBPath:      "~/.kitchen/kitchen.db",
		IdleTimeout: 30 * time.Minute,
		TickRate:    30,
		Kitchen:     config.DefaultKitchenConfig(),
	}
}

// SSHServer wraps a Wish SSH server for the kitchen. Every SSH user gets a
// separate profile namespace in the shared store; sessions play silently.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	store  kitchen.ProfileStore // Sqlite, or memory when the database is unavailable
	closer func() error
	logger *log.Logger
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig, logger *log.Logger) (*SSHServer, error) {
	if cfg.Catalog == nil {
		return nil, errors.New("tui: SSH server needs a recipe catalog")
	}
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "kitchen-ssh",
		})
	}

	srv := &SSHServer{
		config: cfg,
		logger: logger,
	}

	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Warn("could not open profile database, progress will not be saved", "error", err)
		srv.store = storage.NewMemory()
	} else {
		srv.store = store
		srv.closer = store.Close
	}

	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			srv.close()
			return nil, fmt.Errorf("cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".kitchen", "host_key")
	}

	if mkdirErr := os.MkdirAll(filepath.Dir(hostKeyPath), 0o700); mkdirErr != nil {
		srv.close()
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	opts := []ssh.Option{
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	}

	server, err := wish.NewServer(opts...)
	if err != nil {
		srv.close()
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates a kitchen model for each SSH session.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	model := s.sessionModel(sshSession.User(), pty.Window.Width, pty.Window.Height)
	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	}
}

// sessionModel builds the model of one remote player.
func (s *SSHServer) sessionModel(user string, width, height int) Model {
	logger := s.logger.With("user", user)
	profiles := kitchen.NewProfiles(
		s.store,
		storage.UserNamespace(user),
		s.config.Catalog.Policy(),
		kitchen.WithProfilesLogger(logger),
	)
	if err := profiles.Load(); err != nil {
		logger.Warn("could not load profile", "error", err)
	}

	return NewModel(Options{
		Runtime: core.RuntimeConfig{
			ScreenW:  width,
			ScreenH:  height,
			TickRate: s.config.TickRate,
		},
		Kitchen:  s.config.Kitchen,
		Catalog:  s.config.Catalog,
		Profiles: profiles,
		Audio:    &audio.Nop{},
		Logger:   logger,
	})
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		start := time.Now()
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
			"duration", time.Since(start).Round(time.Second),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until shutdown.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address, "recipes", s.config.Catalog.Len())

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			s.logger.Error("server error", "error", err)
		}
	}()

	<-done
	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := s.server.Shutdown(ctx)
	s.close()
	return err
}

func (s *SSHServer) close() {
	if s.closer == nil {
		return
	}
	if err := s.closer(); err != nil {
		s.logger.Warn("could not close profile database", "error", err)
	}
	s.closer = nil
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}
