package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/flap/internal/assets"
	"github.com/vovakirdan/flap/internal/audio"
	"github.com/vovakirdan/flap/internal/config"
	"github.com/vovakirdan/flap/internal/core"
	"github.com/vovakirdan/flap/internal/game"
	"github.com/vovakirdan/flap/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.flap/host_key.
	HostKeyPath string

	// DBPath is the path to the scores database. Empty uses Config.Storage.Path.
	DBPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// Config is the game configuration every session plays with.
	Config config.Config

	// TickRate is the simulation rate per session.
	TickRate int

	// Logger defaults to a stderr logger.
	Logger *log.Logger
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		IdleTimeout: 30 * time.Minute,
		Config:      config.Default(),
		TickRate:    60,
	}
}

// SSHServer wraps a Wish SSH server that gives every connection its own game.
// The best score and run history are shared between connections.
type SSHServer struct {
	config  SSHServerConfig
	server  *ssh.Server
	store   *storage.Store
	sprites *assets.Loader
	cancel  context.CancelFunc
	logger  *log.Logger
	closed  sync.Once
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "flap-ssh",
		})
	}

	if err := cfg.Config.Validate(); err != nil {
		return nil, err
	}

	dbPath := cfg.DBPath
	if dbPath == "" {
		dbPath = cfg.Config.Storage.Path
	}

	// Open storage
	store, err := storage.Open(dbPath)
	if err != nil {
		logger.Warn("could not open scores database", "error", err)
		// Continue without storage
	}

	ctx, cancel := context.WithCancel(context.Background())
	srv := &SSHServer{
		config:  cfg,
		store:   store,
		sprites: assets.Load(ctx, cfg.Config.Assets, logger),
		cancel:  cancel,
		logger:  logger,
	}

	// Resolve host key path
	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			srv.close()
			return nil, fmt.Errorf("cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".flap", "host_key")
	}

	// Ensure host key directory exists
	hostKeyDir := filepath.Dir(hostKeyPath)
	if mkdirErr := os.MkdirAll(hostKeyDir, 0o700); mkdirErr != nil {
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

// teaHandler creates a game for each SSH session.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	opts, err := s.sessionOptions(sshSession.User(), pty.Window.Width, pty.Window.Height)
	if err != nil {
		s.logger.Error("cannot create session", "user", sshSession.User(), "error", err)
		return nil, nil
	}

	return NewModel(opts), []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	}
}

// sessionOptions builds the model options for one connection. Remote
// sessions never play audio on the server.
func (s *SSHServer) sessionOptions(user string, width, height int) (Options, error) {
	logger := s.logger.With("user", user)

	// Avoid storing a typed nil in the interfaces
	var best game.BestStore
	var runs RunRecorder
	if s.store != nil {
		best = s.store
		runs = s.store
	}

	rt := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: s.config.TickRate,
		Seed:     time.Now().UnixNano(),
	}

	session, err := game.NewSession(game.Options{
		Config: s.config.Config,
		Seed:   rt.Seed,
		Store:  best,
		Logger: logger,
	})
	if err != nil {
		return Options{}, err
	}

	return Options{
		Session: session,
		Sprites: s.sprites,
		Audio:   audio.Nop{},
		Runs:    runs,
		Source:  "ssh",
		Runtime: rt,
		Logger:  logger,
	}, nil
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until shutdown or
// until the server fails, e.g. because the address is in use.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	// Setup signal handling for graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(done)

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		s.close()
		if errors.Is(err, ssh.ErrServerClosed) {
			return nil
		}
		s.logger.Error("server error", "error", err)
		return fmt.Errorf("ssh server: %w", err)

	case <-done:
	}

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

// close releases the sprite loader and the store, once.
func (s *SSHServer) close() {
	s.closed.Do(func() {
		s.cancel()
		if s.store != nil {
			//nolint:errcheck // Best-effort close
			s.store.Close()
		}
	})
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}
