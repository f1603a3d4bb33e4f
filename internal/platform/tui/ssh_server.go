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

	"github.com/vovakirdan/tui-flight/internal/config"
	"github.com/vovakirdan/tui-flight/internal/registry"
	"github.com/vovakirdan/tui-flight/internal/replay"
	"github.com/vovakirdan/tui-flight/internal/session"
	"github.com/vovakirdan/tui-flight/internal/sim"
	"github.com/vovakirdan/tui-flight/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.flight/host_key.
	HostKeyPath string

	// DBPath is the path to the run journal. Empty disables journaling.
	DBPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// Config supplies the field and theme for each new session.
	// Nil means the built-in defaults.
	Config *config.Holder

	// Theme overrides the configured theme when set.
	Theme string

	// Logger receives server events. Nil creates a stderr logger.
	Logger *log.Logger
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		DBPath:      "~/.flight/runs.db",
		IdleTimeout: 30 * time.Minute,
	}
}

// SSHServer wraps a Wish SSH server. Every connection gets its own
// independent session; nothing is shared between players.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	logger *log.Logger

	mu    sync.Mutex // guards store
	store *storage.Store
}

// pendingRunKey stores a connection's pendingRun in its ssh.Context.
type pendingRunKey struct{}

// pendingRun journals a connection's run exactly once, whether the game
// ended in the program or the client went away mid-run.
type pendingRun struct {
	once sync.Once
	sess *session.Session
	save func(session.Result)
}

func (r *pendingRun) finish(res session.Result) {
	r.once.Do(func() {
		if res.Phase == session.PhaseRunning {
			res.Phase = session.PhaseTerminated
		}
		r.save(res)
	})
}

// abandon records the run as it stood when the program exited.
// It is a no-op if the program already finished it.
func (r *pendingRun) abandon() {
	r.finish(r.sess.Result())
}

// NewSSHServer creates a new SSH server with the given configuration.
// A journal that cannot be opened is logged and play continues without it.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	if cfg.Logger == nil {
		cfg.Logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "flight-ssh",
		})
	}
	if cfg.Config == nil {
		cfg.Config = config.NewHolder("", config.DefaultFlightConfig(), cfg.Logger)
	}

	keyPath, err := hostKeyPath(cfg.HostKeyPath)
	if err != nil {
		return nil, err
	}

	srv := &SSHServer{config: cfg, logger: cfg.Logger}
	if cfg.DBPath != "" {
		if srv.store, err = storage.Open(cfg.DBPath); err != nil {
			srv.logger.Warn("could not open run journal", "error", err)
			srv.store = nil
		}
	}

	srv.server, err = wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(keyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.journalMiddleware,
			srv.loggingMiddleware,
		),
	)
	if err != nil {
		srv.closeStore()
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}
	return srv, nil
}

// hostKeyPath resolves the key location and makes sure its directory exists.
// Wish generates the key on first start.
func hostKeyPath(path string) (string, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot get home directory: %w", err)
		}
		path = filepath.Join(home, ".flight", "host_key")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return "", fmt.Errorf("cannot create host key directory: %w", err)
	}
	return path, nil
}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	if _, _, ok := sshSession.Pty(); !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	// Each session takes a copy of the config current at connect time.
	cfg := s.config.Config.Get()
	if s.config.Theme != "" {
		cfg.Theme = s.config.Theme
	}
	theme, err := registry.Get(cfg.Theme)
	if err != nil {
		s.logger.Warn("unknown theme, using classic", "theme", cfg.Theme)
		theme = registry.Theme{ID: "classic", Glyphs: sim.ClassicGlyphs()}
	}

	params := cfg.Params(theme.Glyphs)
	seed := time.Now().UnixNano()
	user := sshSession.User()
	sess := session.New(params, sim.NewRandDice(seed), session.WithLogger(s.logger.With("user", user)))

	run := &pendingRun{
		sess: sess,
		save: func(res session.Result) {
			s.journal(replay.Record(res, params, seed, theme.ID, user))
		},
	}
	sshSession.Context().SetValue(pendingRunKey{}, run)

	model := NewModel(sess,
		WithPollInterval(cfg.PollTimeout()),
		WithTitle(fmt.Sprintf("flight · %s · %s", user, theme.ID)),
		WithOnFinish(run.finish),
	)

	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
	}
}

// journalMiddleware journals runs whose program exited without finishing,
// such as when the client disconnects.
func (s *SSHServer) journalMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		next(sshSession)
		if run, ok := sshSession.Context().Value(pendingRunKey{}).(*pendingRun); ok {
			run.abandon()
		}
	}
}

// journal saves a finished run. Failures are logged, never fatal.
func (s *SSHServer) journal(rec storage.RunRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.store == nil {
		return
	}
	id, err := s.store.SaveRun(rec)
	if err != nil {
		s.logger.Warn("could not journal run", "user", rec.Player, "error", err)
		return
	}
	s.logger.Info("run journaled", "user", rec.Player, "id", id, "score", rec.Score, "outcome", rec.Outcome)
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		logger := s.logger.With(
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		started := time.Now()
		logger.Info("session started")
		next(sshSession)
		logger.Info("session ended", "duration", time.Since(started).Round(time.Second))
	}
}

// ListenAndServe serves until SIGINT or SIGTERM, then shuts down.
// The config file, if any, is watched for changes while serving.
func (s *SSHServer) ListenAndServe() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return s.Serve(ctx)
}

// Serve runs the server until ctx is cancelled.
func (s *SSHServer) Serve(ctx context.Context) error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	if path := s.config.Config.Path(); path != "" {
		s.logger.Info("watching config", "path", path)
		go func() {
			if err := s.config.Config.Watch(ctx); err != nil {
				s.logger.Warn("config watch stopped", "error", err)
			}
		}()
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		s.closeStore()
		if errors.Is(err, ssh.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server and closes the journal.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := s.server.Shutdown(ctx)
	s.closeStore()
	return err
}

func (s *SSHServer) closeStore() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.store != nil {
		s.store.Close()
		s.store = nil
	}
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}
