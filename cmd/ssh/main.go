package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"
	"github.com/google/uuid"

	"github.com/tomz197/snake/internal/board"
	"github.com/tomz197/snake/internal/config"
	"github.com/tomz197/snake/internal/draw"
	"github.com/tomz197/snake/internal/game"
	"github.com/tomz197/snake/internal/input"
	ilog "github.com/tomz197/snake/internal/logging"
	"github.com/tomz197/snake/internal/loop"
	"github.com/tomz197/snake/internal/score"
)

func main() {
	logger := ilog.New(os.Stderr, config.DefaultLogLevel, "ssh")

	cfg, err := config.Load(config.GetEnv("SNAKE_CONFIG", "snake.ini"))
	if err != nil {
		logger.Fatal("load config", "err", err)
	}
	logger = ilog.New(os.Stderr, cfg.LogLevel, "ssh")

	workingDir, workErr := os.Getwd()
	if workErr != nil {
		logger.Warn("get working directory", "err", workErr)
	}
	logger.Info("ssh config", "host", cfg.SSHHost, "port", cfg.SSHPort, "hostKey", cfg.SSHHostKey, "workingDir", workingDir)

	// Every session plays its own game against one shared high score.
	store, err := score.Open(cfg.StoreKind, cfg.StorePath)
	if err != nil {
		logger.Warn("high score storage unavailable, using memory", "kind", cfg.StoreKind, "path", cfg.StorePath, "err", err)
		store = score.NewMemoryStore(0)
	}
	defer store.Close()

	h := &host{cfg: cfg, store: store, logger: logger}

	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(cfg.SSHHost, cfg.SSHPort)),
		wish.WithMiddleware(
			h.middleware,
			activeterm.Middleware(),
			logging.MiddlewareWithLogger(logger),
		),
		// Set TCP_NODELAY to reduce latency for game input
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}
	if cfg.SSHHostKey != "" {
		opts = append(opts, wish.WithHostKeyPath(cfg.SSHHostKey))
	}

	s, err := wish.NewServer(opts...)
	if err != nil {
		logger.Fatal("create server", "err", err)
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("starting SSH server", "addr", s.Addr)
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			logger.Fatal("server error", "err", err)
		}
	}()

	<-done
	logger.Info("shutting down server", "sessions", h.active())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.Shutdown(ctx); err != nil {
		logger.Error("shutdown", "err", err)
	}
}

// host runs one game per SSH session.
type host struct {
	cfg    config.Config
	store  score.Store
	logger *log.Logger

	mu       sync.Mutex
	sessions int
}

func (h *host) active() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.sessions
}

func (h *host) track(delta int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.sessions += delta
}

func (h *host) middleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		pty, winCh, ok := sess.Pty()
		if !ok {
			fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
			return
		}

		logger := h.logger.With("session", uuid.NewString(), "user", sess.User())
		logger.Info("new game session", "term", pty.Term, "width", pty.Window.Width, "height", pty.Window.Height)
		h.track(1)
		defer h.track(-1)

		sizeTracker := newSizeTracker(pty.Window.Width, pty.Window.Height)
		go func() {
			for win := range winCh {
				sizeTracker.update(win.Width, win.Height)
			}
		}()

		if err := h.play(sess, sizeTracker.getSize, logger); err != nil {
			logger.Warn("game ended with error", "err", err)
		}

		logger.Info("session ended")
		next(sess)
	}
}

func (h *host) play(sess ssh.Session, size draw.TermSizeFunc, logger *log.Logger) error {
	engine := game.New(
		board.New(board.NewRNG(h.cfg.Seed)),
		input.NewController(),
		h.store,
		game.WithLogger(logger),
		game.WithTiming(h.cfg.Timing),
	)

	r := draw.NewRenderer(sess, size)
	if err := r.Setup(); err != nil {
		return err
	}

	err := loop.Run(sess.Context(), loop.Options{
		Engine:   engine,
		Input:    input.StartStream(sess),
		Renderer: r,
		Logger:   logger,
	})
	_ = r.Restore()
	if err != nil {
		return err
	}
	fmt.Fprintf(sess, "High score: %d\r\n", engine.HighScore())
	return nil
}

// sizeTracker tracks terminal size from SSH window change events.
type sizeTracker struct {
	mu     sync.RWMutex
	width  int
	height int
}

func newSizeTracker(width, height int) *sizeTracker {
	return &sizeTracker{width: width, height: height}
}

func (s *sizeTracker) update(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = width
	s.height = height
}

func (s *sizeTracker) getSize() (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height, nil
}

var _ draw.TermSizeFunc = (*sizeTracker)(nil).getSize
