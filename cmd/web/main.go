package main

import (
	"net"
	"net/http"
	"os"

	"github.com/tomz197/snake/internal/config"
	"github.com/tomz197/snake/internal/logging"
	"github.com/tomz197/snake/internal/score"
	"github.com/tomz197/snake/internal/web"
)

func main() {
	logger := logging.New(os.Stderr, config.DefaultLogLevel, "web")

	cfg, err := config.Load(config.GetEnv("SNAKE_CONFIG", "snake.ini"))
	if err != nil {
		logger.Fatal("load config", "err", err)
	}
	logger = logging.New(os.Stderr, cfg.LogLevel, "web")

	store, err := score.Open(cfg.StoreKind, cfg.StorePath)
	if err != nil {
		logger.Warn("high score storage unavailable, showing 0", "err", err)
		store = score.NewMemoryStore(0)
	}
	defer store.Close()

	addr := net.JoinHostPort(cfg.WebHost, cfg.WebPort)
	logger.Info("starting web server", "url", "http://"+addr, "sshHost", cfg.DisplayHost)
	if err := http.ListenAndServe(addr, web.NewHandler(store, cfg.DisplayHost, cfg.SSHPort, logger)); err != nil {
		logger.Fatal("server error", "err", err)
	}
}
