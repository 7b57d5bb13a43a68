package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/tomz197/snake/internal/board"
	"github.com/tomz197/snake/internal/config"
	"github.com/tomz197/snake/internal/draw"
	"github.com/tomz197/snake/internal/game"
	"github.com/tomz197/snake/internal/input"
	"github.com/tomz197/snake/internal/logging"
	"github.com/tomz197/snake/internal/loop"
	"github.com/tomz197/snake/internal/score"
	"github.com/tomz197/snake/internal/sound"
	"github.com/tomz197/snake/internal/sound/beeper"
	"github.com/tomz197/snake/internal/tui"
)

var (
	colorWarn  = color.New(color.FgYellow)
	colorError = color.New(color.FgRed)
	colorTitle = color.New(color.FgGreen, color.Bold)
	colorInfo  = color.New(color.FgCyan)
)

func main() {
	configPath := flag.String("config", config.GetEnv("SNAKE_CONFIG", "snake.ini"), "ini configuration file")
	ui := flag.String("ui", "", "frontend, ansi or tcell (overrides the config)")
	withSound := flag.Bool("sound", false, "play sound effects")
	flag.Parse()

	if err := run(*configPath, *ui, *withSound); err != nil {
		colorError.Fprintf(os.Stderr, "snake: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, ui string, withSound bool) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if ui != "" {
		cfg.UI = ui
	}
	cfg.Sound = cfg.Sound || withSound

	logger, closeLog, err := logging.OpenFile(cfg.LogFile, cfg.LogLevel, "snake")
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer closeLog()

	store, err := score.Open(cfg.StoreKind, cfg.StorePath)
	if err != nil {
		colorWarn.Fprintf(os.Stderr, "High score storage unavailable (%v); this session's scores will not be kept.\n", err)
		logger.Warn("falling back to memory store", "kind", cfg.StoreKind, "path", cfg.StorePath, "err", err)
		store = score.NewMemoryStore(0)
	}
	defer store.Close()

	player := openSound(cfg.Sound, logger)

	engine := game.New(
		board.New(board.NewRNG(cfg.Seed)),
		input.NewController(),
		store,
		game.WithLogger(logger),
		game.WithTiming(cfg.Timing),
	)
	if err := engine.LoadErr(); err != nil {
		colorWarn.Fprintf(os.Stderr, "Could not read the high score (%v); starting from 0.\n", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := loop.Options{Engine: engine, Sound: player, Logger: logger}
	switch cfg.UI {
	case "tcell":
		err = playTcell(ctx, opts)
	default:
		err = playANSI(ctx, opts)
	}
	if err != nil {
		return fmt.Errorf("game: %w", err)
	}

	st := engine.Stats()
	colorTitle.Printf("High score: %d\n", engine.HighScore())
	colorInfo.Printf("Best run %d, %d food eaten, %d crashes over %d ticks\n",
		st.BestRunScore, st.FoodEaten, st.BoundaryHits+st.SelfHits, st.Ticks)
	return nil
}

func openSound(enabled bool, logger *log.Logger) sound.Player {
	if !enabled {
		return sound.Silent{}
	}
	b, err := beeper.New()
	if err != nil {
		colorWarn.Fprintf(os.Stderr, "Sound disabled: %v\n", err)
		logger.Warn("sound unavailable", "err", err)
		return sound.Silent{}
	}
	return b
}

// playANSI runs the game on the raw terminal.
func playANSI(ctx context.Context, opts loop.Options) error {
	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("enable raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	r := draw.NewRenderer(os.Stdout, draw.DefaultTermSizeFunc)
	if err := r.Setup(); err != nil {
		return err
	}
	defer r.Restore()

	opts.Input = input.StartStream(os.Stdin)
	opts.Renderer = r
	return loop.Run(ctx, opts)
}

func playTcell(ctx context.Context, opts loop.Options) error {
	scr, err := tui.New()
	if err != nil {
		return err
	}
	defer scr.Close()

	opts.Input = scr
	opts.Renderer = scr
	return loop.Run(ctx, opts)
}
