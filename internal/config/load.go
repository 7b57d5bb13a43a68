package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/ini.v1"
)

// Defaults for the entry points.
const (
	DefaultStoreKind = "sqlite"
	DefaultStorePath = "snake_game.db"
	DefaultLogLevel  = "info"
	DefaultUI        = "ansi"

	DefaultSSHHost     = "::"
	DefaultSSHPort     = "2222"
	DefaultSSHHostKey  = ".ssh/snake_host_key"
	DefaultWebHost     = "0.0.0.0"
	DefaultWebPort     = "8080"
	DefaultDisplayHost = "your-server.com"
)

// Config holds everything the binaries read at startup.
type Config struct {
	Timing Timing
	Seed   int64 // 0 seeds food placement from the clock

	StoreKind string // sqlite | ini | memory
	StorePath string

	LogLevel string
	LogFile  string // cmd/snake only; the terminal is in raw mode

	UI    string // ansi | tcell
	Sound bool

	SSHHost    string
	SSHPort    string
	SSHHostKey string

	WebHost     string
	WebPort     string
	DisplayHost string // Host name shown on the landing page
}

// Default returns the configuration used when nothing is overridden.
func Default() Config {
	return Config{
		Timing:      DefaultTiming(),
		StoreKind:   DefaultStoreKind,
		StorePath:   DefaultStorePath,
		LogLevel:    DefaultLogLevel,
		UI:          DefaultUI,
		SSHHost:     DefaultSSHHost,
		SSHPort:     DefaultSSHPort,
		SSHHostKey:  DefaultSSHHostKey,
		WebHost:     DefaultWebHost,
		WebPort:     DefaultWebPort,
		DisplayHost: DefaultDisplayHost,
	}
}

// Load builds the configuration from, in increasing precedence: defaults,
// the ini file at path, a .env file in the working directory, and SNAKE_*
// environment variables. A missing ini or .env file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return cfg, fmt.Errorf("load .env: %w", err)
	}

	if path != "" {
		file, err := loadIni(path)
		if err != nil {
			return cfg, err
		}
		applyIni(&cfg, file)
	}

	applyEnv(&cfg)

	if err := cfg.Timing.Validate(); err != nil {
		return cfg, err
	}
	switch cfg.UI {
	case "ansi", "tcell":
	default:
		return cfg, fmt.Errorf("config: unknown ui %q", cfg.UI)
	}
	return cfg, nil
}

func loadIni(path string) (*ini.File, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return ini.Empty(), nil
	}
	file, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	return file, nil
}

func applyIni(cfg *Config, file *ini.File) {
	game := file.Section("game")
	cfg.Timing.BaseInterval = game.Key("base_interval").MustDuration(cfg.Timing.BaseInterval)
	cfg.Timing.IntervalStep = game.Key("interval_step").MustDuration(cfg.Timing.IntervalStep)
	cfg.Timing.MinInterval = game.Key("min_interval").MustDuration(cfg.Timing.MinInterval)
	cfg.Timing.ResetPause = game.Key("reset_pause").MustDuration(cfg.Timing.ResetPause)
	cfg.Seed = game.Key("seed").MustInt64(cfg.Seed)

	store := file.Section("store")
	cfg.StoreKind = store.Key("kind").MustString(cfg.StoreKind)
	cfg.StorePath = store.Key("path").MustString(cfg.StorePath)

	logSec := file.Section("log")
	cfg.LogLevel = logSec.Key("level").MustString(cfg.LogLevel)
	cfg.LogFile = logSec.Key("file").MustString(cfg.LogFile)

	ui := file.Section("ui")
	cfg.UI = ui.Key("frontend").MustString(cfg.UI)
	cfg.Sound = ui.Key("sound").MustBool(cfg.Sound)

	ssh := file.Section("ssh")
	cfg.SSHHost = ssh.Key("host").MustString(cfg.SSHHost)
	cfg.SSHPort = ssh.Key("port").MustString(cfg.SSHPort)
	cfg.SSHHostKey = ssh.Key("host_key").MustString(cfg.SSHHostKey)

	web := file.Section("web")
	cfg.WebHost = web.Key("host").MustString(cfg.WebHost)
	cfg.WebPort = web.Key("port").MustString(cfg.WebPort)
	cfg.DisplayHost = web.Key("display_host").MustString(cfg.DisplayHost)
}

func applyEnv(cfg *Config) {
	cfg.Timing.BaseInterval = GetEnvDuration("SNAKE_BASE_INTERVAL", cfg.Timing.BaseInterval)
	cfg.Timing.IntervalStep = GetEnvDuration("SNAKE_INTERVAL_STEP", cfg.Timing.IntervalStep)
	cfg.Timing.MinInterval = GetEnvDuration("SNAKE_MIN_INTERVAL", cfg.Timing.MinInterval)
	cfg.Timing.ResetPause = GetEnvDuration("SNAKE_RESET_PAUSE", cfg.Timing.ResetPause)
	cfg.Seed = int64(GetEnvInt("SNAKE_SEED", int(cfg.Seed)))

	cfg.StoreKind = GetEnv("SNAKE_STORE", cfg.StoreKind)
	cfg.StorePath = GetEnv("SNAKE_STORE_PATH", cfg.StorePath)
	cfg.LogLevel = GetEnv("SNAKE_LOG_LEVEL", cfg.LogLevel)
	cfg.LogFile = GetEnv("SNAKE_LOG_FILE", cfg.LogFile)
	cfg.UI = GetEnv("SNAKE_UI", cfg.UI)
	cfg.Sound = GetEnvBool("SNAKE_SOUND", cfg.Sound)

	cfg.SSHHost = GetEnv("SSH_HOST", cfg.SSHHost)
	cfg.SSHPort = GetEnv("SSH_PORT", cfg.SSHPort)
	cfg.SSHHostKey = GetEnv("SSH_HOST_KEY", cfg.SSHHostKey)
	cfg.WebHost = GetEnv("WEB_HOST", cfg.WebHost)
	cfg.WebPort = GetEnv("WEB_PORT", cfg.WebPort)
	cfg.DisplayHost = GetEnv("SSH_DISPLAY_HOST", cfg.DisplayHost)
}
