package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Client configures the desktop and terminal players.
type Client struct {
	InterpreterURL   string        `env:"TURTLEBOARD_INTERPRETER_URL"`
	DiscoveryTimeout time.Duration `env:"TURTLEBOARD_DISCOVERY_TIMEOUT" envDefault:"2s"`
	NormalDelay      time.Duration `env:"TURTLEBOARD_NORMAL_DELAY"      envDefault:"300ms"`
	FastDelay        time.Duration `env:"TURTLEBOARD_FAST_DELAY"        envDefault:"80ms"`
	ValidateDebounce time.Duration `env:"TURTLEBOARD_VALIDATE_DEBOUNCE" envDefault:"500ms"`
	ExportDir        string        `env:"TURTLEBOARD_EXPORT_DIR"        envDefault:"."`
	Sound            bool          `env:"TURTLEBOARD_SOUND"             envDefault:"false"`
	LogFile          string        `env:"TURTLEBOARD_LOG_FILE"          envDefault:"turtleboard.log"`
}

// Replay configures the development replay server.
type Replay struct {
	Port       int    `env:"REPLAYD_PORT"      envDefault:"8888"`
	Path       string `env:"REPLAYD_PATH"      envDefault:"/ws"`
	EventsFile string `env:"REPLAYD_EVENTS"`
	Advertise  bool   `env:"REPLAYD_ADVERTISE" envDefault:"true"`
}

func LoadClient() (Client, error) {
	var cfg Client
	if err := parse(&cfg); err != nil {
		return Client{}, err
	}
	if cfg.NormalDelay <= 0 || cfg.FastDelay <= 0 {
		return Client{}, fmt.Errorf("parse env: playback delays must be positive")
	}
	return cfg, nil
}

func LoadReplay() (Replay, error) {
	var cfg Replay
	if err := parse(&cfg); err != nil {
		return Replay{}, err
	}
	return cfg, nil
}

func parse(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
