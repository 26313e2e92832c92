// Package config loads solitaire settings from defaults, an optional YAML
// file, a .env file and SOLITAIRE_* environment variables, in increasing
// order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const envPrefix = "SOLITAIRE"

// Config is the full application configuration.
type Config struct {
	Game    GameConfig    `mapstructure:"game"`
	Logging LoggingConfig `mapstructure:"logging"`
	Scores  ScoresConfig  `mapstructure:"scores"`
}

// GameConfig holds the per-session rules.
type GameConfig struct {
	HardMode      bool   `mapstructure:"hard_mode"`
	Seed          uint64 `mapstructure:"seed"`
	Recycle       string `mapstructure:"recycle"`
	ConfirmPolicy string `mapstructure:"confirm_policy"`
	// ReplayDir receives a replay of every finished game. Empty disables
	// recording.
	ReplayDir string `mapstructure:"replay_dir"`
}

// LoggingConfig controls the zap logger.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	// File receives log output; the terminal is owned by the game screen.
	File string `mapstructure:"file"`
}

// ScoresConfig selects where finished games are recorded.
type ScoresConfig struct {
	Backend string `mapstructure:"backend"`
	Path    string `mapstructure:"path"`
	DSN     string `mapstructure:"dsn"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("game.hard_mode", false)
	v.SetDefault("game.seed", 0)
	v.SetDefault("game.recycle", "shuffle")
	v.SetDefault("game.confirm_policy", "strict")
	v.SetDefault("game.replay_dir", "")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.file", "solitaire.log")

	v.SetDefault("scores.backend", "file")
	v.SetDefault("scores.path", "scores.json")
	v.SetDefault("scores.dsn", "")
}

// Load reads configuration. A missing file at path is not an error; an
// unreadable or malformed one is.
func Load(path string) (*Config, error) {
	// .env only fills variables that are not already set.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("read config %s: %w", path, err)
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("stat config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects values outside the known sets.
func (c *Config) Validate() error {
	if !oneOf(c.Game.Recycle, "shuffle", "reverse") {
		return fmt.Errorf("invalid game.recycle %q: want shuffle or reverse", c.Game.Recycle)
	}
	if !oneOf(c.Game.ConfirmPolicy, "strict", "permissive") {
		return fmt.Errorf("invalid game.confirm_policy %q: want strict or permissive", c.Game.ConfirmPolicy)
	}
	if !oneOf(c.Logging.Level, "debug", "info", "warn", "error") {
		return fmt.Errorf("invalid logging.level %q", c.Logging.Level)
	}
	if !oneOf(c.Logging.Format, "console", "json") {
		return fmt.Errorf("invalid logging.format %q: want console or json", c.Logging.Format)
	}
	switch c.Scores.Backend {
	case "file", "sqlite":
		if c.Scores.Path == "" {
			return fmt.Errorf("scores.path is required for the %s backend", c.Scores.Backend)
		}
	case "postgres":
		if c.Scores.DSN == "" {
			return errors.New("scores.dsn is required for the postgres backend")
		}
	default:
		return fmt.Errorf("invalid scores.backend %q: want file, sqlite or postgres", c.Scores.Backend)
	}
	return nil
}

func oneOf(v string, allowed ...string) bool {
	for _, a := range allowed {
		if v == a {
			return true
		}
	}
	return false
}
