// Package config loads mathwhiz settings from defaults, an optional YAML
// file, a .env file and MATHWHIZ_* environment variables, in that order.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/abhisek/mathwhiz/internal/hints"
	"github.com/abhisek/mathwhiz/internal/llm"
	"github.com/abhisek/mathwhiz/internal/logging"
	"github.com/abhisek/mathwhiz/internal/problemgen"
)

// Config is the process configuration. Player preferences live in the
// store instead; Game values here only override them for one run.
type Config struct {
	DBPath string      `yaml:"db_path"`
	Game   GameConfig  `yaml:"game"`
	Hints  HintsConfig `yaml:"hints"`
	Log    LogConfig   `yaml:"log"`
	LLM    LLMConfig   `yaml:"llm"`
}

type GameConfig struct {
	// Tier overrides the stored difficulty when set.
	Tier string `yaml:"tier"`
	// SessionLength overrides the stored length when non-nil.
	SessionLength *int          `yaml:"session_length"`
	FeedbackDelay time.Duration `yaml:"feedback_delay"`
}

type HintsConfig struct {
	Enabled   bool          `yaml:"enabled"`
	Timeout   time.Duration `yaml:"timeout"`
	CacheSize int           `yaml:"cache_size"`
	CacheTTL  time.Duration `yaml:"cache_ttl"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// LLMConfig selects the hint model. API keys are only read from the
// environment.
type LLMConfig struct {
	Provider string `yaml:"provider"`
	Model    string `yaml:"model"`
}

func Default() Config {
	h := hints.DefaultConfig()
	return Config{
		Game: GameConfig{FeedbackDelay: 1500 * time.Millisecond},
		Hints: HintsConfig{
			Enabled:   true,
			Timeout:   h.Timeout,
			CacheSize: h.CacheSize,
			CacheTTL:  h.CacheTTL,
		},
		Log: LogConfig{Level: "info"},
	}
}

// DefaultPath is $XDG_CONFIG_HOME/mathwhiz/config.yaml or
// ~/.config/mathwhiz/config.yaml.
func DefaultPath() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "mathwhiz", "config.yaml")
}

// Load builds the configuration. An empty path means DefaultPath, which
// may be absent; an explicit path must exist.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			if explicit || !errors.Is(err, fs.ErrNotExist) {
				return cfg, err
			}
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// LoadDotEnv reads KEY=value pairs from the given files (".env" when none
// are named) into the environment without overriding variables that are
// already set. Missing files are skipped.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("MATHWHIZ_DB"); v != "" {
		c.DBPath = v
	}
	if v := os.Getenv("MATHWHIZ_TIER"); v != "" {
		c.Game.Tier = v
	}
	if v := os.Getenv("MATHWHIZ_SESSION_LENGTH"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("MATHWHIZ_SESSION_LENGTH: %w", err)
		}
		c.Game.SessionLength = &n
	}
	if v := os.Getenv("MATHWHIZ_HINTS"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("MATHWHIZ_HINTS: %w", err)
		}
		c.Hints.Enabled = b
	}
	if v := os.Getenv("MATHWHIZ_HINT_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("MATHWHIZ_HINT_TIMEOUT: %w", err)
		}
		c.Hints.Timeout = d
	}
	if v := os.Getenv("MATHWHIZ_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("MATHWHIZ_LOG_FILE"); v != "" {
		c.Log.File = v
	}
	return nil
}

// Validate reports the first invalid value.
func (c Config) Validate() error {
	if c.Game.Tier != "" {
		if _, err := problemgen.ParseTier(c.Game.Tier); err != nil {
			return fmt.Errorf("game.tier: %w", err)
		}
	}
	if c.Game.SessionLength != nil && *c.Game.SessionLength < 0 {
		return fmt.Errorf("game.session_length must be >= 0, got %d", *c.Game.SessionLength)
	}
	if c.Game.FeedbackDelay <= 0 {
		return fmt.Errorf("game.feedback_delay must be positive, got %s", c.Game.FeedbackDelay)
	}
	if c.Hints.Timeout <= 0 {
		return fmt.Errorf("hints.timeout must be positive, got %s", c.Hints.Timeout)
	}
	if c.Hints.CacheTTL <= 0 {
		return fmt.Errorf("hints.cache_ttl must be positive, got %s", c.Hints.CacheTTL)
	}
	if c.Hints.CacheSize <= 0 {
		return fmt.Errorf("hints.cache_size must be positive, got %d", c.Hints.CacheSize)
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	return nil
}

// TierOverride returns the configured tier, if any.
func (c Config) TierOverride() (problemgen.Tier, bool) {
	if c.Game.Tier == "" {
		return problemgen.TierEasy, false
	}
	t, err := problemgen.ParseTier(c.Game.Tier)
	return t, err == nil
}

// HintService returns the hint service settings.
func (c Config) HintService() hints.Config {
	return hints.Config{
		Timeout:   c.Hints.Timeout,
		CacheSize: c.Hints.CacheSize,
		CacheTTL:  c.Hints.CacheTTL,
	}
}

// LLMProvider merges the YAML provider and model choice into the
// environment-derived llm configuration. Environment values win.
func (c Config) LLMProvider() llm.Config {
	cfg := llm.ConfigFromEnv()
	if c.LLM.Provider != "" && os.Getenv("MATHWHIZ_LLM_PROVIDER") == "" {
		cfg.Provider = c.LLM.Provider
	}
	if c.LLM.Model != "" && os.Getenv("MATHWHIZ_LLM_MODEL") == "" {
		cfg.SetModel(c.LLM.Model)
	}
	cfg.Timeout = c.Hints.Timeout
	return cfg
}

// LogPath is the configured log file or the default location.
func (c Config) LogPath() string {
	if c.Log.File != "" {
		return c.Log.File
	}
	return logging.DefaultLogPath()
}
