// Package config loads netscript.yaml.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"netscript/pkg/ramcost"
)

// FileName is the name FindConfig looks for.
const FileName = "netscript.yaml"

// Config is the top-level netscript.yaml configuration.
type Config struct {
	// LogLevel is a logrus level name.
	LogLevel string `yaml:"log_level"`

	// StorePath is the SQLite database holding server scripts.
	StorePath string `yaml:"store"`

	// Server is the server scripts are read from and run on when none is given.
	Server string `yaml:"server"`

	// CostTable is an optional YAML cost table replacing the built-in one.
	// Relative paths are taken from the config file's directory.
	CostTable string `yaml:"cost_table,omitempty"`

	// Timeout bounds a script execution. Zero means no limit.
	Timeout time.Duration `yaml:"timeout"`

	// Player is the progression RAM costs are computed for.
	Player ramcost.Player `yaml:"player"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		LogLevel:  "info",
		StorePath: "netscript.db",
		Server:    "home",
		Player:    ramcost.Player{BitNodeN: 1, SourceFiles: map[int]int{}},
	}
}

// LoadConfig reads and parses a config file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading config %s", path)
	}
	return ParseConfig(data, path)
}

// ParseConfig parses config content over the defaults. The path is used
// for error messages and to resolve relative file names.
func ParseConfig(data []byte, path string) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "parsing %s", path)
	}
	if err := cfg.validate(path); err != nil {
		return nil, err
	}

	dir := filepath.Dir(path)
	if cfg.CostTable != "" && !filepath.IsAbs(cfg.CostTable) {
		cfg.CostTable = filepath.Join(dir, cfg.CostTable)
	}
	if cfg.StorePath != "" && cfg.StorePath != ":memory:" && !filepath.IsAbs(cfg.StorePath) {
		cfg.StorePath = filepath.Join(dir, cfg.StorePath)
	}
	if cfg.Player.SourceFiles == nil {
		cfg.Player.SourceFiles = map[int]int{}
	}
	return cfg, nil
}

// FindConfig searches for FileName starting from dir and walking up to the
// filesystem root. An empty path with a nil error means none was found.
func FindConfig(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", errors.Wrap(err, "resolving directory")
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

func (c *Config) validate(path string) error {
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return errors.Wrapf(err, "%s: log_level", path)
	}
	if c.Server == "" {
		return errors.Errorf("%s: server must not be empty", path)
	}
	if c.Timeout < 0 {
		return errors.Errorf("%s: timeout must not be negative", path)
	}
	if c.Player.BitNodeN < 1 {
		return errors.Errorf("%s: player.bitnode must be at least 1", path)
	}
	for n, level := range c.Player.SourceFiles {
		if level < 0 {
			return errors.Errorf("%s: player.source_files[%d]: negative level %d", path, n, level)
		}
	}
	return nil
}

// Logger returns a logger at the configured level.
func (c *Config) Logger() *logrus.Logger {
	logger := logrus.New()
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}

// Table builds the cost table, from CostTable when one is configured.
func (c *Config) Table() (*ramcost.Table, error) {
	if c.CostTable == "" {
		return ramcost.DefaultTable()
	}
	spec, err := os.ReadFile(c.CostTable)
	if err != nil {
		return nil, errors.Wrapf(err, "reading cost table %s", c.CostTable)
	}
	return ramcost.NewTable(spec)
}
