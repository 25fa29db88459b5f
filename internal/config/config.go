package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
)

var (
	cfgFile = "chess-honors/config.json"
)

type InvalidConfig struct {
	err string
}

func (e *InvalidConfig) Error() string {
	return fmt.Sprintf("config error: %s", e.err)
}

type Config struct {
	ListenAddr       string   `json:"listen_addr"`
	AllowedOrigins   []string `json:"allowed_origins"`
	DataDir          string   `json:"data_dir"`
	ArchivePath      string   `json:"archive_path"`
	MatchIntervalStr string   `json:"match_interval"`

	MatchInterval time.Duration `json:"-"`
}

func Default() Config {
	return Config{
		ListenAddr:       ":3000",
		AllowedOrigins:   []string{"http://localhost:5173"},
		DataDir:          "./data",
		MatchIntervalStr: "1s",
	}
}

// Load builds the configuration from defaults, then the user's config file
// if one exists, then environment variables.
func Load() (Config, error) {
	cfg := Default()
	if path, err := xdg.SearchConfigFile(cfgFile); err == nil {
		if err := readFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}
	cfg.applyEnv(os.Getenv)
	if err := cfg.finish(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func readFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv(getenv func(string) string) {
	if v := getenv("CHESS_LISTEN_ADDR"); v != "" {
		c.ListenAddr = v
	}
	if v := getenv("CHESS_ALLOWED_ORIGINS"); v != "" {
		c.AllowedOrigins = strings.Split(v, ",")
	}
	if v := getenv("CHESS_DATA_DIR"); v != "" {
		c.DataDir = v
	}
	if v := getenv("CHESS_ARCHIVE_PATH"); v != "" {
		c.ArchivePath = v
	}
	if v := getenv("CHESS_MATCH_INTERVAL"); v != "" {
		c.MatchIntervalStr = v
	}
}

// finish fills derived fields and validates.
func (c *Config) finish() error {
	if c.ArchivePath == "" {
		c.ArchivePath = filepath.Join(c.DataDir, "archive.sqlite")
	}
	d, err := time.ParseDuration(c.MatchIntervalStr)
	if err != nil {
		return &InvalidConfig{fmt.Sprintf("match_interval %q: %v", c.MatchIntervalStr, err)}
	}
	c.MatchInterval = d
	return c.Validate()
}

func (c *Config) Validate() error {
	if c.ListenAddr == "" {
		return &InvalidConfig{"listen_addr must not be empty"}
	}
	if c.MatchInterval <= 0 {
		return &InvalidConfig{"match_interval must be positive"}
	}
	return nil
}

// Origins is AllowedOrigins in the comma separated form CORS middleware takes.
func (c *Config) Origins() string {
	return strings.Join(c.AllowedOrigins, ", ")
}
