package config

import "fmt"

// Config holds all frecd configuration.
type Config struct {
	Server  ServerConfig  `toml:"server"`
	Store   StoreConfig   `toml:"store"`
	History HistoryConfig `toml:"history"`
}

type ServerConfig struct {
	Bind string `toml:"bind"`
	Port int    `toml:"port"`
}

type StoreConfig struct {
	Path         string  `toml:"path"`           // resolved at runtime via frecency.DefaultStorePath() when empty
	HalfLifeDays float64 `toml:"half_life_days"` // decay speed for ranking scores
	FlushSeconds int     `toml:"flush_seconds"`  // debounce window for background saves
}

type HistoryConfig struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"` // resolved at runtime via history.DefaultDBPath() when empty
}

// Default returns a Config with sensible defaults.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Bind: "127.0.0.1",
			Port: 37811,
		},
		Store: StoreConfig{
			Path:         "",
			HalfLifeDays: 7.0,
			FlushSeconds: 5,
		},
		History: HistoryConfig{
			Enabled: true,
			Path:    "",
		},
	}
}

// ListenAddr returns the bind:port address string.
func (c *Config) ListenAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Bind, c.Server.Port)
}
