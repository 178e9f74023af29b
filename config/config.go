package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// TomlLimits caps the aggregation pass
type TomlLimits struct {
	PerChannel   int `toml:"per_channel,omitempty"`
	Videos       int `toml:"videos,omitempty"`
	ChannelBatch int `toml:"channel_batch,omitempty"`
}

// TomlFetch configures the translation endpoint client
type TomlFetch struct {
	Translator        string  `toml:"translator,omitempty"`
	TimeoutSeconds    int     `toml:"timeout_seconds,omitempty"`
	CooldownSeconds   int     `toml:"cooldown_seconds,omitempty"`
	RequestsPerSecond float64 `toml:"requests_per_second,omitempty"`
}

type TomlServer struct {
	Port int `toml:"port,omitempty"`
}

type TomlInstance struct {
	Directory string `toml:"directory,omitempty"`
}

// TomlConfig represents the top-level configuration file
type TomlConfig struct {
	Limits   TomlLimits   `toml:"limits"`
	Fetch    TomlFetch    `toml:"fetch"`
	Server   TomlServer   `toml:"server"`
	Instance TomlInstance `toml:"instance"`
}

// Config is the runtime configuration, built once at startup and passed by
// value to every component. Never mutated after construction.
type Config struct {
	PerChannelLimit   int
	VideoLimit        int
	ChannelBatch      int
	Translator        string
	FetchTimeout      time.Duration
	Cooldown          time.Duration
	RequestsPerSecond float64
	Port              int
	Directory         string
}

func Default() Config {
	return Config{
		PerChannelLimit:   3,
		VideoLimit:        48,
		ChannelBatch:      50,
		Translator:        "https://feed2json.org/convert",
		FetchTimeout:      10 * time.Second,
		Cooldown:          2 * time.Second,
		RequestsPerSecond: 5,
		Port:              3210,
		Directory:         "https://api.invidious.io/instances.json?sort_by=type,health",
	}
}

// Load reads the TOML file at path and overlays it on the defaults. An empty
// path means no config file and returns the defaults as-is.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("error reading config file: %w", err)
	}

	var file TomlConfig
	if err := toml.Unmarshal(data, &file); err != nil {
		return Config{}, fmt.Errorf("error parsing config file: %w", err)
	}

	if file.Limits.PerChannel > 0 {
		cfg.PerChannelLimit = file.Limits.PerChannel
	}
	if file.Limits.Videos > 0 {
		cfg.VideoLimit = file.Limits.Videos
	}
	if file.Limits.ChannelBatch > 0 {
		cfg.ChannelBatch = file.Limits.ChannelBatch
	}
	if file.Fetch.Translator != "" {
		cfg.Translator = file.Fetch.Translator
	}
	if file.Fetch.TimeoutSeconds > 0 {
		cfg.FetchTimeout = time.Duration(file.Fetch.TimeoutSeconds) * time.Second
	}
	if file.Fetch.CooldownSeconds > 0 {
		cfg.Cooldown = time.Duration(file.Fetch.CooldownSeconds) * time.Second
	}
	if file.Fetch.RequestsPerSecond > 0 {
		cfg.RequestsPerSecond = file.Fetch.RequestsPerSecond
	}
	if file.Server.Port > 0 {
		cfg.Port = file.Server.Port
	}
	if file.Instance.Directory != "" {
		cfg.Directory = file.Instance.Directory
	}

	return cfg, nil
}
