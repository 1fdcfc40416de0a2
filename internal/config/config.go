package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix marks environment overrides. Nested keys use a double
// underscore: FOLIO_AUDIO__AUTOPLAY=false sets audio.autoplay.
const EnvPrefix = "FOLIO_"

type Config struct {
	Content string `koanf:"content"` // portfolio content TOML
	Theme   string `koanf:"theme"`   // "dark" or "light"
	MPRIS   *bool  `koanf:"mpris"`   // expose media controls on D-Bus (default: true)

	Audio     AudioConfig     `koanf:"audio"`
	Preloader PreloaderConfig `koanf:"preloader"`
	Server    ServerConfig    `koanf:"server"`
}

// AudioConfig holds background track settings.
type AudioConfig struct {
	File               string        `koanf:"file"`
	Autoplay           *bool         `koanf:"autoplay"`             // play on start (default: true)
	Policy             string        `koanf:"policy"`               // "gesture" or "allow" (default: "gesture")
	Loop               bool          `koanf:"loop"`                 // restart instead of stopping at the end
	Volume             *float64      `koanf:"volume"`               // 0.0-1.0, initial level when nothing is saved
	TimeUpdateInterval time.Duration `koanf:"time_update_interval"` // default: 250ms
	SeekStep           time.Duration `koanf:"seek_step"`            // default: 5s
}

// PreloaderConfig holds loading screen timings.
type PreloaderConfig struct {
	Disabled bool          `koanf:"disabled"`
	Duration time.Duration `koanf:"duration"` // counter run time (default: 2.5s)
	Reveal   time.Duration `koanf:"reveal"`   // page reveal (default: 2.8s)
}

// ServerConfig holds the HTTP host settings.
type ServerConfig struct {
	Addr    string `koanf:"addr"`     // default: ":8080"
	GinMode string `koanf:"gin_mode"` // "release", "debug" or "test" (default: "release")
}

// Load reads the config files in priority order (last wins), then applies
// FOLIO_* environment overrides. A .env file in the working directory is
// loaded first and never overrides variables already set.
func Load() (*Config, error) {
	return load(getConfigPaths(), ".env")
}

// LoadFile is Load with an explicit config file taking highest priority.
func LoadFile(path string) (*Config, error) {
	return load(append(getConfigPaths(), expandPath(path)), ".env")
}

func load(paths []string, envFile string) (*Config, error) {
	k := koanf.New(".")

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, err
			}
		}
	}

	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}
	for key, value := range envOverrides(os.Environ()) {
		if err := k.Set(key, value); err != nil {
			return nil, err
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	cfg.Content = expandPath(cfg.Content)
	cfg.Audio.File = expandPath(cfg.Audio.File)

	return cfg, nil
}

// envOverrides maps FOLIO_A__B_C=v to "a.b_c" -> v.
func envOverrides(environ []string) map[string]string {
	out := make(map[string]string)
	for _, kv := range environ {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(name, EnvPrefix) {
			continue
		}
		key := strings.TrimPrefix(name, EnvPrefix)
		if key == "" {
			continue
		}
		key = strings.ToLower(strings.ReplaceAll(key, "__", "."))
		out[key] = value
	}
	return out
}

func getConfigPaths() []string {
	paths := []string{}

	// 1. $XDG_CONFIG_HOME/folio/config.toml
	paths = append(paths, filepath.Join(xdg.ConfigHome, "folio", "config.toml"))

	// 2. ./config.toml (pwd, highest priority)
	paths = append(paths, "config.toml")

	return paths
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// GetTheme returns the configured theme name, "dark" unless "light".
func (c *Config) GetTheme() string {
	if strings.EqualFold(c.Theme, "light") {
		return "light"
	}
	return "dark"
}

// MPRISEnabled reports whether the D-Bus adapter should start.
func (c *Config) MPRISEnabled() bool {
	return c.MPRIS == nil || *c.MPRIS
}

// HasAudio reports whether a background track is configured.
func (c *Config) HasAudio() bool {
	return c.Audio.File != ""
}

// GetAudioConfig returns the audio configuration with defaults applied.
// Unknown policies are kept as written so that opening the track rejects
// them.
func (c *Config) GetAudioConfig() AudioConfig {
	cfg := c.Audio

	if cfg.Autoplay == nil {
		autoplay := true
		cfg.Autoplay = &autoplay
	}
	cfg.Policy = strings.ToLower(strings.TrimSpace(cfg.Policy))
	if cfg.Policy == "" {
		cfg.Policy = "gesture"
	}
	if cfg.Volume == nil || *cfg.Volume < 0 || *cfg.Volume > 1 {
		volume := 1.0
		cfg.Volume = &volume
	}
	if cfg.TimeUpdateInterval <= 0 {
		cfg.TimeUpdateInterval = 250 * time.Millisecond
	}
	if cfg.SeekStep <= 0 {
		cfg.SeekStep = 5 * time.Second
	}

	return cfg
}

// GetPreloaderConfig returns the preloader timings with defaults applied.
func (c *Config) GetPreloaderConfig() PreloaderConfig {
	cfg := c.Preloader

	if cfg.Duration <= 0 {
		cfg.Duration = 2500 * time.Millisecond
	}
	if cfg.Reveal < cfg.Duration {
		cfg.Reveal = cfg.Duration + 300*time.Millisecond
	}

	return cfg
}

// GetServerConfig returns the HTTP settings with defaults applied.
func (c *Config) GetServerConfig() ServerConfig {
	cfg := c.Server

	if cfg.Addr == "" {
		cfg.Addr = ":8080"
	}
	switch cfg.GinMode {
	case "debug", "test", "release":
	default:
		cfg.GinMode = "release"
	}

	return cfg
}
