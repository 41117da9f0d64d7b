package music

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// PlaybackConfig holds the persisted playback defaults a host application
// applies when it opens a new Source: the default volume new sources start
// at, and any extension aliases the host wants resolved onto a registered
// format (e.g. mapping a studio's custom ".snda" extension onto the
// registered "adx" plugin).
type PlaybackConfig struct {
	DefaultVolume int               `yaml:"defaultVolume"`
	Loop          bool              `yaml:"loop"`
	ExtensionMap  map[string]string `yaml:"extensionMap"`
}

// DefaultPlaybackConfig returns the config a host starts with absent a
// saved file: full volume, no looping, no extension aliases.
func DefaultPlaybackConfig() *PlaybackConfig {
	return &PlaybackConfig{
		DefaultVolume: MaxVolume,
		Loop:          false,
		ExtensionMap:  map[string]string{},
	}
}

// LoadPlaybackConfig reads and parses a YAML config file at path. A missing
// file is not an error: it returns DefaultPlaybackConfig() instead, since a
// host should run with sane defaults rather than fail to start. Any other
// read or parse failure is returned.
func LoadPlaybackConfig(path string) (*PlaybackConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultPlaybackConfig(), nil
		}
		return nil, fmt.Errorf("music: read config %s: %w", path, err)
	}

	cfg := DefaultPlaybackConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("music: parse config %s: %w", path, err)
	}
	if cfg.ExtensionMap == nil {
		cfg.ExtensionMap = map[string]string{}
	}
	return cfg, nil
}

// Save writes cfg to path as YAML, creating or truncating the file.
func (cfg *PlaybackConfig) Save(path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("music: marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("music: write config %s: %w", path, err)
	}
	return nil
}

// ResolveExtension maps ext through ExtensionMap if an alias is registered
// for it, otherwise returns ext unchanged.
func (cfg *PlaybackConfig) ResolveExtension(ext string) string {
	if mapped, ok := cfg.ExtensionMap[normalizeExtension(ext)]; ok {
		return mapped
	}
	return ext
}
