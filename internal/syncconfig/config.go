// Package syncconfig holds the cloud sync settings file. Settings live
// outside the export pipeline: the pipeline never reads or writes them.
package syncconfig

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Provider configures one cloud storage provider.
type Provider struct {
	Enabled     bool     `yaml:"enabled"`
	AccessToken string   `yaml:"access_token,omitempty"`
	Folder      string   `yaml:"folder"`
	SyncFormats []string `yaml:"sync_formats"`
	LastSync    string   `yaml:"last_sync,omitempty"`
}

// Settings is the on-disk sync configuration.
type Settings struct {
	Enabled      bool     `yaml:"enabled"`
	SyncOnExport bool     `yaml:"sync_on_export"`
	Yandex       Provider `yaml:"yandex"`
}

// Default returns the settings used when no config file exists.
func Default() Settings {
	return Settings{
		SyncOnExport: true,
		Yandex: Provider{
			Folder:      "DeepSeek-Exports",
			SyncFormats: []string{"json", "doc"},
		},
	}
}

// DefaultPath returns the default settings file location.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".deepseek-export", "sync.yaml"), nil
}

// Load reads settings from path, falling back to defaults when the file does
// not exist.
func Load(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return Settings{}, fmt.Errorf("failed to read sync settings: %w", err)
	}

	settings := Default()
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return Settings{}, fmt.Errorf("failed to parse sync settings: %w", err)
	}
	return settings, nil
}

// Save writes settings to path, creating the parent directory if needed.
func Save(path string, settings Settings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}

	data, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to encode sync settings: %w", err)
	}

	return os.WriteFile(path, data, 0600)
}
