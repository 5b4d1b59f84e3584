package main

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const defaultURL = "http://localhost:3040"

// configFile is ~/.motif/config.yaml. Both the flat form (url, api_key) and
// named profiles are accepted; a profile wins over the flat keys.
type configFile struct {
	URL           string                   `yaml:"url,omitempty"`
	APIKey        string                   `yaml:"api_key,omitempty"`
	Profiles      map[string]configProfile `yaml:"profiles,omitempty"`
	ActiveProfile string                   `yaml:"active_profile,omitempty"`
}

type configProfile struct {
	URL    string `yaml:"url"`
	APIKey string `yaml:"api_key"`
}

// settings returns the URL and key of the active profile, falling back to
// the flat keys.
func (c *configFile) settings() (url, apiKey string) {
	url, apiKey = c.URL, c.APIKey

	name := c.ActiveProfile
	if name == "" {
		name = "default"
	}
	if p, ok := c.Profiles[name]; ok {
		if p.URL != "" {
			url = p.URL
		}
		if p.APIKey != "" {
			apiKey = p.APIKey
		}
	}
	return url, apiKey
}

func configPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".motif", "config.yaml"), nil
}

// loadConfigFile reads and parses the config file. The returned path is set
// even when reading fails.
func loadConfigFile() (string, *configFile, error) {
	path, err := configPath()
	if err != nil {
		return "", nil, err
	}
	data, err := os.ReadFile(path) //nolint:gosec // fixed path under the user's home.
	if err != nil {
		return path, nil, err
	}
	var cfg configFile
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return path, nil, err
	}
	return path, &cfg, nil
}

// resolveSettings applies flag, then env, then config file precedence.
func resolveSettings(url, apiKey string, cfg *configFile) (string, string) {
	if url == defaultURL {
		if v := os.Getenv("MOTIF_URL"); v != "" {
			url = v
		}
	}
	if apiKey == "" {
		apiKey = os.Getenv("MOTIF_API_KEY")
	}

	if cfg != nil {
		fileURL, fileKey := cfg.settings()
		if url == defaultURL && fileURL != "" {
			url = fileURL
		}
		if apiKey == "" && fileKey != "" {
			apiKey = fileKey
		}
	}
	return url, apiKey
}

func resolveConfig() {
	_, cfg, _ := loadConfigFile() //nolint:errcheck // a missing or broken file leaves the defaults.
	flagURL, flagKey = resolveSettings(flagURL, flagKey, cfg)
}

func writeConfig(url, apiKey string) (string, error) {
	path, err := configPath()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return "", err
	}

	cfg := configFile{
		Profiles:      map[string]configProfile{"default": {URL: url, APIKey: apiKey}},
		ActiveProfile: "default",
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", err
	}
	return path, nil
}
