package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// For mocking in tests
var osUserHomeDir = os.UserHomeDir
var osGetwd = os.Getwd

const (
	userConfigDir    = ".config/kubemon"
	projectConfigDir = ".kubemon"
	configFileName   = "config.yaml"
)

// LoadConfig layers the built-in defaults, the user config, the project
// config and the KUBECONFIG environment variable, in that order. Missing
// files are fine; unreadable ones are not. The --kubeconfig flag is applied
// by the caller on top of the result, matching kubectl's own precedence of
// flag over environment over defaults.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()

	userPath, err := getUserConfigPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not determine user config path: %v\n", err)
	} else if _, err := os.Stat(userPath); !os.IsNotExist(err) {
		overlay, err := loadConfigFromFile(userPath)
		if err != nil {
			return Config{}, fmt.Errorf("loading user config from %s: %w", userPath, err)
		}
		cfg = mergeConfigs(cfg, overlay)
	}

	projectPath, err := getProjectConfigPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not determine project config path: %v\n", err)
	} else if _, err := os.Stat(projectPath); !os.IsNotExist(err) {
		overlay, err := loadConfigFromFile(projectPath)
		if err != nil {
			return Config{}, fmt.Errorf("loading project config from %s: %w", projectPath, err)
		}
		cfg = mergeConfigs(cfg, overlay)
	}

	if env := os.Getenv("KUBECONFIG"); env != "" {
		cfg.Kubeconfig = env
	}

	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

var getUserConfigPath = func() (string, error) {
	homeDir, err := osUserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, userConfigDir, configFileName), nil
}

var getProjectConfigPath = func() (string, error) {
	wd, err := osGetwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(wd, projectConfigDir, configFileName), nil
}

func loadConfigFromFile(filePath string) (Config, error) {
	var cfg Config
	data, err := os.ReadFile(filePath)
	if err != nil {
		return Config{}, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// mergeConfigs merges 'overlay' into 'base'. Scalars override when set.
// The service list replaces wholesale: probe order is part of the contract,
// so a partial name-wise merge would silently reorder it.
func mergeConfigs(base, overlay Config) Config {
	merged := base
	if overlay.Kubeconfig != "" {
		merged.Kubeconfig = overlay.Kubeconfig
	}
	if overlay.Namespace != "" {
		merged.Namespace = overlay.Namespace
	}
	if overlay.Monitor.Interval > 0 {
		merged.Monitor.Interval = overlay.Monitor.Interval
	}
	if len(overlay.Services) > 0 {
		merged.Services = overlay.Services
	}
	return merged
}
