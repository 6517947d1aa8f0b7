package config

import (
	"fmt"
	"os"
	"time"

	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/flanksource/dotnet-install/pkg/index"
	"github.com/flanksource/dotnet-install/pkg/platform"
	"github.com/flanksource/dotnet-install/pkg/types"
)

const (
	// ConfigFile is the default configuration file name
	ConfigFile = "dotnet-install.yaml"
)

// Config is the dotnet-install.yaml configuration file
type Config struct {
	// IndexURL overrides the releases-index URL
	IndexURL string `json:"index_url,omitempty" yaml:"index_url,omitempty"`
	// InstallDir is the installation directory, defaulting to the platform's
	// standard location
	InstallDir string `json:"install_dir,omitempty" yaml:"install_dir,omitempty"`
	// ScriptDir is the directory holding the install scripts
	ScriptDir string `json:"script_dir,omitempty" yaml:"script_dir,omitempty"`
	// Quality is the default build-quality tier
	Quality string `json:"quality,omitempty" yaml:"quality,omitempty"`
	// Timeout bounds install script execution (duration string, e.g. "5m")
	Timeout string `json:"timeout,omitempty" yaml:"timeout,omitempty"`
	// Platform overrides the detected OS and architecture
	Platform platform.Platform `json:"platform,omitempty" yaml:"platform,omitempty"`
	// Proxy overrides proxy settings read from the environment
	Proxy types.ProxySettings `json:"proxy,omitempty" yaml:"proxy,omitempty"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		IndexURL: index.DefaultIndexURL,
		Timeout:  "5m",
		Platform: platform.Current(),
	}
}

// TimeoutDuration parses the configured timeout, falling back to 5 minutes
// when the value is missing or malformed.
func (c *Config) TimeoutDuration() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil || d <= 0 {
		return 5 * time.Minute
	}
	return d
}

// Load reads the configuration file and applies defaults and environment
// overrides. A missing file is not an error: defaults apply.
func Load(path string) (*Config, error) {
	config := Default()

	explicit := path != ""
	if path == "" {
		path = ConfigFile
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
		log.Debugf("Loaded configuration from %s", path)
	case os.IsNotExist(err) && !explicit:
		log.Debugf("No %s found, using defaults", ConfigFile)
	default:
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	applyDefaults(config)
	applyEnvOverrides(config)

	return config, nil
}

func applyDefaults(config *Config) {
	if config.IndexURL == "" {
		config.IndexURL = index.DefaultIndexURL
	}
	if config.Timeout == "" {
		config.Timeout = "5m"
	}
	if config.Platform.OS == "" || config.Platform.Arch == "" {
		config.Platform = platform.Current()
	}
	config.Platform = config.Platform.Normalize()

	if config.InstallDir == "" {
		config.InstallDir = config.Platform.DefaultInstallDir()
	}
}

// applyEnvOverrides layers environment variables over the file values.
// DOTNET_INSTALL_DIR wins over the configured install directory, matching
// the install scripts' own precedence.
func applyEnvOverrides(config *Config) {
	if dir := os.Getenv("DOTNET_INSTALL_DIR"); dir != "" {
		log.Debugf("Using DOTNET_INSTALL_DIR=%s", dir)
		config.InstallDir = dir
	}
	if config.Proxy.IsZero() {
		config.Proxy = types.ProxyFromEnv()
	}
}
