package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"github.com/tsinit-dev/tsinit/internal/branding"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Recognized configuration keys.
const (
	KeyNPMBin          = "npm_bin"
	KeyGitBin          = "git_bin"
	KeyRegistryURL     = "registry_url"
	KeyResolver        = "resolver"
	KeyRegistryTimeout = "registry_timeout"
	KeyTemplatesDir    = "templates_dir"
	KeyLogLevel        = "log_level"
)

// Resolver backends accepted by the resolver key.
const (
	ResolverNPM  = "npm"
	ResolverHTTP = "http"
)

// Settings is the typed view of the configuration used by a bootstrap run.
type Settings struct {
	NPMBin          string
	GitBin          string
	RegistryURL     string
	Resolver        string
	RegistryTimeout time.Duration
	TemplatesDir    string
	LogLevel        string
}

// Dir returns the path to the config directory (~/.tsinit/).
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file (~/.tsinit/config.yaml).
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

func setDefaults() {
	viper.SetDefault(KeyNPMBin, "npm")
	viper.SetDefault(KeyGitBin, "git")
	viper.SetDefault(KeyRegistryURL, "")
	viper.SetDefault(KeyResolver, ResolverNPM)
	viper.SetDefault(KeyRegistryTimeout, "0s")
	viper.SetDefault(KeyTemplatesDir, "")
	viper.SetDefault(KeyLogLevel, "error")
}

// Load initializes Viper to read from the config file and environment.
func Load() {
	setDefaults()
	viper.SetConfigFile(FilePath())
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.AutomaticEnv()

	// Ignore error if config file doesn't exist yet.
	_ = viper.ReadInConfig()
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return viper.GetString(key)
}

// LoadSettings loads configuration and returns the typed settings.
func LoadSettings() (*Settings, error) {
	Load()

	s := &Settings{
		NPMBin:          viper.GetString(KeyNPMBin),
		GitBin:          viper.GetString(KeyGitBin),
		RegistryURL:     viper.GetString(KeyRegistryURL),
		Resolver:        strings.ToLower(viper.GetString(KeyResolver)),
		RegistryTimeout: viper.GetDuration(KeyRegistryTimeout),
		TemplatesDir:    viper.GetString(KeyTemplatesDir),
		LogLevel:        viper.GetString(KeyLogLevel),
	}

	if s.Resolver != ResolverNPM && s.Resolver != ResolverHTTP {
		return nil, fmt.Errorf("%s must be %q or %q, got %q", KeyResolver, ResolverNPM, ResolverHTTP, s.Resolver)
	}
	if s.RegistryTimeout < 0 {
		return nil, fmt.Errorf("%s must not be negative, got %s", KeyRegistryTimeout, s.RegistryTimeout)
	}
	return s, nil
}

// Set writes a config key-value pair and saves the config file. Only keys
// already present in the file and the one being set are written; values
// that come from defaults or TSINIT_* variables stay out of the file.
func Set(key, value string) error {
	if err := EnsureDir(); err != nil {
		return err
	}

	configFile := FilePath()
	file := viper.New()
	file.SetConfigFile(configFile)
	file.SetConfigType(fileType)
	if _, err := os.Stat(configFile); err == nil {
		if err := file.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config file %s: %w", configFile, err)
		}
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("checking config file %s: %w", configFile, err)
	}

	file.Set(key, value)
	if err := file.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	viper.Set(key, value)
	return nil
}
