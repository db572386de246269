package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
	yamlv3 "gopkg.in/yaml.v3"

	"github.com/gnana997/rndocs/pkg/catalog"
	"github.com/gnana997/rndocs/pkg/debounce"
	"github.com/gnana997/rndocs/pkg/propfilter"
)

const (
	configDir  = ".rndocs"
	configFile = "config.yaml"
	envPrefix  = "RNDOCS_"
)

// Config is the resolved runtime configuration.
//
// Precedence, lowest first: built-in defaults, the project config file,
// RNDOCS_* environment variables, flags set on the command line.
type Config struct {
	CatalogDir     string `koanf:"catalog_dir" yaml:"catalog_dir,omitempty"`
	CatalogPattern string `koanf:"catalog_pattern" yaml:"catalog_pattern,omitempty"`
	DefaultID      string `koanf:"default_id" yaml:"default_id,omitempty"`
	DebounceMs     int    `koanf:"debounce_ms" yaml:"debounce_ms"`
	LogLevel       string `koanf:"log_level" yaml:"log_level"`
	LogFormat      string `koanf:"log_format" yaml:"log_format"`
	MCPLog         string `koanf:"mcp_log" yaml:"mcp_log,omitempty"`
	HTTPPort       int    `koanf:"http_port" yaml:"http_port"`
	CacheSize      int    `koanf:"cache_size" yaml:"cache_size"`
}

func defaults() map[string]any {
	return map[string]any{
		"catalog_dir":     "",
		"catalog_pattern": catalog.DefaultFragmentPattern,
		"default_id":      "",
		"debounce_ms":     int(debounce.DefaultDelay.Milliseconds()),
		"log_level":       "info",
		"log_format":      "text",
		"mcp_log":         "",
		"http_port":       8080,
		"cache_size":      propfilter.DefaultCacheSize,
	}
}

// flagAliases maps flag names that differ from their config key.
var flagAliases = map[string]string{
	"port":     "http_port",
	"debounce": "debounce_ms",
	"log":      "mcp_log",
}

// configPath returns the project config file path relative to the
// working directory.
func configPath() string {
	return filepath.Join(configDir, configFile)
}

// LoadConfig layers the configuration sources. cfgFile overrides the
// default .rndocs/config.yaml lookup; an explicit file that does not exist
// is an error, a missing default file is not. flags may be nil.
//
// The second return value is the config file that was read, if any.
func LoadConfig(cfgFile string, flags *pflag.FlagSet) (*Config, string, error) {
	k := koanf.New(".")
	known := defaults()

	if err := k.Load(confmap.Provider(known, "."), nil); err != nil {
		return nil, "", fmt.Errorf("failed to load defaults: %w", err)
	}

	used := ""
	switch {
	case cfgFile != "":
		if _, err := os.Stat(cfgFile); err != nil {
			return nil, "", fmt.Errorf("config file: %w", err)
		}
		used = cfgFile
	default:
		if _, err := os.Stat(configPath()); err == nil {
			used = configPath()
		}
	}
	if used != "" {
		if err := k.Load(file.Provider(used), yaml.Parser()); err != nil {
			return nil, "", fmt.Errorf("error reading config file %s: %w", used, err)
		}
	}

	// RNDOCS_CATALOG_DIR -> catalog_dir
	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil); err != nil {
		return nil, "", fmt.Errorf("failed to load env vars: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed {
				return "", nil
			}
			key := strings.ReplaceAll(f.Name, "-", "_")
			if alias, ok := flagAliases[f.Name]; ok {
				key = alias
			}
			if _, ok := known[key]; !ok {
				return "", nil
			}
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, "", fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, "", fmt.Errorf("unable to decode config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, "", err
	}
	return &cfg, used, nil
}

func (c *Config) validate() error {
	if c.DebounceMs < 0 {
		return fmt.Errorf("debounce_ms must not be negative, got %d", c.DebounceMs)
	}
	if c.CacheSize < 0 {
		return fmt.Errorf("cache_size must not be negative, got %d", c.CacheSize)
	}
	if c.HTTPPort < 0 || c.HTTPPort > 65535 {
		return fmt.Errorf("http_port out of range: %d", c.HTTPPort)
	}
	return nil
}

// writeConfig writes cfg to path as YAML, creating the parent directory.
// It refuses to overwrite an existing file unless force is set.
func writeConfig(path string, cfg Config, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	data, err := yamlv3.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
