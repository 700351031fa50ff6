package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the reserved names and limits used while assembling a contract model.
type Config struct {
	Markers  MarkersConfig  `yaml:"markers"`
	Resolver ResolverConfig `yaml:"resolver"`
	Assembly AssemblyConfig `yaml:"assembly"`
	LSP      LSPConfig      `yaml:"lsp"`
}

// MarkersConfig names the framework types that classify declarations.
type MarkersConfig struct {
	ContractInterface   string `yaml:"contract_interface"`
	ContractBase        string `yaml:"contract_base"`
	StorageInterface    string `yaml:"storage_interface"`
	ReturnableInterface string `yaml:"returnable_interface"`
	AssetAlias          string `yaml:"asset_alias"`
}

type ResolverConfig struct {
	MaxDepth       int    `yaml:"max_depth"`
	PrimaryKeyType string `yaml:"primary_key_type"`
}

type AssemblyConfig struct {
	// AllowMultipleRoots keeps the last contract root instead of failing.
	AllowMultipleRoots bool `yaml:"allow_multiple_roots"`
}

type LSPConfig struct {
	// CacheSize bounds the number of analyses kept per server. Zero disables the cache.
	CacheSize int `yaml:"cache_size"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Markers: MarkersConfig{
			ContractInterface:   "Contract",
			ContractBase:        "Contract",
			StorageInterface:    "Serializable",
			ReturnableInterface: "Returnable",
			AssetAlias:          "Asset",
		},
		Resolver: ResolverConfig{
			MaxDepth:       64,
			PrimaryKeyType: "u64",
		},
		LSP: LSPConfig{
			CacheSize: 128,
		},
	}
}

// Load reads a YAML configuration file. An empty path yields Default().
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML on top of the defaults, so omitted keys keep their default value.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Resolver.MaxDepth < 1 {
		return fmt.Errorf("invalid config: resolver.max_depth must be at least 1, got %d", c.Resolver.MaxDepth)
	}
	if c.LSP.CacheSize < 0 {
		return fmt.Errorf("invalid config: lsp.cache_size must not be negative, got %d", c.LSP.CacheSize)
	}
	required := []struct{ key, value string }{
		{"markers.contract_interface", c.Markers.ContractInterface},
		{"markers.contract_base", c.Markers.ContractBase},
		{"markers.storage_interface", c.Markers.StorageInterface},
		{"resolver.primary_key_type", c.Resolver.PrimaryKeyType},
	}
	for _, r := range required {
		if r.value == "" {
			return fmt.Errorf("invalid config: %s must not be empty", r.key)
		}
	}
	return nil
}
