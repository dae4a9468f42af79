package app

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// ConfigFileNames are the recognized project config file names, in priority
// order.
var ConfigFileNames = []string{".uno.yaml", ".uno.yml"}

// DefaultOutput is where the defs document goes when the config doesn't say
// otherwise.
const DefaultOutput = ".uno/defs.json"

// DomainConfig describes one named domain: the glob patterns that select its
// files and, optionally, a forced test flag. When Tests is nil the per-file
// naming heuristic (IsTestPath) decides.
type DomainConfig struct {
	Globs []string `koanf:"globs"`
	Tests *bool    `koanf:"tests"`
}

// Config is the project configuration, loaded from .uno.yaml with UNO_*
// environment overrides.
type Config struct {
	Output  string                  `koanf:"output"`
	Loose   bool                    `koanf:"loose"`
	Naming  bool                    `koanf:"naming"`
	Cache   bool                    `koanf:"cache"`
	Workers int                     `koanf:"workers"`
	Domains map[string]DomainConfig `koanf:"domains"`
}

// FindConfigFile returns the config file path to use, or "" when none
// exists. An explicit path always wins.
func FindConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	for _, name := range ConfigFileNames {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// LoadConfig builds the configuration in priority order: defaults, then the
// config file (when present), then UNO_* environment variables
// (UNO_OUTPUT, UNO_LOOSE, ...). A missing config file is not an error; a
// malformed one is.
func LoadConfig(configPath string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(map[string]interface{}{
		"output": DefaultOutput,
		"cache":  true,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config %s: %w", configPath, err)
		}
	}

	// UNO_OUTPUT -> output, UNO_LOOSE -> loose, ...
	if err := k.Load(env.Provider("UNO_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "UNO_"))
	}), nil); err != nil {
		return nil, fmt.Errorf("load env vars: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}

// DomainNames returns the configured domain names in sorted order.
func (c *Config) DomainNames() []string {
	names := make([]string, 0, len(c.Domains))
	for name := range c.Domains {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
