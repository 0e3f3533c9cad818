package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// Config file names probed in the working directory.
const (
	ConfigFileName    = "ruler.yaml"
	ConfigFileNameAlt = "ruler.yml"
)

// Default configuration values.
const (
	DefaultOutput = "table"
)

// findConfigFile returns the config file to use: the explicit path if
// given, otherwise the first probe that exists, otherwise "".
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	for _, name := range []string{ConfigFileName, ConfigFileNameAlt} {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// Load loads configuration from file, environment variables and flags.
// Precedence (highest to lowest): flags > env vars > config file >
// defaults. Env vars use the RULER_ prefix, e.g. RULER_DATASET.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(map[string]any{
		"output":  DefaultOutput,
		"verbose": false,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path := findConfigFile(cfgFile); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", path, err)
		}
	}

	// RULER_RULE_SEP -> options.rule_sep is the only nested env key;
	// the rest map flat.
	if err := k.Load(env.Provider("RULER_", ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, "RULER_"))
		switch key {
		case "rule_sep", "remove_obeyers", "guess":
			return "options." + key
		}
		return key
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, any) {
			if !f.Changed {
				return "", nil
			}
			key := strings.ReplaceAll(f.Name, "-", "_")
			switch key {
			case "rule_sep":
				return "options.rule_sep", posflag.FlagVal(flags, f)
			case "keep_obeyers":
				val, _ := flags.GetBool(f.Name)
				return "options.remove_obeyers", !val
			case "no_guess":
				val, _ := flags.GetBool(f.Name)
				return "options.guess", !val
			}
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	return &cfg, nil
}
