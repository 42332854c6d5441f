package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// Config file names searched in the working directory.
const (
	ConfigFileName    = "comply.yaml"
	ConfigFileNameAlt = "comply.yml"
)

// envPrefix namespaces environment overrides, e.g. COMPLY_WORKERS=8 or
// COMPLY_CHECK__DISABLED=doc.missing-docstring.
const envPrefix = "COMPLY_"

// keyDelim separates nested config keys. Rule ids contain dots
// (doc.missing-docstring), so the delimiter must be something no rule id or
// option key can contain, or flattening would split ids apart.
const keyDelim = "::"

// findConfigFile finds the config file to use.
// Priority: explicit path > comply.yaml > comply.yml.
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

// Load merges defaults, config file, environment and flags into a Config.
// flags may be nil; only flags explicitly set on the command line override
// lower layers.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(keyDelim)

	if err := k.Load(confmap.Provider(map[string]interface{}{
		"workers":          0,
		"format":           DefaultFormat,
		"fail_on":          DefaultFailOn,
		"verbose":          false,
		"history::enabled": true,
		"history::path":    DefaultHistoryPath,
	}, keyDelim), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path := findConfigFile(cfgFile); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", path, err)
		}
	}

	// COMPLY_FAIL_ON -> fail_on, COMPLY_HISTORY__PATH -> history::path
	if err := k.Load(env.Provider(envPrefix, keyDelim, func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, envPrefix))
		return strings.ReplaceAll(key, "__", keyDelim)
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, keyDelim, k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed {
				return "", nil
			}
			key := strings.ReplaceAll(f.Name, "-", "_")
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			TagName:          "koanf",
			WeaklyTypedInput: true,
			Result:           &cfg,
		},
	}); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	return &cfg, nil
}
