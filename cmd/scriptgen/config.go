// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/pdiddy/scriptgen/internal/generate"
	"github.com/pdiddy/scriptgen/pkg/types"
)

const envPrefix = "SCRIPTGEN"

// configureViper sets defaults, env handling, and config search paths on v.
// An explicit cfgFile replaces the search paths.
func configureViper(v *viper.Viper, cfgFile string, searchPaths ...string) {
	setDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("scriptgen")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		for _, p := range searchPaths {
			v.AddConfigPath(p)
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ai.model", generate.DefaultModel)
	v.SetDefault("ai.api_key", "")
	v.SetDefault("ai.max_tokens", generate.DefaultMaxTokens)
	v.SetDefault("ai.temperature", generate.DefaultTemperature)
	v.SetDefault("ai.timeout", generate.DefaultTimeout)
	v.SetDefault("ai.base_url", "")

	v.SetDefault("output.dir", ".")
	v.SetDefault("output.format", string(types.FormatJSON))

	v.SetDefault("library.enabled", true)
	v.SetDefault("library.dir", filepath.Join(xdg.DataHome, "scriptgen"))
	v.SetDefault("library.max_results", 20)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size_mb", 10)
	v.SetDefault("log.max_backups", 3)
}

// loadConfig decodes v into a Config.
func loadConfig(v *viper.Viper) (types.Config, error) {
	var c types.Config
	if err := v.Unmarshal(&c); err != nil {
		return types.Config{}, fmt.Errorf("decoding config: %w", err)
	}
	return c, nil
}

func mustBind(key string, flag *pflag.Flag) {
	if err := viper.BindPFlag(key, flag); err != nil {
		panic(fmt.Sprintf("binding flag for %s: %v", key, err))
	}
}
