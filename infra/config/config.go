package config

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const path = "infra/config"

// Load loads the config for the given key into v.
// Values set on the command line win over the config file, which wins over the flag defaults.
// Without an explicit file the config is looked up as <key>.yaml|json under infra/config
// and is optional.
func Load(key, file string, flags *pflag.FlagSet, v interface{}) error {
	vp := viper.New()
	if file != "" {
		vp.SetConfigFile(file)
	} else {
		vp.SetConfigName(key)
		vp.AddConfigPath(path)
	}

	if err := vp.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("could not load the config for %s: %w", key, err)
		}
		log.Debug().Str("key", key).Msg("no config file found")
	}

	if flags != nil {
		if err := vp.BindPFlags(flags); err != nil {
			return fmt.Errorf("could not bind flags for %s: %w", key, err)
		}
	}

	if err := vp.Unmarshal(v); err != nil {
		return fmt.Errorf("could not unmarshal the config for %s: %w", key, err)
	}

	log.Info().Str("key", key).Str("file", vp.ConfigFileUsed()).Msg("loaded config")
	return nil
}
