// Package config contains the govsnap core configuration.
package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"

	"github.com/govsnap/govsnap/hub"
	"github.com/govsnap/govsnap/router"
	"github.com/govsnap/govsnap/score"
	"github.com/govsnap/govsnap/tally"
	"github.com/govsnap/govsnap/typeddata"
)

// EnvPrefix prefixes environment overrides, e.g. GOVSNAP_HUB_MAX_RETRIES for hub.max-retries.
const EnvPrefix = "GOVSNAP"

var ErrInvalidConfig = errors.New("invalid config")

// Config defines the top level configuration of the core.
type Config struct {
	Domain  typeddata.Domain `mapstructure:"domain"`
	Hub     hub.Config       `mapstructure:"hub"`
	Score   score.Config     `mapstructure:"score"`
	Router  router.Config    `mapstructure:"router"`
	Tally   tally.Config     `mapstructure:"tally"`
	Logging LoggerConfig     `mapstructure:"logging"`
}

func Default() Config {
	return Config{
		Domain:  typeddata.DefaultDomain(),
		Hub:     hub.DefaultConfig(),
		Score:   score.DefaultConfig(),
		Router:  router.DefaultConfig(),
		Tally:   tally.DefaultConfig(),
		Logging: DefaultLoggingConfig(),
	}
}

// Validate checks values that would otherwise only fail on first use.
func (cfg *Config) Validate() error {
	var errs []error
	if cfg.Domain.Name == "" || cfg.Domain.Version == "" {
		errs = append(errs, errors.New("domain name and version are required"))
	}
	if cfg.Hub.URL == "" {
		errs = append(errs, errors.New("hub url is required"))
	}
	if cfg.Score.URL == "" {
		errs = append(errs, errors.New("score url is required"))
	}
	switch cfg.Tally.RankedChoice {
	case tally.Borda, tally.InstantRunoff:
	default:
		errs = append(errs, fmt.Errorf("unknown ranked choice algorithm %q", cfg.Tally.RankedChoice))
	}
	if cfg.Tally.Concurrency < 1 {
		errs = append(errs, fmt.Errorf("tally concurrency must be positive, got %d", cfg.Tally.Concurrency))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}

// Load reads the config file at path over the defaults. An empty path only applies
// environment overrides.
func Load(path string) (Config, error) {
	return LoadOver(Default(), path)
}

// LoadOver reads the config file at path and the environment over base, which is usually
// Default or a preset.
func LoadOver(base Config, path string) (Config, error) {
	vip := viper.New()
	vip.SetEnvPrefix(EnvPrefix)
	vip.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	if err := bindEnv(vip, "", reflect.TypeOf(base)); err != nil {
		return Config{}, err
	}
	if path != "" {
		vip.SetConfigFile(path)
		if err := vip.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config file %s: %w", path, err)
		}
	}

	hook := mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	)
	if err := vip.Unmarshal(&base, viper.DecodeHook(hook)); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := base.Validate(); err != nil {
		return Config{}, err
	}
	return base, nil
}

var durationType = reflect.TypeOf(time.Duration(0))

// bindEnv registers every scalar key of typ so that unmarshalling sees environment values
// for keys missing from the file.
func bindEnv(vip *viper.Viper, prefix string, typ reflect.Type) error {
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		name := strings.Split(field.Tag.Get("mapstructure"), ",")[0]
		if name == "" || name == "-" {
			continue
		}
		key := name
		if prefix != "" {
			key = prefix + "." + name
		}
		switch {
		case field.Type.Kind() == reflect.Struct && field.Type != durationType:
			if err := bindEnv(vip, key, field.Type); err != nil {
				return err
			}
		case field.Type.Kind() == reflect.Map:
		default:
			if err := vip.BindEnv(key); err != nil {
				return fmt.Errorf("bind %s: %w", key, err)
			}
		}
	}
	return nil
}
