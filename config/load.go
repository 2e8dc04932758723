package config

import (
	"strings"

	"github.com/spf13/viper"

	"github.com/ecumene/rust-swig/errors"
)

// Load reads configuration from the usual sources: rust-swig.toml in the
// working directory (when present), then RUST_SWIG_* environment
// variables, on top of built-in defaults.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("rust-swig")
	v.SetConfigType("toml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("RUST_SWIG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	SetDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// Missing config file is fine; defaults and env apply.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, errors.Wrap(err, "read config")
		}
	}

	return unmarshal(v)
}

// LoadFromFile loads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	SetDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(err, "read config file %s", path)
	}
	return unmarshal(v)
}

// SetDefaults installs the built-in defaults on a Viper instance.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("generator.pointer_width", DefaultPointerWidth)
	v.SetDefault("generator.step_budget", DefaultStepBudget)
	v.SetDefault("java.package_name", DefaultPackageName)
	v.SetDefault("log.json", false)
}

func unmarshal(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshal config")
	}
	if cfg.Generator.StepBudget <= 0 {
		cfg.Generator.StepBudget = DefaultStepBudget
	}
	if cfg.Generator.PointerWidth != 32 && cfg.Generator.PointerWidth != 64 {
		return nil, errors.Newf("unsupported pointer width %d (want 32 or 64)", cfg.Generator.PointerWidth)
	}
	return &cfg, nil
}
