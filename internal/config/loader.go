package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, an optional YAML file, and
// environment variables. Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if HYDRO_CONFIG is set
//  3. env (prefix HYDRO_), e.g. HYDRO_ADDR, HYDRO_RAINFALL_PATH
func Load(_ context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("HYDRO_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
		}
	}

	// Map env keys like HYDRO_RAINFALL_PATH -> rainfall_path, preserving
	// underscores to match the koanf tags on the struct.
	envProvider := env.Provider("HYDRO_", ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, "hydro_")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.RainfallPath == "":
		return fmt.Errorf("%w: rainfall_path must not be empty", ErrInvalidConfig)
	case c.GroundwaterPath == "":
		return fmt.Errorf("%w: groundwater_path must not be empty", ErrInvalidConfig)
	case c.ReferenceYear <= 0:
		return fmt.Errorf("%w: reference_year must be positive", ErrInvalidConfig)
	case c.SessionTTL <= 0:
		return fmt.Errorf("%w: session_ttl must be positive", ErrInvalidConfig)
	case c.MaxDistrictList <= 0:
		return fmt.Errorf("%w: max_district_list must be positive", ErrInvalidConfig)
	}
	return nil
}
