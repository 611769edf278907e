// Package config defines service configuration and its loading order.
package config

import "time"

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the handler: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// RainfallPath and GroundwaterPath locate the CSV tables loaded at
	// startup. Both are required; the service refuses to start without them.
	RainfallPath    string `koanf:"rainfall_path"`
	GroundwaterPath string `koanf:"groundwater_path"`

	// ModelPath locates the exported prediction model artifact. Optional:
	// when missing, prediction answers degrade instead of failing startup.
	ModelPath string `koanf:"model_path"`

	// ReferenceYear anchors "months ahead" when a query names a target year.
	ReferenceYear int `koanf:"reference_year"`

	// SessionTTL is the idle lifetime of a chat session.
	SessionTTL time.Duration `koanf:"session_ttl"`

	// MaxDistrictList caps the district listing answer before truncation.
	MaxDistrictList int `koanf:"max_district_list"`
}

// New returns a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:        "info",
		LogFormat:       "text",
		Addr:            ":8080",
		RainfallPath:    "data/rainfall.csv",
		GroundwaterPath: "data/groundwater.csv",
		ModelPath:       "models/groundwater_predictor.json",
		ReferenceYear:   2024,
		SessionTTL:      30 * time.Minute,
		MaxDistrictList: 10,
	}
}
