package config

import (
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"

	"github.com/swasthya-lab/swasthya/pkg/domain/model"
	"github.com/swasthya-lab/swasthya/pkg/usecase"
)

// AppConfig represents the optional TOML application configuration.
// All fields have working defaults so the file can be omitted entirely.
type AppConfig struct {
	Limits Limits `toml:"limits"`
	Units  Units  `toml:"units"`
}

// Limits bounds how many records each read path may return
type Limits struct {
	Ask     int `toml:"ask"`
	Trend   int `toml:"trend"`
	Listing int `toml:"listing"`
}

// Units names the measurement units rendered into vitals sentences
type Units struct {
	Weight string `toml:"weight"`
	Height string `toml:"height"`
}

// DefaultAppConfig returns the configuration used when no file is given
func DefaultAppConfig() *AppConfig {
	units := model.DefaultVitalUnits()
	return &AppConfig{
		Limits: Limits{
			Ask:     usecase.DefaultAskLimit,
			Trend:   usecase.DefaultTrendLimit,
			Listing: usecase.DefaultListingLimit,
		},
		Units: Units{
			Weight: units.Weight,
			Height: units.Height,
		},
	}
}

// Validate checks if the AppConfig is valid
func (a *AppConfig) Validate() error {
	if a.Limits.Ask < 1 {
		return goerr.New("limits.ask must be positive", goerr.V("ask", a.Limits.Ask))
	}
	if a.Limits.Trend < 1 {
		return goerr.New("limits.trend must be positive", goerr.V("trend", a.Limits.Trend))
	}
	if a.Limits.Listing < 1 {
		return goerr.New("limits.listing must be positive", goerr.V("listing", a.Limits.Listing))
	}
	if a.Units.Weight == "" {
		return goerr.New("units.weight is required")
	}
	if a.Units.Height == "" {
		return goerr.New("units.height is required")
	}
	return nil
}

// UseCaseOptions converts the configuration to usecase options
func (a *AppConfig) UseCaseOptions() []usecase.Option {
	return []usecase.Option{
		usecase.WithUnits(model.VitalUnits{
			Weight: a.Units.Weight,
			Height: a.Units.Height,
		}),
		usecase.WithAskLimit(a.Limits.Ask),
		usecase.WithTrendLimit(a.Limits.Trend),
		usecase.WithListingLimit(a.Limits.Listing),
	}
}

// LoadAppConfiguration loads the application configuration from a TOML
// file. Fields missing from the file keep their defaults.
func LoadAppConfiguration(path string) (*AppConfig, error) {
	config := DefaultAppConfig()
	if path == "" {
		return config, nil
	}

	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read config file", goerr.V("path", path))
	}

	if err := toml.Unmarshal(data, config); err != nil {
		return nil, goerr.Wrap(err, "failed to parse TOML config", goerr.V("path", path))
	}

	if err := config.Validate(); err != nil {
		return nil, goerr.Wrap(err, "config validation failed", goerr.V("path", path))
	}

	return config, nil
}
