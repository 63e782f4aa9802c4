package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Fetch failure policies for ui.on_fetch_error.
const (
	OnFetchErrorEmpty = "empty"
	OnFetchErrorShow  = "error"
)

// Start tabs for ui.start_tab.
const (
	TabStudents = "students"
	TabCourses  = "courses"
)

const DefaultBaseURL = "https://robotics-api.onrender.com"

// Config holds application configuration.
type Config struct {
	API     APIConfig     `mapstructure:"api"`
	UI      UIConfig      `mapstructure:"ui"`
	Log     LogConfig     `mapstructure:"log"`
	Metrics MetricsConfig `mapstructure:"metrics"`
	MockAPI MockAPIConfig `mapstructure:"mockapi"`
}

// APIConfig points at the remote directory API.
type APIConfig struct {
	BaseURL string `mapstructure:"base_url" validate:"required,url"`
	// Timeout of zero means requests never time out.
	Timeout time.Duration `mapstructure:"timeout" validate:"gte=0s"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	OnFetchError string `mapstructure:"on_fetch_error" validate:"oneof=empty error"`
	StartTab     string `mapstructure:"start_tab" validate:"oneof=students courses"`
}

// LogConfig controls the diagnostics log file. An empty path disables logging.
type LogConfig struct {
	Path  string `mapstructure:"path"`
	Level string `mapstructure:"level"`
}

type MetricsConfig struct {
	Addr string `mapstructure:"addr"`
}

// MockAPIConfig configures cmd/robodir-mockapi.
type MockAPIConfig struct {
	Addr     string `mapstructure:"addr"`
	Fixtures string `mapstructure:"fixtures"`
	// Generate > 0 serves that many synthetic records instead of fixtures.
	Generate int   `mapstructure:"generate" validate:"gte=0"`
	Seed     int64 `mapstructure:"seed"`
}

// Load reads configuration from file and env. Env var overrides use prefix ROBODIR_.
func Load() (Config, error) {
	v := viper.New()

	home := os.Getenv("HOME")
	v.SetDefault("api.base_url", DefaultBaseURL)
	v.SetDefault("api.timeout", "0s")
	v.SetDefault("ui.on_fetch_error", OnFetchErrorEmpty)
	v.SetDefault("ui.start_tab", TabStudents)
	v.SetDefault("log.path", filepath.Join(home, ".local", "state", "robodir", "robodir.log"))
	v.SetDefault("log.level", "info")
	v.SetDefault("metrics.addr", "")
	v.SetDefault("mockapi.addr", ":8089")
	v.SetDefault("mockapi.fixtures", "")
	v.SetDefault("mockapi.generate", 0)
	v.SetDefault("mockapi.seed", 1)

	v.SetConfigType("toml")

	cfgPath := os.Getenv("ROBODIR_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(home, ".config", "robodir"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("ROBODIR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		// an explicit ROBODIR_CONFIG must exist; the default location is optional
		if cfgPath != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate rejects values the UI does not understand. Errors name the
// offending key, e.g. "ui.on_fetch_error".
func (c Config) Validate() error {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return f.Tag.Get("mapstructure")
	})
	err := v.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	fe := verrs[0]
	key := strings.TrimPrefix(fe.Namespace(), "Config.")
	switch fe.Tag() {
	case "oneof":
		return fmt.Errorf("%s: unknown value %q (want one of %s)", key, fe.Value(), strings.ReplaceAll(fe.Param(), " ", ", "))
	case "gte":
		return fmt.Errorf("%s: must not be negative", key)
	case "required":
		return fmt.Errorf("%s: must not be empty", key)
	default:
		return fmt.Errorf("%s: invalid value %q", key, fmt.Sprint(fe.Value()))
	}
}
