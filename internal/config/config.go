// Package config loads settings for the signup demo.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment overrides, e.g. TETHER_UI_TITLE.
const EnvPrefix = "TETHER"

var validate = validator.New()

// Config holds demo configuration.
type Config struct {
	UI    UIConfig `mapstructure:"ui"`
	Debug bool     `mapstructure:"debug"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	Title         string `mapstructure:"title" validate:"required,max=64"`
	Accent        string `mapstructure:"accent" validate:"required,hexcolor"`
	Width         int    `mapstructure:"width" validate:"min=30,max=200"`
	MaskPasswords bool   `mapstructure:"mask_passwords"`
}

// Load reads configuration from defaults, an optional YAML file and the
// environment, in increasing precedence. With an empty path the file is
// looked up as config.yaml under the user config directory, and a missing
// file is not an error.
func Load(path string) (Config, error) {
	v := viper.New()

	v.SetDefault("ui.title", "Sign up")
	v.SetDefault("ui.accent", "#7D56F4")
	v.SetDefault("ui.width", 48)
	v.SetDefault("ui.mask_passwords", true)
	v.SetDefault("debug", false)

	v.SetConfigType("yaml")
	if path != "" {
		v.SetConfigFile(path)
	} else {
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "tether"))
		}
		v.SetConfigName("config")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := validate.Struct(c); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return c, nil
}
