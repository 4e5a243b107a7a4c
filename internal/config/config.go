package config

import (
	"errors"
	"os"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	// Addr is the HTTP listen address.
	Addr string
	// StaticDir holds the browser client assets served on /*.
	StaticDir string
	// LogLevel is a zerolog level name.
	LogLevel string
	// StrictErrors makes the relay report dropped events back to the sender
	// as an error event instead of only logging them.
	StrictErrors bool
}

// Load reads configuration from an optional config file, with environment
// overrides under the DIAL_ prefix. A missing file is not an error; the
// defaults stand.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetDefault("addr", ":8080")
	v.SetDefault("static_dir", "./static")
	v.SetDefault("log_level", "info")
	v.SetDefault("strict_errors", false)

	v.SetEnvPrefix("DIAL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !os.IsNotExist(err) {
				return Config{}, err
			}
		}
	}

	return Config{
		Addr:         v.GetString("addr"),
		StaticDir:    v.GetString("static_dir"),
		LogLevel:     v.GetString("log_level"),
		StrictErrors: v.GetBool("strict_errors"),
	}, nil
}
