// Package config loads service configuration from an optional .env file and
// PLAYGROUND_* environment variables.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

const envPrefix = "PLAYGROUND_"

type Config struct {
	Server struct {
		Addr string `mapstructure:"addr"`
	} `mapstructure:"server"`
	Workbook struct {
		Path string `mapstructure:"path"`
	} `mapstructure:"workbook"`
	Database struct {
		Driver string `mapstructure:"driver"`
		DSN    string `mapstructure:"dsn"`
	} `mapstructure:"database"`
	Log struct {
		Level  string `mapstructure:"level"`
		Format string `mapstructure:"format"`
	} `mapstructure:"log"`
}

// Load reads the .env file if present, then overlays PLAYGROUND_* environment
// variables (PLAYGROUND_WORKBOOK_PATH -> workbook.path).
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("log.level", "INFO")
	v.SetDefault("log.format", "json")

	dotenv := viper.New()
	dotenv.SetConfigFile(".env")
	dotenv.SetConfigType("env")
	if err := dotenv.ReadInConfig(); err != nil && !os.IsNotExist(err) {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			return nil, fmt.Errorf("read .env: %w", err)
		}
	}
	for _, key := range dotenv.AllKeys() {
		// viper lowercases keys on read: playground_database_dsn
		if prop, ok := property(strings.ToUpper(key)); ok {
			v.Set(prop, dotenv.GetString(key))
		}
	}

	for _, envStr := range os.Environ() {
		pair := strings.SplitN(envStr, "=", 2)
		if prop, ok := property(pair[0]); ok {
			v.Set(prop, pair[1])
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return cfg, nil
}

// property maps an environment key to its config path,
// PLAYGROUND_DATABASE_DSN -> database.dsn.
func property(key string) (string, bool) {
	if !strings.HasPrefix(key, envPrefix) {
		return "", false
	}
	prop := strings.TrimPrefix(key, envPrefix)
	return strings.ToLower(strings.ReplaceAll(prop, "_", ".")), true
}
