package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application. Values are read by
// Viper from a config file or environment variables.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	Log      LogConfig      `mapstructure:"log"`
}

type ServerConfig struct {
	Address string `mapstructure:"address"`
}

// DatabaseConfig selects and parameterizes the store backend. Driver is one
// of "memory", "mongo" or "postgres"; the URI is mandatory for the
// database-backed drivers and its absence is a startup-fatal error, never a
// runtime error surfaced to API callers.
type DatabaseConfig struct {
	Driver string `mapstructure:"driver"`
	URI    string `mapstructure:"uri"`
	Name   string `mapstructure:"name"` // mongo database name
}

type JWTConfig struct {
	Secret     string        `mapstructure:"secret"`
	Expiration time.Duration `mapstructure:"expiration"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	JSON  bool   `mapstructure:"json"`
}

// Store drivers.
const (
	DriverMemory   = "memory"
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
)

// LoadConfig reads configuration from file or environment variables.
func LoadConfig(path string) (config Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	// Nested keys map to env vars, e.g. database.uri -> DATABASE_URI.
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(`.`, `_`))

	// Unmarshal only sees keys viper already knows about, so keys without
	// a default have to be bound explicitly for env-only configuration.
	for _, key := range []string{
		"server.address",
		"database.driver",
		"database.uri",
		"database.name",
		"jwt.secret",
		"jwt.expiration",
		"log.level",
		"log.json",
	} {
		if err = viper.BindEnv(key); err != nil {
			return
		}
	}

	viper.SetDefault("server.address", ":8080")
	viper.SetDefault("database.driver", DriverMemory)
	viper.SetDefault("database.name", "fittrack")
	viper.SetDefault("jwt.expiration", "24h")
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.json", false)

	err = viper.ReadInConfig()
	if _, ok := err.(viper.ConfigFileNotFoundError); ok {
		// Config file is optional; env vars and defaults may be enough.
		err = nil
	} else if err != nil {
		return
	}

	if err = viper.Unmarshal(&config); err != nil {
		return
	}

	if err = config.validate(); err != nil {
		return
	}
	return config, nil
}

func (c Config) validate() error {
	switch c.Database.Driver {
	case DriverMemory:
	case DriverMongo, DriverPostgres:
		if c.Database.URI == "" {
			return fmt.Errorf("database.uri is required for driver %q", c.Database.Driver)
		}
	default:
		return fmt.Errorf("unknown database driver %q", c.Database.Driver)
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("jwt.secret is required")
	}
	return nil
}
