package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"lunchline/internal/connections/database"
	"lunchline/internal/connections/rabbitmq"
)

type HTTPConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

func (h HTTPConfig) Addr() string { return fmt.Sprintf("%s:%d", h.Host, h.Port) }

type Config struct {
	HTTP     HTTPConfig      `mapstructure:"http"`
	Database database.Config `mapstructure:"database"`
	RabbitMQ rabbitmq.Config `mapstructure:"rabbitmq"`
}

// EventsEnabled reports whether a message broker is configured. The
// HTTP core runs without one; lifecycle events are simply not emitted.
func (c *Config) EventsEnabled() bool { return c.RabbitMQ.Host != "" }

// Load reads the YAML config file (explicit path, or ./config.yaml)
// and applies LUNCHLINE_* environment overrides, e.g.
// LUNCHLINE_DATABASE_HOST, LUNCHLINE_HTTP_PORT.
func Load(path string) (*Config, error) {
	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("deploy")
	}

	v.SetEnvPrefix("LUNCHLINE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("http.host", "")
	v.SetDefault("http.port", 8080)
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_conns", 10)
	v.SetDefault("rabbitmq.port", 5672)
	v.SetDefault("rabbitmq.vhost", "/")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.Database.Host == "" || cfg.Database.User == "" || cfg.Database.Database == "" {
		return nil, errors.New("database configuration incomplete: host, user and database are required")
	}
	return &cfg, nil
}
