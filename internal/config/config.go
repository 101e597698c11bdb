package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/finbooks/finbooks/internal/types"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Configuration struct {
	Deployment DeploymentConfig `mapstructure:"deployment" validate:"required"`
	Server     ServerConfig     `mapstructure:"server" validate:"required"`
	Logging    LoggingConfig    `mapstructure:"logging" validate:"required"`
	Postgres   PostgresConfig   `mapstructure:"postgres" validate:"required"`
	Auth       AuthConfig       `mapstructure:"auth"`
	Kafka      KafkaConfig      `mapstructure:"kafka"`
	Webhook    Webhook          `mapstructure:"webhook"`
	Sentry     SentryConfig     `mapstructure:"sentry"`
	Pyroscope  PyroscopeConfig  `mapstructure:"pyroscope"`
	Cache      CacheConfig      `mapstructure:"cache"`
	Stock      StockConfig      `mapstructure:"stock"`
}

type DeploymentConfig struct {
	Mode types.RunMode `mapstructure:"mode" validate:"required"`
}

type ServerConfig struct {
	Address string `mapstructure:"address" validate:"required"`
}

type LoggingConfig struct {
	Level types.LogLevel `mapstructure:"level" validate:"required"`
}

type PostgresConfig struct {
	Host                   string `mapstructure:"host" validate:"required"`
	Port                   int    `mapstructure:"port" validate:"required"`
	User                   string `mapstructure:"user" validate:"required"`
	Password               string `mapstructure:"password"`
	DBName                 string `mapstructure:"dbname" validate:"required"`
	SSLMode                string `mapstructure:"sslmode" validate:"required"`
	MaxOpenConns           int    `mapstructure:"max_open_conns"`
	MaxIdleConns           int    `mapstructure:"max_idle_conns"`
	ConnMaxLifetimeMinutes int    `mapstructure:"conn_max_lifetime_minutes"`
	AutoMigrate            bool   `mapstructure:"auto_migrate"`
}

// AuthConfig configures how bearer tokens are turned into a tenant/user
// context. With an empty Secret the API runs in guest mode and every
// request is attributed to the default tenant.
type AuthConfig struct {
	Secret string `mapstructure:"secret"`
}

type KafkaConfig struct {
	Brokers       []string `mapstructure:"brokers"`
	ConsumerGroup string   `mapstructure:"consumer_group"`
	UseSASL       bool     `mapstructure:"use_sasl"`
	SASLMechanism string   `mapstructure:"sasl_mechanism"`
	SASLUser      string   `mapstructure:"sasl_user"`
	SASLPassword  string   `mapstructure:"sasl_password"`
	ClientID      string   `mapstructure:"client_id"`
}

type SentryConfig struct {
	Enabled     bool    `mapstructure:"enabled"`
	DSN         string  `mapstructure:"dsn"`
	Environment string  `mapstructure:"environment"`
	SampleRate  float64 `mapstructure:"sample_rate"`
}

type PyroscopeConfig struct {
	Enabled         bool     `mapstructure:"enabled"`
	URL             string   `mapstructure:"url"`
	ApplicationName string   `mapstructure:"application_name"`
	ServerAddress   string   `mapstructure:"server_address"`
	ProfileTypes    []string `mapstructure:"profile_types"`
	SampleRate      uint32   `mapstructure:"sample_rate"`
	DisableGCRuns   bool     `mapstructure:"disable_gc_runs"`
	BasicAuthUser   string   `mapstructure:"basic_auth_user"`
	BasicAuthPass   string   `mapstructure:"basic_auth_pass"`
}

type CacheConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// StockConfig tunes inventory-side behaviour. LowStockThreshold fires an
// item.low_stock webhook when an OUT application leaves currentStock at or
// below it; zero disables the alert.
type StockConfig struct {
	LowStockThreshold float64 `mapstructure:"low_stock_threshold"`
}

func NewConfig() (*Configuration, error) {
	v := viper.New()

	// .env is optional; real environment variables win over file values
	_ = godotenv.Load()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./internal/config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/finbooks")

	v.SetEnvPrefix("FINBOOKS")
	v.SetEnvKeyReplacer(strings.NewReplacer(
		".", "_",
		"-", "_",
	))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var config Configuration
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("deployment.mode", string(types.ModeLocal))
	v.SetDefault("server.address", ":8080")
	v.SetDefault("logging.level", string(types.LogLevelInfo))
	v.SetDefault("postgres.host", "localhost")
	v.SetDefault("postgres.port", 5432)
	v.SetDefault("postgres.user", "finbooks")
	v.SetDefault("postgres.dbname", "finbooks")
	v.SetDefault("postgres.sslmode", "disable")
	v.SetDefault("postgres.max_open_conns", 10)
	v.SetDefault("postgres.max_idle_conns", 5)
	v.SetDefault("postgres.conn_max_lifetime_minutes", 60)
	v.SetDefault("webhook.topic", "webhooks")
	v.SetDefault("webhook.pubsub", string(types.MemoryPubSub))
	v.SetDefault("webhook.max_retries", 3)
	v.SetDefault("webhook.initial_interval", "1s")
	v.SetDefault("webhook.max_interval", "10s")
	v.SetDefault("webhook.multiplier", 2.0)
	v.SetDefault("webhook.max_elapsed_time", "2m")
	v.SetDefault("sentry.sample_rate", 1.0)
	v.SetDefault("cache.enabled", true)
}

func (c Configuration) Validate() error {
	validate := validator.New()
	return validate.Struct(c)
}

// GetDSN builds the postgres connection string
func (c PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

// GetDefaultConfig returns a default configuration for local development
// and scripts that do not read a config file.
func GetDefaultConfig() *Configuration {
	return &Configuration{
		Deployment: DeploymentConfig{Mode: types.ModeLocal},
		Logging:    LoggingConfig{Level: types.LogLevelDebug},
		Cache:      CacheConfig{Enabled: true},
		Webhook: Webhook{
			Topic:           "webhooks",
			PubSub:          types.MemoryPubSub,
			MaxRetries:      3,
			InitialInterval: time.Second,
			MaxInterval:     10 * time.Second,
			Multiplier:      2,
			MaxElapsedTime:  2 * time.Minute,
		},
	}
}
