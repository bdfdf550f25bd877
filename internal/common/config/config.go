// internal/common/config/config.go
package config

import "fmt"

// Config is the main application configuration struct.
type Config struct {
	App      AppConfig      `mapstructure:"app"`
	HTTP     HTTPConfig     `mapstructure:"http"`
	Queue    QueueConfig    `mapstructure:"queue"`
	Search   SearchConfig   `mapstructure:"search"`
	Database DatabaseConfig `mapstructure:"database"`
	Email    EmailConfig    `mapstructure:"email"`
	Alerts   AlertsConfig   `mapstructure:"alerts"`
	Yelp     YelpConfig     `mapstructure:"yelp"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type HTTPConfig struct {
	Addr        string `mapstructure:"addr"`         // dialog hook listen address
	MetricsAddr string `mapstructure:"metrics_addr"` // worker metrics listen address
}

// QueueConfig holds the SQS transport settings. The core does not own
// redelivery; failed jobs are left to the queue's visibility timeout.
type QueueConfig struct {
	URL             string `mapstructure:"url"`
	Region          string `mapstructure:"region"`
	WaitTimeSeconds int32  `mapstructure:"wait_time_seconds"`
	MaxMessages     int32  `mapstructure:"max_messages"`
	PollInterval    int    `mapstructure:"poll_interval"` // milliseconds between empty polls
}

type SearchConfig struct {
	Addresses   []string `mapstructure:"addresses"`
	Username    string   `mapstructure:"username"`
	Password    string   `mapstructure:"password"`
	Index       string   `mapstructure:"index"`
	ResultLimit int      `mapstructure:"result_limit"`
}

type DatabaseConfig struct {
	Postgres PostgresConfig `mapstructure:"postgres"`
	Redis    RedisConfig    `mapstructure:"redis"`
}

type PostgresConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Database       string `mapstructure:"database"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	MaxConnections int    `mapstructure:"max_connections"`
	MaxIdle        int    `mapstructure:"max_idle"`
	SSLMode        string `mapstructure:"sslmode"`
}

// GetDSN returns the PostgreSQL connection string
func (p PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	TTL      int    `mapstructure:"ttl"` // cache entry TTL, seconds
}

type EmailConfig struct {
	Region string `mapstructure:"region"`
	Sender string `mapstructure:"sender"`
}

// AlertsConfig configures the operational SNS alert published when a batch
// ends with a non-empty failure set.
type AlertsConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Region   string `mapstructure:"region"`
	TopicARN string `mapstructure:"topic_arn"`
}

type YelpConfig struct {
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}
