package config

import "time"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server    ServerConfig    `mapstructure:"server" validate:"required"`
	Database  DatabaseConfig  `mapstructure:"database" validate:"required"`
	Auth      AuthConfig      `mapstructure:"auth" validate:"required"`
	Storage   StorageConfig   `mapstructure:"storage"`
	Events    EventsConfig    `mapstructure:"events"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port                   int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel               string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	ShutdownTimeoutSeconds int    `mapstructure:"shutdown_timeout_seconds" validate:"gt=0"`
}

// ShutdownTimeout returns the graceful shutdown window.
func (c ServerConfig) ShutdownTimeout() time.Duration {
	return time.Duration(c.ShutdownTimeoutSeconds) * time.Second
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL                    string `mapstructure:"url" validate:"required,url"`
	MaxOpenConns           int    `mapstructure:"max_open_conns" validate:"gte=1"`
	MaxIdleConns           int    `mapstructure:"max_idle_conns" validate:"gte=0"`
	ConnMaxLifetimeMinutes int    `mapstructure:"conn_max_lifetime_minutes" validate:"gte=1"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	JWTSecret            string `mapstructure:"jwt_secret" validate:"required,min=32"`
	TokenLifetimeMinutes int    `mapstructure:"token_lifetime_minutes" validate:"required,gt=0"`
	BcryptCost           int    `mapstructure:"bcrypt_cost" validate:"gte=4,lte=31"`
}

// StorageConfig configures the Google Cloud Storage bucket that holds
// uploaded images. An empty bucket disables the upload routes.
type StorageConfig struct {
	Bucket           string `mapstructure:"bucket"`
	CredentialsFile  string `mapstructure:"credentials_file"`
	ObjectPrefix     string `mapstructure:"object_prefix" validate:"required"`
	SignedURLMinutes int    `mapstructure:"signed_url_minutes" validate:"gt=0"`
	MaxUploadBytes   int64  `mapstructure:"max_upload_bytes" validate:"gt=0"`
}

// Enabled reports whether an upload bucket is configured.
func (c StorageConfig) Enabled() bool {
	return c.Bucket != ""
}

// EventsConfig configures publishing of booking events to RabbitMQ.
// An empty URL keeps events in-process only.
type EventsConfig struct {
	AMQPURL  string `mapstructure:"amqp_url" validate:"omitempty,url"`
	Exchange string `mapstructure:"exchange" validate:"required_with=AMQPURL"`
}

// TelemetryConfig configures OpenTelemetry tracing. An empty endpoint
// disables export.
type TelemetryConfig struct {
	OTLPEndpoint string `mapstructure:"otlp_endpoint"`
	ServiceName  string `mapstructure:"service_name" validate:"required"`
	Insecure     bool   `mapstructure:"insecure"`
}
