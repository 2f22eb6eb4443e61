package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	JWT       JWTConfig       `mapstructure:"jwt"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Billing   BillingConfig   `mapstructure:"billing"`
	SMTP      SMTPConfig      `mapstructure:"smtp"`
	Clinic    ClinicConfig    `mapstructure:"clinic"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Bootstrap BootstrapConfig `mapstructure:"bootstrap"`
}

// BootstrapConfig controls the admin account created on an empty
// database.
type BootstrapConfig struct {
	AdminUsername string `mapstructure:"admin_username" envconfig:"BOOTSTRAP_ADMIN_USERNAME"`
	AdminPassword string `mapstructure:"admin_password" envconfig:"BOOTSTRAP_ADMIN_PASSWORD"`
}

type ServerConfig struct {
	Port           int  `mapstructure:"port" envconfig:"SERVER_PORT"`
	TimeoutSeconds int  `mapstructure:"timeout_seconds" envconfig:"SERVER_TIMEOUT_SECONDS"`
	ReleaseMode    bool `mapstructure:"release_mode" envconfig:"SERVER_RELEASE_MODE"`
}

type DatabaseConfig struct {
	Path          string `mapstructure:"path" envconfig:"DATABASE_PATH"`
	BusyTimeoutMS int    `mapstructure:"busy_timeout_ms" envconfig:"DATABASE_BUSY_TIMEOUT_MS"`
	MaxOpenConns  int    `mapstructure:"max_open_conns" envconfig:"DATABASE_MAX_OPEN_CONNS"`
}

type JWTConfig struct {
	Secret             string `mapstructure:"secret" envconfig:"JWT_SECRET"`
	RefreshSecret      string `mapstructure:"refresh_secret" envconfig:"JWT_REFRESH_SECRET"`
	ExpiryHours        int    `mapstructure:"expiry_hours" envconfig:"JWT_EXPIRY_HOURS"`
	RefreshExpiryHours int    `mapstructure:"refresh_expiry_hours" envconfig:"JWT_REFRESH_EXPIRY_HOURS"`
}

func (c JWTConfig) Expiry() time.Duration {
	return time.Duration(c.ExpiryHours) * time.Hour
}

func (c JWTConfig) RefreshExpiry() time.Duration {
	return time.Duration(c.RefreshExpiryHours) * time.Hour
}

type LoggingConfig struct {
	Level  string `mapstructure:"level" envconfig:"LOG_LEVEL"`
	Pretty bool   `mapstructure:"pretty" envconfig:"LOG_PRETTY"`
}

type BillingConfig struct {
	TaxRate        float64 `mapstructure:"tax_rate" envconfig:"BILLING_TAX_RATE"`
	PaymentTerms   string  `mapstructure:"payment_terms" envconfig:"BILLING_PAYMENT_TERMS"`
	DueInDays      int     `mapstructure:"due_in_days" envconfig:"BILLING_DUE_IN_DAYS"`
	NumberTemplate string  `mapstructure:"number_template" envconfig:"BILLING_NUMBER_TEMPLATE"`
	SweepInterval  int     `mapstructure:"sweep_interval_minutes" envconfig:"BILLING_SWEEP_INTERVAL_MINUTES"`
}

type SMTPConfig struct {
	Host     string `mapstructure:"host" envconfig:"SMTP_HOST"`
	Port     int    `mapstructure:"port" envconfig:"SMTP_PORT"`
	Username string `mapstructure:"username" envconfig:"SMTP_USERNAME"`
	Password string `mapstructure:"password" envconfig:"SMTP_PASSWORD"`
	From     string `mapstructure:"from" envconfig:"SMTP_FROM"`
}

type ClinicConfig struct {
	Name    string `mapstructure:"name" envconfig:"CLINIC_NAME"`
	Address string `mapstructure:"address" envconfig:"CLINIC_ADDRESS"`
	Phone   string `mapstructure:"phone" envconfig:"CLINIC_PHONE"`
	Email   string `mapstructure:"email" envconfig:"CLINIC_EMAIL"`
}

type RateLimitConfig struct {
	RPS   float64 `mapstructure:"rps" envconfig:"RATE_LIMIT_RPS"`
	Burst int     `mapstructure:"burst" envconfig:"RATE_LIMIT_BURST"`
}

// LoadConfig reads config.yaml and then lets environment variables
// (DENTAL_* prefix) override individual values.
func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := envconfig.Process("dental", &config); err != nil {
		return nil, fmt.Errorf("failed to process environment overrides: %w", err)
	}

	if config.JWT.Secret == "" {
		return nil, fmt.Errorf("jwt secret is required")
	}
	if config.JWT.RefreshSecret == "" {
		config.JWT.RefreshSecret = config.JWT.Secret
	}
	if config.Bootstrap.AdminUsername == "" {
		config.Bootstrap.AdminUsername = "admin"
	}
	if config.Bootstrap.AdminPassword == "" {
		config.Bootstrap.AdminPassword = "admin123"
	}
	return &config, nil
}
