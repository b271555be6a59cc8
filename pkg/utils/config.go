package utils

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Gateway  GatewayConfig
	Sweep    SweepConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
}

type GatewayConfig struct {
	SecretKey     string
	WebhookSecret string
	Currency      string
	// CommissionRateBp is the platform commission in basis points,
	// applied to every booking total.
	CommissionRateBp int
}

type SweepConfig struct {
	Interval time.Duration
	// AuthorizedDeadline: how long a payment may sit in authorized before
	// the sweep treats it as a discrepancy.
	AuthorizedDeadline time.Duration
	// CreatedTimeout: how long a payment may sit in created before it is
	// abandoned.
	CreatedTimeout time.Duration
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("CURRENCY", "usd")
	viper.SetDefault("COMMISSION_RATE_BP", 1500)
	viper.SetDefault("SWEEP_INTERVAL_SECONDS", 60)
	viper.SetDefault("SWEEP_AUTHORIZED_DEADLINE_MINUTES", 15)
	viper.SetDefault("SWEEP_CREATED_TIMEOUT_MINUTES", 30)

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:    viper.GetString("APP_NAME"),
			Port:    viper.GetString("PORT"),
			Debug:   viper.GetBool("DEBUG"),
			LogPath: viper.GetString("LOG_PATH"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASS"),
			MaxConns: viper.GetInt32("DB_MAX_CONNS"),
		},
		Gateway: GatewayConfig{
			SecretKey:        viper.GetString("STRIPE_SECRET_KEY"),
			WebhookSecret:    viper.GetString("STRIPE_WEBHOOK_SECRET"),
			Currency:         viper.GetString("CURRENCY"),
			CommissionRateBp: viper.GetInt("COMMISSION_RATE_BP"),
		},
		Sweep: SweepConfig{
			Interval:           time.Duration(viper.GetInt("SWEEP_INTERVAL_SECONDS")) * time.Second,
			AuthorizedDeadline: time.Duration(viper.GetInt("SWEEP_AUTHORIZED_DEADLINE_MINUTES")) * time.Minute,
			CreatedTimeout:     time.Duration(viper.GetInt("SWEEP_CREATED_TIMEOUT_MINUTES")) * time.Minute,
		},
	}

	return config, nil
}
