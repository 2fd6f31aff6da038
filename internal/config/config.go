package config

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Payment  PaymentConfig
	Renderer RendererConfig
	Mailer   MailerConfig
	Identity IdentityConfig
	Alert    AlertConfig
	Import   ImportConfig
}

type ServerConfig struct {
	Port int
	Env  string // "development", "production"
}

type DatabaseConfig struct {
	Host    string
	Port    string
	Name    string
	User    string
	Pass    string
	Charset string
}

type RedisConfig struct {
	Addr string
	Pass string
	DB   int
}

type PaymentConfig struct {
	StripeSecretKey string
}

type RendererConfig struct {
	BaseURL string
	APIKey  string
}

type MailerConfig struct {
	BaseURL string
	APIKey  string
	From    string
}

type IdentityConfig struct {
	BaseURL string
}

type AlertConfig struct {
	TelegramToken  string
	TelegramChatID string
}

type ImportConfig struct {
	DefaultCompanyName string
	DefaultClientEmail string
	DefaultTimezone    string
}

// Load reads configuration from .env file and environment variables.
func Load() (*Config, error) {
	// Load .env file (ignore error if missing)
	_ = godotenv.Load()

	viper.AutomaticEnv()

	// Set defaults
	viper.SetDefault("APP_PORT", 8080)
	viper.SetDefault("APP_ENV", "production")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "3306")
	viper.SetDefault("DB_CHARSET", "utf8mb4")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("MAILER_FROM", "billing@maintrack.local")
	viper.SetDefault("IMPORT_DEFAULT_COMPANY", "Default Company")
	viper.SetDefault("IMPORT_DEFAULT_TIMEZONE", "UTC")

	cfg := &Config{
		Server: ServerConfig{
			Port: viper.GetInt("APP_PORT"),
			Env:  viper.GetString("APP_ENV"),
		},
		Database: DatabaseConfig{
			Host:    viper.GetString("DB_HOST"),
			Port:    viper.GetString("DB_PORT"),
			Name:    viper.GetString("DB_NAME"),
			User:    viper.GetString("DB_USER"),
			Pass:    viper.GetString("DB_PASS"),
			Charset: viper.GetString("DB_CHARSET"),
		},
		Redis: RedisConfig{
			Addr: viper.GetString("REDIS_ADDR"),
			Pass: viper.GetString("REDIS_PASS"),
			DB:   viper.GetInt("REDIS_DB"),
		},
		Payment: PaymentConfig{
			StripeSecretKey: viper.GetString("STRIPE_SECRET_KEY"),
		},
		Renderer: RendererConfig{
			BaseURL: viper.GetString("RENDERER_BASE_URL"),
			APIKey:  viper.GetString("RENDERER_API_KEY"),
		},
		Mailer: MailerConfig{
			BaseURL: viper.GetString("MAILER_BASE_URL"),
			APIKey:  viper.GetString("MAILER_API_KEY"),
			From:    viper.GetString("MAILER_FROM"),
		},
		Identity: IdentityConfig{
			BaseURL: viper.GetString("IDENTITY_BASE_URL"),
		},
		Alert: AlertConfig{
			TelegramToken:  viper.GetString("ALERT_TELEGRAM_TOKEN"),
			TelegramChatID: viper.GetString("ALERT_TELEGRAM_CHAT_ID"),
		},
		Import: ImportConfig{
			DefaultCompanyName: viper.GetString("IMPORT_DEFAULT_COMPANY"),
			DefaultClientEmail: viper.GetString("IMPORT_DEFAULT_CLIENT_EMAIL"),
			DefaultTimezone:    viper.GetString("IMPORT_DEFAULT_TIMEZONE"),
		},
	}

	if cfg.Database.Name == "" {
		log.Println("WARNING: DB_NAME is not set")
	}
	if cfg.Payment.StripeSecretKey == "" {
		log.Println("WARNING: STRIPE_SECRET_KEY is not set")
	}

	return cfg, nil
}

// DSN returns the MySQL DSN string for GORM.
func (d *DatabaseConfig) DSN() string {
	return d.User + ":" + d.Pass + "@tcp(" + d.Host + ":" + d.Port + ")/" + d.Name + "?charset=" + d.Charset + "&parseTime=True&loc=Local"
}
