package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	DB       DBConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Stripe   StripeConfig
	Calendar CalendarConfig
}

type AppConfig struct {
	Port string
	Env  string
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret        string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
}

// StripeConfig carries the checkout provider credentials and the redirect
// URLs for the hosted payment page. It is constructed once at startup and
// injected into the checkout and webhook components.
type StripeConfig struct {
	SecretKey     string
	WebhookSecret string
	Currency      string
	SuccessURL    string
	CancelURL     string
	Timeout       time.Duration
}

// HasWebhookSecret reports whether the signing secret is usable. Empty or
// template values fail closed: webhook verification is never bypassed.
func (c StripeConfig) HasWebhookSecret() bool {
	secret := strings.TrimSpace(c.WebhookSecret)
	if secret == "" {
		return false
	}
	if strings.Contains(secret, "placeholder") || strings.HasPrefix(secret, "your_") {
		return false
	}
	return true
}

type CalendarConfig struct {
	CredentialsFile string
	CalendarID      string
}

// Enabled reports whether the calendar side effect is configured at all
func (c CalendarConfig) Enabled() bool {
	return c.CredentialsFile != "" && c.CalendarID != ""
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	accessExpiry, err := time.ParseDuration(viper.GetString("JWT_ACCESS_EXPIRY"))
	if err != nil {
		accessExpiry = 15 * time.Minute
	}

	refreshExpiry, err := time.ParseDuration(viper.GetString("JWT_REFRESH_EXPIRY"))
	if err != nil {
		refreshExpiry = 7 * 24 * time.Hour
	}

	stripeTimeout, err := time.ParseDuration(viper.GetString("STRIPE_TIMEOUT"))
	if err != nil {
		stripeTimeout = 15 * time.Second
	}

	currency := viper.GetString("STRIPE_CURRENCY")
	if currency == "" {
		currency = "usd"
	}

	config := &Config{
		App: AppConfig{
			Port: viper.GetString("APP_PORT"),
			Env:  viper.GetString("APP_ENV"),
		},
		DB: DBConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			Name:     viper.GetString("DB_NAME"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		JWT: JWTConfig{
			Secret:        viper.GetString("JWT_SECRET"),
			AccessExpiry:  accessExpiry,
			RefreshExpiry: refreshExpiry,
		},
		Stripe: StripeConfig{
			SecretKey:     viper.GetString("STRIPE_SECRET_KEY"),
			WebhookSecret: viper.GetString("STRIPE_WEBHOOK_SECRET"),
			Currency:      currency,
			SuccessURL:    viper.GetString("CHECKOUT_SUCCESS_URL"),
			CancelURL:     viper.GetString("CHECKOUT_CANCEL_URL"),
			Timeout:       stripeTimeout,
		},
		Calendar: CalendarConfig{
			CredentialsFile: viper.GetString("GOOGLE_CALENDAR_CREDENTIALS_FILE"),
			CalendarID:      viper.GetString("GOOGLE_CALENDAR_ID"),
		},
	}

	return config, nil
}
