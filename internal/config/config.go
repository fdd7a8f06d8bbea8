package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	AppPort string `env:"APP_PORT" envDefault:"8080"`

	// External identity service (credential storage, hashing, JWT issuance).
	AccountsBaseURL string        `env:"ACCOUNTS_BASE_URL"`
	AccountsTimeout time.Duration `env:"ACCOUNTS_TIMEOUT" envDefault:"5s"`

	// Shared secret for the locally-decodable session cookie token.
	SessionSecret string `env:"SESSION_SECRET"`

	GoogleClientID     string `env:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret string `env:"GOOGLE_CLIENT_SECRET"`
	GoogleRedirectURL  string `env:"GOOGLE_REDIRECT_URL"`

	AppleClientID string `env:"APPLE_CLIENT_ID"`

	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`

	SMSGatewayURL   string `env:"SMS_GATEWAY_URL"`
	SMSGatewayToken string `env:"SMS_GATEWAY_TOKEN"`

	// Country code assumed for bare 10-digit phone numbers.
	DefaultCountryCode string `env:"DEFAULT_COUNTRY_CODE" envDefault:"1"`

	OTPTTL time.Duration `env:"OTP_TTL" envDefault:"10m"`
}

func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
