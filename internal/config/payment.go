package config

import (
	"time"
)

type PaymentConfig struct {
	BaseURL        string        `yaml:"base_url"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
	PollInterval   time.Duration `yaml:"poll_interval"`
	Currency       string        `yaml:"currency"`
}

func loadPaymentConfig() *PaymentConfig {
	return &PaymentConfig{
		BaseURL:        getEnv("LUCOPAY_BASE_URL", "https://lucopay.onrender.com"),
		RequestTimeout: getEnvAsDuration("LUCOPAY_REQUEST_TIMEOUT", 30*time.Second),
		PollInterval:   getEnvAsDuration("LUCOPAY_POLL_INTERVAL", 2*time.Second),
		Currency:       getEnv("LUCOPAY_CURRENCY", "UGX"),
	}
}
