package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type RuntimeConfig struct {
	Dev bool
}

type LogConfig struct {
	Level    string `yaml:"level"`    // trace|debug|info|warn|error
	Format   string `yaml:"format"`   // json|console
	Sampling bool   `yaml:"sampling"` // enable sampling in prod
}

type ServerConfig struct {
	Port int `yaml:"port"`
}

type RedisConfig struct {
	URL      string        `yaml:"url"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	TTL      time.Duration `yaml:"ttl"`
}

type RazorpayConfig struct {
	KeyID     string        `yaml:"key_id"`     // env override: RAZORPAY_KEY_ID
	KeySecret string        `yaml:"key_secret"` // env override: RAZORPAY_KEY_SECRET
	Timeout   time.Duration `yaml:"timeout"`
}

type PaymentConfig struct {
	Razorpay         RazorpayConfig `yaml:"razorpay"`
	IdempotencyTTL   time.Duration  `yaml:"idempotency_ttl"`
	VerifyRateLimit  int            `yaml:"verify_rate_limit"`
	VerifyRateWindow time.Duration  `yaml:"verify_rate_window"`
}

type ClipDropConfig struct {
	APIKey   string        `yaml:"api_key"` // env override: CLIPDROP_API_KEY
	Endpoint string        `yaml:"endpoint"`
	Timeout  time.Duration `yaml:"timeout"`
}

type ImagingConfig struct {
	ClipDrop ClipDropConfig `yaml:"clipdrop"`
}

type Config struct {
	Log     LogConfig     `yaml:"log"`
	Server  ServerConfig  `yaml:"server"`
	Redis   RedisConfig   `yaml:"redis"`
	Payment PaymentConfig `yaml:"payment"`
	Imaging ImagingConfig `yaml:"imaging"`

	Runtime RuntimeConfig `yaml:"-"`
}

func LoadConfig(path string, dev bool) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	// Secrets may come from the environment instead of the file; the env
	// wins so deployments never have to write keys to disk.
	if v := os.Getenv("RAZORPAY_KEY_ID"); v != "" {
		cfg.Payment.Razorpay.KeyID = v
	}
	if v := os.Getenv("RAZORPAY_KEY_SECRET"); v != "" {
		cfg.Payment.Razorpay.KeySecret = v
	}
	if v := os.Getenv("CLIPDROP_API_KEY"); v != "" {
		cfg.Imaging.ClipDrop.APIKey = v
	}

	// defaults
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}
	if cfg.Server.Port <= 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Payment.Razorpay.Timeout <= 0 {
		cfg.Payment.Razorpay.Timeout = 15 * time.Second
	}
	if cfg.Payment.IdempotencyTTL <= 0 {
		cfg.Payment.IdempotencyTTL = 24 * time.Hour
	}
	if cfg.Payment.VerifyRateLimit <= 0 {
		cfg.Payment.VerifyRateLimit = 30
	}
	if cfg.Payment.VerifyRateWindow <= 0 {
		cfg.Payment.VerifyRateWindow = time.Minute
	}
	if cfg.Imaging.ClipDrop.Timeout <= 0 {
		cfg.Imaging.ClipDrop.Timeout = 30 * time.Second
	}
	cfg.Redis.TTL = normalizeTTL(cfg.Redis.TTL)

	// Minimal validation. Dev mode runs against in-memory stand-ins, so
	// provider credentials are only required in real deployments.
	if cfg.Redis.URL == "" {
		return nil, errors.New("redis.url is required")
	}
	if !dev {
		if cfg.Payment.Razorpay.KeyID == "" || cfg.Payment.Razorpay.KeySecret == "" {
			return nil, errors.New("payment.razorpay.key_id and key_secret are required (or RAZORPAY_KEY_ID / RAZORPAY_KEY_SECRET)")
		}
		if cfg.Imaging.ClipDrop.APIKey == "" {
			return nil, errors.New("imaging.clipdrop.api_key is required (or CLIPDROP_API_KEY)")
		}
	}

	cfg.Runtime.Dev = dev
	return &cfg, nil
}

func normalizeTTL(d time.Duration) time.Duration {
	if d <= 0 {
		return time.Hour
	}
	return d
}
