package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const EnvPrefix = "GALLERY"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

// EnvAppEnv is referenced by tests that need to unset the required variable.
const EnvAppEnv = "GALLERY_APP_ENV"

type Config struct {
	App              AppConfig
	SMTP             SMTPConfig
	Storefront       StorefrontConfig
	Redis            RedisConfig
	InquiryRateLimit InquiryRateLimitConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.SMTP.applyDefaults()
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"GALLERY_APP_ENV" required:"true"`
	Port         string `envconfig:"GALLERY_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"GALLERY_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"GALLERY_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// SMTPConfig carries the relay transport settings. From is both the
// authenticated mailbox and the envelope sender; inquiries land in the
// Operator mailbox, which defaults to the sending address itself.
type SMTPConfig struct {
	Host     string `envconfig:"GALLERY_SMTP_HOST" required:"true"`
	Port     int    `envconfig:"GALLERY_SMTP_PORT" default:"465"`
	SSL      bool   `envconfig:"GALLERY_SMTP_SSL" default:"true"`
	From     string `envconfig:"GALLERY_SMTP_FROM" required:"true"`
	Username string `envconfig:"GALLERY_SMTP_USERNAME"`
	Password string `envconfig:"GALLERY_SMTP_PASSWORD" required:"true"`
	Operator string `envconfig:"GALLERY_SMTP_OPERATOR"`

	SendTimeout time.Duration `envconfig:"GALLERY_SMTP_SEND_TIMEOUT" default:"30s"`
}

func (s *SMTPConfig) applyDefaults() {
	if s.Username == "" {
		s.Username = s.From
	}
	if s.Operator == "" {
		s.Operator = s.From
	}
}

type StorefrontConfig struct {
	Endpoint    string        `envconfig:"GALLERY_STOREFRONT_ENDPOINT" required:"true"`
	AccessToken string        `envconfig:"GALLERY_STOREFRONT_ACCESS_TOKEN" required:"true"`
	Timeout     time.Duration `envconfig:"GALLERY_STOREFRONT_TIMEOUT" default:"10s"`
	PageSize    int           `envconfig:"GALLERY_STOREFRONT_PAGE_SIZE" default:"20"`
}

type RedisConfig struct {
	URL          string        `envconfig:"GALLERY_REDIS_URL" required:"true"`
	Address      string        `envconfig:"GALLERY_REDIS_ADDR"`
	Password     string        `envconfig:"GALLERY_REDIS_PASSWORD"`
	DB           int           `envconfig:"GALLERY_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"GALLERY_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"GALLERY_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"GALLERY_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"GALLERY_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"GALLERY_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// InquiryRateLimitConfig throttles the public mail-relay routes per IP and
// per submitted email address.
type InquiryRateLimitConfig struct {
	Window     time.Duration `envconfig:"GALLERY_INQUIRY_RATE_LIMIT_WINDOW" default:"1m"`
	IPLimit    int           `envconfig:"GALLERY_INQUIRY_RATE_LIMIT_IP_LIMIT" default:"20"`
	EmailLimit int           `envconfig:"GALLERY_INQUIRY_RATE_LIMIT_EMAIL_LIMIT" default:"5"`
}
