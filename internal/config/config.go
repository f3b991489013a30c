package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	StoreMemory   = "memory"
	StoreRedis    = "redis"
	StoreDynamoDB = "dynamodb"
	StorePostgres = "postgres"

	ProviderHTTP        = "http"
	ProviderMercadoPago = "mercadopago"
)

var (
	ErrUnknownSessionStore = errors.New("unknown SESSION_STORE")
	ErrUnknownProvider     = errors.New("unknown PAYMENT_PROVIDER")
	ErrInvalidDuration     = errors.New("duration must be positive")
)

type Config struct {
	Environment string
	HTTP        HTTPConfig
	Provider    ProviderConfig
	Mediator    MediatorConfig
	Proxy       ProxyConfig
	Session     SessionConfig
	Polling     PollingConfig
	Analytics   AnalyticsConfig
	Redis       RedisConfig
	Postgres    PostgresConfig
	DynamoDB    DynamoDBConfig
}

type HTTPConfig struct {
	Port            int
	AllowedOrigins  []string
	ShutdownTimeout time.Duration
}

// ProviderConfig configures the upstream PIX provider.
//
// SecretKey is the server-scoped credential used by the mediated path and the proxy
// routes. DirectSecretKey, when set, enables the direct path.
type ProviderConfig struct {
	Kind                   string
	BaseURL                string
	SecretKey              string
	DirectSecretKey        string
	CreatePath             string
	StatusPath             string
	Timeout                time.Duration
	QRRenderURL            string
	MockEnabled            bool
	MockApproveAfter       int
	MercadoPagoAccessToken string
}

// MediatorConfig points the mediated path at a remote proxy. Empty BaseURL keeps the
// mediated call in process.
type MediatorConfig struct {
	BaseURL string
	Secret  string
}

type ProxyConfig struct {
	Secret string
}

type SessionConfig struct {
	Store           string
	Retention       time.Duration
	ExpiryCountdown time.Duration
	SweepInterval   time.Duration
}

type PollingConfig struct {
	Tick         time.Duration
	Initial      time.Duration
	Pending      time.Duration
	ErrorBackoff time.Duration
	CallTimeout  time.Duration
	Concurrency  int
}

type AnalyticsConfig struct {
	CollectorURL      string
	PixelID           string
	AccessToken       string
	Currency          string
	Timeout           time.Duration
	RedundantChannels bool
}

func (a AnalyticsConfig) Enabled() bool {
	return a.CollectorURL != "" && a.PixelID != ""
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type PostgresConfig struct {
	URL string
}

type DynamoDBConfig struct {
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	Table           string
}

// ProductionLike is true for deployments that talk to a real provider.
func (c Config) ProductionLike() bool {
	switch strings.ToLower(c.Environment) {
	case "production", "prod", "staging":
		return true
	}
	return false
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("PORT", 8080)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("SHUTDOWN_TIMEOUT", "10s")

	v.SetDefault("PAYMENT_PROVIDER", ProviderHTTP)
	v.SetDefault("PROVIDER_CREATE_PATH", "/transaction.purchase")
	v.SetDefault("PROVIDER_STATUS_PATH", "/transaction.getPayment")
	v.SetDefault("PROVIDER_TIMEOUT", "20s")
	v.SetDefault("QR_RENDER_URL", "https://api.qrserver.com/v1/create-qr-code/?size=300x300&data=")
	v.SetDefault("PAYMENT_GATEWAY_MOCK_APPROVE_AFTER", 3)

	v.SetDefault("SESSION_STORE", StoreMemory)
	v.SetDefault("SESSION_RETENTION", "1h")
	v.SetDefault("SESSION_EXPIRY_COUNTDOWN", "30m")
	v.SetDefault("SESSION_SWEEP_INTERVAL", "1m")

	v.SetDefault("POLL_TICK", "1s")
	v.SetDefault("POLL_INITIAL_INTERVAL", "15s")
	v.SetDefault("POLL_PENDING_INTERVAL", "30s")
	v.SetDefault("POLL_ERROR_INTERVAL", "60s")
	v.SetDefault("POLL_CALL_TIMEOUT", "25s")
	v.SetDefault("POLL_CONCURRENCY", 8)

	v.SetDefault("ANALYTICS_CURRENCY", "BRL")
	v.SetDefault("ANALYTICS_TIMEOUT", "5s")
	v.SetDefault("ANALYTICS_REDUNDANT_CHANNELS", true)

	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("AWS_REGION", "us-east-1")
	v.SetDefault("AWS_ACCESS_KEY_ID", "local")
	v.SetDefault("AWS_SECRET_ACCESS_KEY", "local")
	v.SetDefault("SESSIONS_TABLE", "payment_sessions")
}

// Load reads defaults, an optional file named by CONFIG_FILE, then the environment.
func Load() (Config, error) {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if path := strings.TrimSpace(os.Getenv("CONFIG_FILE")); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config file %s: %w", path, err)
		}
	}

	cfg := Config{
		Environment: strings.TrimSpace(v.GetString("APP_ENV")),
		HTTP: HTTPConfig{
			Port:            v.GetInt("PORT"),
			AllowedOrigins:  splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
			ShutdownTimeout: v.GetDuration("SHUTDOWN_TIMEOUT"),
		},
		Provider: ProviderConfig{
			Kind:                   strings.ToLower(strings.TrimSpace(v.GetString("PAYMENT_PROVIDER"))),
			BaseURL:                strings.TrimSpace(v.GetString("PROVIDER_BASE_URL")),
			SecretKey:              strings.TrimSpace(v.GetString("PROVIDER_SECRET_KEY")),
			DirectSecretKey:        strings.TrimSpace(v.GetString("PROVIDER_DIRECT_SECRET_KEY")),
			CreatePath:             v.GetString("PROVIDER_CREATE_PATH"),
			StatusPath:             v.GetString("PROVIDER_STATUS_PATH"),
			Timeout:                v.GetDuration("PROVIDER_TIMEOUT"),
			QRRenderURL:            v.GetString("QR_RENDER_URL"),
			MockEnabled:            IsTruthy(v.GetString("PAYMENT_GATEWAY_MOCK")) || IsTruthy(v.GetString("MERCADOPAGO_MOCK")),
			MockApproveAfter:       v.GetInt("PAYMENT_GATEWAY_MOCK_APPROVE_AFTER"),
			MercadoPagoAccessToken: strings.TrimSpace(v.GetString("MERCADOPAGO_ACCESS_TOKEN")),
		},
		Mediator: MediatorConfig{
			BaseURL: strings.TrimSpace(v.GetString("MEDIATOR_BASE_URL")),
			Secret:  strings.TrimSpace(v.GetString("MEDIATOR_SECRET")),
		},
		Proxy: ProxyConfig{Secret: strings.TrimSpace(v.GetString("PROXY_SECRET"))},
		Session: SessionConfig{
			Store:           strings.ToLower(strings.TrimSpace(v.GetString("SESSION_STORE"))),
			Retention:       v.GetDuration("SESSION_RETENTION"),
			ExpiryCountdown: v.GetDuration("SESSION_EXPIRY_COUNTDOWN"),
			SweepInterval:   v.GetDuration("SESSION_SWEEP_INTERVAL"),
		},
		Polling: PollingConfig{
			Tick:         v.GetDuration("POLL_TICK"),
			Initial:      v.GetDuration("POLL_INITIAL_INTERVAL"),
			Pending:      v.GetDuration("POLL_PENDING_INTERVAL"),
			ErrorBackoff: v.GetDuration("POLL_ERROR_INTERVAL"),
			CallTimeout:  v.GetDuration("POLL_CALL_TIMEOUT"),
			Concurrency:  v.GetInt("POLL_CONCURRENCY"),
		},
		Analytics: AnalyticsConfig{
			CollectorURL:      strings.TrimSpace(v.GetString("ANALYTICS_COLLECTOR_URL")),
			PixelID:           strings.TrimSpace(v.GetString("ANALYTICS_PIXEL_ID")),
			AccessToken:       strings.TrimSpace(v.GetString("ANALYTICS_ACCESS_TOKEN")),
			Currency:          strings.ToUpper(strings.TrimSpace(v.GetString("ANALYTICS_CURRENCY"))),
			Timeout:           v.GetDuration("ANALYTICS_TIMEOUT"),
			RedundantChannels: v.GetBool("ANALYTICS_REDUNDANT_CHANNELS"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		Postgres: PostgresConfig{URL: strings.TrimSpace(v.GetString("DATABASE_URL"))},
		DynamoDB: DynamoDBConfig{
			Region:          v.GetString("AWS_REGION"),
			Endpoint:        strings.TrimSpace(v.GetString("DYNAMODB_ENDPOINT")),
			AccessKeyID:     v.GetString("AWS_ACCESS_KEY_ID"),
			SecretAccessKey: v.GetString("AWS_SECRET_ACCESS_KEY"),
			Table:           v.GetString("SESSIONS_TABLE"),
		},
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.Session.Store {
	case StoreMemory, StoreRedis, StoreDynamoDB, StorePostgres:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownSessionStore, c.Session.Store)
	}
	switch c.Provider.Kind {
	case ProviderHTTP, ProviderMercadoPago:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownProvider, c.Provider.Kind)
	}
	durations := map[string]time.Duration{
		"SESSION_RETENTION":        c.Session.Retention,
		"SESSION_EXPIRY_COUNTDOWN": c.Session.ExpiryCountdown,
		"SESSION_SWEEP_INTERVAL":   c.Session.SweepInterval,
		"POLL_TICK":                c.Polling.Tick,
		"POLL_INITIAL_INTERVAL":    c.Polling.Initial,
		"POLL_PENDING_INTERVAL":    c.Polling.Pending,
		"POLL_ERROR_INTERVAL":      c.Polling.ErrorBackoff,
		"PROVIDER_TIMEOUT":         c.Provider.Timeout,
	}
	for key, d := range durations {
		if d <= 0 {
			return fmt.Errorf("%w: %s", ErrInvalidDuration, key)
		}
	}
	return nil
}

// IsTruthy accepts the flag spellings used by the mock-mode switches.
func IsTruthy(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on", "mock":
		return true
	}
	return false
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
