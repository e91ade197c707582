package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	Cart         CartConfig
	Pricing      PricingConfig
	Resend       ResendConfig
	Merchant     MerchantConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.FeatureFlags.UseSQLite {
		cfg.DB.forceSQLite()
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	if err := cfg.Pricing.validate(); err != nil {
		return nil, err
	}
	if err := cfg.Resend.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"PRINTSHOP_APP_ENV" required:"true"`
	Port         string `envconfig:"PRINTSHOP_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"PRINTSHOP_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"PRINTSHOP_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"PRINTSHOP_DB_DSN"`
	Driver string `envconfig:"PRINTSHOP_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"PRINTSHOP_DB_HOST"`
	LegacyPort     int    `envconfig:"PRINTSHOP_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"PRINTSHOP_DB_USER"`
	LegacyPassword string `envconfig:"PRINTSHOP_DB_PASSWORD"`
	LegacyName     string `envconfig:"PRINTSHOP_DB_NAME"`
	LegacySSLMode  string `envconfig:"PRINTSHOP_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"PRINTSHOP_DB_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns    int           `envconfig:"PRINTSHOP_DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"PRINTSHOP_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"PRINTSHOP_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"PRINTSHOP_REDIS_URL" required:"true"`
	Address      string        `envconfig:"PRINTSHOP_REDIS_ADDR"`
	Password     string        `envconfig:"PRINTSHOP_REDIS_PASSWORD"`
	DB           int           `envconfig:"PRINTSHOP_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"PRINTSHOP_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"PRINTSHOP_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"PRINTSHOP_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"PRINTSHOP_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"PRINTSHOP_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type CartConfig struct {
	TTL           time.Duration `envconfig:"PRINTSHOP_CART_TTL" default:"720h"`
	SessionCookie string        `envconfig:"PRINTSHOP_CART_SESSION_COOKIE" default:"ps_session"`
}

// PricingConfig carries the storefront's monetary policy. Tax applies to the
// subtotal only unless TaxShipping is set (jurisdiction-specific).
type PricingConfig struct {
	TaxRate               string `envconfig:"PRINTSHOP_PRICING_TAX_RATE" default:"0.05"`
	FreeShippingThreshold string `envconfig:"PRINTSHOP_PRICING_FREE_SHIPPING_THRESHOLD" default:"100.00"`
	TaxShipping           bool   `envconfig:"PRINTSHOP_PRICING_TAX_SHIPPING" default:"false"`
}

func (p PricingConfig) validate() error {
	rate, err := decimal.NewFromString(p.TaxRate)
	if err != nil {
		return fmt.Errorf("invalid tax rate %q: %w", p.TaxRate, err)
	}
	if rate.IsNegative() {
		return fmt.Errorf("tax rate must be non-negative")
	}
	threshold, err := decimal.NewFromString(p.FreeShippingThreshold)
	if err != nil {
		return fmt.Errorf("invalid free shipping threshold %q: %w", p.FreeShippingThreshold, err)
	}
	if threshold.IsNegative() {
		return fmt.Errorf("free shipping threshold must be non-negative")
	}
	return nil
}

// TaxRateDecimal returns the parsed tax rate. validate() runs at load time
// so the parse cannot fail here.
func (p PricingConfig) TaxRateDecimal() decimal.Decimal {
	rate, _ := decimal.NewFromString(p.TaxRate)
	return rate
}

// FreeShippingThresholdDecimal returns the parsed threshold amount.
func (p PricingConfig) FreeShippingThresholdDecimal() decimal.Decimal {
	threshold, _ := decimal.NewFromString(p.FreeShippingThreshold)
	return threshold
}

// ResendConfig holds the transactional email provider credentials. The API
// key is a startup precondition, not a per-order failure mode.
type ResendConfig struct {
	APIKey      string        `envconfig:"PRINTSHOP_RESEND_API_KEY" required:"true"`
	BaseURL     string        `envconfig:"PRINTSHOP_RESEND_BASE_URL" default:"https://api.resend.com"`
	FromAddress string        `envconfig:"PRINTSHOP_RESEND_FROM" required:"true"`
	SendTimeout time.Duration `envconfig:"PRINTSHOP_RESEND_SEND_TIMEOUT" default:"10s"`
}

func (r ResendConfig) validate() error {
	if strings.TrimSpace(r.APIKey) == "" {
		return fmt.Errorf("resend api key is required")
	}
	if strings.TrimSpace(r.FromAddress) == "" {
		return fmt.Errorf("resend from address is required")
	}
	return nil
}

// MerchantConfig identifies the merchant side of order notifications and the
// e-transfer payment instructions embedded in both email bodies.
type MerchantConfig struct {
	BusinessName   string `envconfig:"PRINTSHOP_MERCHANT_BUSINESS_NAME" default:"Lisa T Photography"`
	OrderEmail     string `envconfig:"PRINTSHOP_MERCHANT_ORDER_EMAIL" required:"true"`
	ETransferEmail string `envconfig:"PRINTSHOP_MERCHANT_ETRANSFER_EMAIL" required:"true"`
	Phone          string `envconfig:"PRINTSHOP_MERCHANT_PHONE" default:""`
	PickupLocation string `envconfig:"PRINTSHOP_MERCHANT_PICKUP_LOCATION" default:"Strathmore, AB"`
	SecurityAnswer string `envconfig:"PRINTSHOP_MERCHANT_ETRANSFER_ANSWER" default:"Lisa T Photography"`
	OrderPrefix    string `envconfig:"PRINTSHOP_MERCHANT_ORDER_PREFIX" default:"LT"`
	ReplyTo        string `envconfig:"PRINTSHOP_MERCHANT_REPLY_TO" default:""`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"PRINTSHOP_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"PRINTSHOP_AUTO_MIGRATE" default:"false"`
}

// forceSQLite switches the datasource to the embedded sqlite driver for
// local development, defaulting the DSN to a workspace file.
func (db *DBConfig) forceSQLite() {
	db.Driver = "sqlite"
	if db.DSN == "" {
		db.DSN = "file:printshop.db"
	}
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
