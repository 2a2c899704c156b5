package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"gstbill/internal/domain"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	DB        DBConfig
	Storage   StorageConfig
	Redis     RedisConfig
	Log       LogConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
	Tax       TaxConfig
	Sequence  SequenceConfig
	Company   domain.CompanyDetails
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// Storage drivers.
const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

// StorageConfig selects the persistence backend.
type StorageConfig struct {
	Driver string `mapstructure:"driver"`
}

// RedisConfig holds the optional shared invoice counter settings.
type RedisConfig struct {
	URL        string `mapstructure:"url"`
	CounterKey string `mapstructure:"counter_key"`
}

// Enabled reports whether a Redis URL was configured.
func (r *RedisConfig) Enabled() bool {
	return r.URL != ""
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// RateLimitConfig limits mutating requests per client IP.
type RateLimitConfig struct {
	RequestsPerSecond float64 `mapstructure:"rps"`
	Burst             int     `mapstructure:"burst"`
}

// TaxConfig holds GST rates in percent and the issuer's home state.
type TaxConfig struct {
	CGST          float64 `mapstructure:"cgst"`
	SGST          float64 `mapstructure:"sgst"`
	IGST          float64 `mapstructure:"igst"`
	HomeState     string  `mapstructure:"home_state"`
	HomeStateCode string  `mapstructure:"home_state_code"`
}

// SequenceConfig controls invoice numbering.
type SequenceConfig struct {
	Prefix   string `mapstructure:"prefix"`
	Width    int    `mapstructure:"width"`
	Strategy string `mapstructure:"strategy"`
	// Counter is "none", "local" or "redis".
	Counter string `mapstructure:"counter"`
}

// Load reads configuration from environment variables with the GSTBILL_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("GSTBILL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "gstbill")
	v.SetDefault("db.password", "gstbill_secret")
	v.SetDefault("db.name", "gstbill_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	v.SetDefault("storage.driver", StoragePostgres)

	v.SetDefault("redis.url", "")
	v.SetDefault("redis.counter_key", "gstbill:invoice:counter")

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000,http://localhost:5173")

	v.SetDefault("ratelimit.rps", 10)
	v.SetDefault("ratelimit.burst", 20)

	// Tax defaults: 5% slab, issuer in Tamil Nadu
	v.SetDefault("tax.cgst", 2.5)
	v.SetDefault("tax.sgst", 2.5)
	v.SetDefault("tax.igst", 5.0)
	v.SetDefault("tax.home_state", "TAMIL NADU")
	v.SetDefault("tax.home_state_code", "33")

	v.SetDefault("sequence.prefix", "INV")
	v.SetDefault("sequence.width", 3)
	v.SetDefault("sequence.strategy", "max")
	v.SetDefault("sequence.counter", "local")

	// Company defaults
	v.SetDefault("company.name", "SMR AGRO DERIVATIVES")
	v.SetDefault("company.address", "31/1B, VANCHIODAIPATTY\nOLD KARUR ROAD\nDINDIGUL.624005")
	v.SetDefault("company.gstin", "33DNKP57481H1ZF")
	v.SetDefault("company.mobile", "7010583881, 9842190216")
	v.SetDefault("company.email", "smragro2020@gmail.com")
	v.SetDefault("company.bank.name", "Canara Bank")
	v.SetDefault("company.bank.account_number", "125002893716")
	v.SetDefault("company.bank.ifsc", "CNRB0001006")
	v.SetDefault("company.bank.branch", "CANARA BANK DINDIGUL")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                 "GSTBILL_SERVER_PORT",
		"server.read_timeout":         "GSTBILL_SERVER_READ_TIMEOUT",
		"server.write_timeout":        "GSTBILL_SERVER_WRITE_TIMEOUT",
		"server.environment":          "GSTBILL_SERVER_ENVIRONMENT",
		"db.host":                     "GSTBILL_DB_HOST",
		"db.port":                     "GSTBILL_DB_PORT",
		"db.user":                     "GSTBILL_DB_USER",
		"db.password":                 "GSTBILL_DB_PASSWORD",
		"db.name":                     "GSTBILL_DB_NAME",
		"db.sslmode":                  "GSTBILL_DB_SSLMODE",
		"db.max_open":                 "GSTBILL_DB_MAX_OPEN",
		"db.max_idle":                 "GSTBILL_DB_MAX_IDLE",
		"storage.driver":              "GSTBILL_STORAGE_DRIVER",
		"redis.url":                   "GSTBILL_REDIS_URL",
		"redis.counter_key":           "GSTBILL_REDIS_COUNTER_KEY",
		"log.level":                   "GSTBILL_LOG_LEVEL",
		"log.format":                  "GSTBILL_LOG_FORMAT",
		"cors.allowed_origins":        "GSTBILL_CORS_ALLOWED_ORIGINS",
		"ratelimit.rps":               "GSTBILL_RATELIMIT_RPS",
		"ratelimit.burst":             "GSTBILL_RATELIMIT_BURST",
		"tax.cgst":                    "GSTBILL_TAX_CGST",
		"tax.sgst":                    "GSTBILL_TAX_SGST",
		"tax.igst":                    "GSTBILL_TAX_IGST",
		"tax.home_state":              "GSTBILL_TAX_HOME_STATE",
		"tax.home_state_code":         "GSTBILL_TAX_HOME_STATE_CODE",
		"sequence.prefix":             "GSTBILL_SEQUENCE_PREFIX",
		"sequence.width":              "GSTBILL_SEQUENCE_WIDTH",
		"sequence.strategy":           "GSTBILL_SEQUENCE_STRATEGY",
		"sequence.counter":            "GSTBILL_SEQUENCE_COUNTER",
		"company.name":                "GSTBILL_COMPANY_NAME",
		"company.address":             "GSTBILL_COMPANY_ADDRESS",
		"company.gstin":               "GSTBILL_COMPANY_GSTIN",
		"company.mobile":              "GSTBILL_COMPANY_MOBILE",
		"company.email":               "GSTBILL_COMPANY_EMAIL",
		"company.bank.name":           "GSTBILL_COMPANY_BANK_NAME",
		"company.bank.account_number": "GSTBILL_COMPANY_BANK_ACCOUNT_NUMBER",
		"company.bank.ifsc":           "GSTBILL_COMPANY_BANK_IFSC",
		"company.bank.branch":         "GSTBILL_COMPANY_BANK_BRANCH",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if GSTBILL_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("GSTBILL_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.Storage = StorageConfig{
		Driver: strings.ToLower(strings.TrimSpace(v.GetString("storage.driver"))),
	}
	cfg.Redis = RedisConfig{
		URL:        v.GetString("redis.url"),
		CounterKey: v.GetString("redis.counter_key"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: splitList(v.GetString("cors.allowed_origins")),
	}
	cfg.RateLimit = RateLimitConfig{
		RequestsPerSecond: v.GetFloat64("ratelimit.rps"),
		Burst:             v.GetInt("ratelimit.burst"),
	}
	cfg.Tax = TaxConfig{
		CGST:          v.GetFloat64("tax.cgst"),
		SGST:          v.GetFloat64("tax.sgst"),
		IGST:          v.GetFloat64("tax.igst"),
		HomeState:     strings.ToUpper(strings.TrimSpace(v.GetString("tax.home_state"))),
		HomeStateCode: v.GetString("tax.home_state_code"),
	}
	cfg.Sequence = SequenceConfig{
		Prefix:   v.GetString("sequence.prefix"),
		Width:    v.GetInt("sequence.width"),
		Strategy: v.GetString("sequence.strategy"),
		Counter:  strings.ToLower(strings.TrimSpace(v.GetString("sequence.counter"))),
	}
	cfg.Company = domain.CompanyDetails{
		Name:          v.GetString("company.name"),
		Address:       v.GetString("company.address"),
		GSTIN:         v.GetString("company.gstin"),
		Mobile:        v.GetString("company.mobile"),
		Email:         v.GetString("company.email"),
		HomeState:     cfg.Tax.HomeState,
		HomeStateCode: cfg.Tax.HomeStateCode,
		BankDetails: domain.BankDetails{
			Name:          v.GetString("company.bank.name"),
			AccountNumber: v.GetString("company.bank.account_number"),
			IFSCCode:      v.GetString("company.bank.ifsc"),
			Branch:        v.GetString("company.bank.branch"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Storage.Driver {
	case StorageMemory, StoragePostgres:
	default:
		return fmt.Errorf("config: unknown storage driver %q", c.Storage.Driver)
	}
	switch c.Sequence.Counter {
	case "none", "local":
	case "redis":
		if !c.Redis.Enabled() {
			return fmt.Errorf("config: sequence counter %q requires GSTBILL_REDIS_URL", c.Sequence.Counter)
		}
	default:
		return fmt.Errorf("config: unknown sequence counter %q", c.Sequence.Counter)
	}
	if c.Sequence.Prefix == "" || c.Sequence.Width <= 0 {
		return fmt.Errorf("config: sequence prefix and width are required")
	}
	if c.Tax.CGST < 0 || c.Tax.SGST < 0 || c.Tax.IGST < 0 {
		return fmt.Errorf("config: tax rates must not be negative")
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}
