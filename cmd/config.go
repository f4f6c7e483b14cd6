package cmd

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"pizzeria/internal/adapters/out/zonecache"
	"pizzeria/internal/jobs"

	"github.com/shopspring/decimal"
)

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	JWTSecret    string
	DeliveryFee  decimal.Decimal
	ZoneCacheTTL time.Duration

	DispatchRetrySchedule  string
	ZoneCachePurgeSchedule string

	KafkaHost              string
	KafkaOrderChangedTopic string
}

// LoadConfig reads the configuration through getenv, normally os.Getenv
// after .env has been loaded. Optional values fall back to defaults.
func LoadConfig(getenv func(string) string) (Config, error) {
	cfg := Config{
		HTTPPort:               valueOr(getenv("HTTP_PORT"), "8080"),
		DBHost:                 getenv("DB_HOST"),
		DBPort:                 valueOr(getenv("DB_PORT"), "5432"),
		DBUser:                 getenv("DB_USER"),
		DBPassword:             getenv("DB_PASSWORD"),
		DBName:                 getenv("DB_NAME"),
		DBSslMode:              valueOr(getenv("DB_SSLMODE"), "disable"),
		JWTSecret:              getenv("JWT_SECRET"),
		DeliveryFee:            decimal.Zero,
		ZoneCacheTTL:           zonecache.DefaultTTL,
		DispatchRetrySchedule:  valueOr(getenv("DISPATCH_RETRY_SCHEDULE"), jobs.DefaultDispatchRetrySchedule),
		ZoneCachePurgeSchedule: valueOr(getenv("ZONE_CACHE_PURGE_SCHEDULE"), jobs.DefaultZoneCachePurgeSchedule),
		KafkaHost:              getenv("KAFKA_HOST"),
		KafkaOrderChangedTopic: valueOr(getenv("KAFKA_ORDER_CHANGED_TOPIC"), "orders.changed"),
	}

	var parseErrs []error
	if raw := getenv("DELIVERY_FEE"); raw != "" {
		fee, err := decimal.NewFromString(raw)
		if err != nil {
			parseErrs = append(parseErrs, fmt.Errorf("DELIVERY_FEE: %w", err))
		}
		cfg.DeliveryFee = fee
	}
	if raw := getenv("ZONE_CACHE_TTL"); raw != "" {
		ttl, err := time.ParseDuration(raw)
		if err != nil {
			parseErrs = append(parseErrs, fmt.Errorf("ZONE_CACHE_TTL: %w", err))
		}
		cfg.ZoneCacheTTL = ttl
	}
	if err := errors.Join(parseErrs...); err != nil {
		return Config{}, err
	}

	return cfg, cfg.Validate()
}

// Validate reports every missing or out of range setting at once.
func (c Config) Validate() error {
	var problems []error
	required := []struct{ key, value string }{
		{"HTTP_PORT", c.HTTPPort},
		{"DB_HOST", c.DBHost},
		{"DB_PORT", c.DBPort},
		{"DB_USER", c.DBUser},
		{"DB_NAME", c.DBName},
		{"DB_SSLMODE", c.DBSslMode},
		{"JWT_SECRET", c.JWTSecret},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			problems = append(problems, fmt.Errorf("%s is required", r.key))
		}
	}
	if c.DeliveryFee.IsNegative() {
		problems = append(problems, fmt.Errorf("DELIVERY_FEE must not be negative, got %s", c.DeliveryFee))
	}
	if c.ZoneCacheTTL <= 0 {
		problems = append(problems, fmt.Errorf("ZONE_CACHE_TTL must be positive, got %s", c.ZoneCacheTTL))
	}
	return errors.Join(problems...)
}

// DSN is the libpq connection string of the database.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

// KafkaBrokers splits KAFKA_HOST on commas. It is empty when Kafka is off.
func (c Config) KafkaBrokers() []string {
	var brokers []string
	for _, b := range strings.Split(c.KafkaHost, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

func valueOr(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return v
}
