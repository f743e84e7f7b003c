package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = ""

	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App   AppConfig
	Data  DataConfig
	Redis RedisConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"ARRIVAGE_APP_ENV" default:"dev"`
	Port         string `envconfig:"ARRIVAGE_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"ARRIVAGE_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"ARRIVAGE_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// DataConfig locates the CSV snapshot exports. BaseLocation is either a
// directory or an http(s) base URL; file names default to the dataset's
// export names.
type DataConfig struct {
	BaseLocation string        `envconfig:"ARRIVAGE_DATA_BASE_LOCATION" default:"data"`
	FetchTimeout time.Duration `envconfig:"ARRIVAGE_DATA_FETCH_TIMEOUT" default:"30s"`

	VendorsFile      string `envconfig:"ARRIVAGE_DATA_VENDORS_FILE" default:"dataset-arrivage-organizations - DB_VENDORS.csv"`
	BuyersProFile    string `envconfig:"ARRIVAGE_DATA_BUYERS_PRO_FILE" default:"dataset-arrivage-organizations - DB_BUYERS_PRO.csv"`
	BuyersNotProFile string `envconfig:"ARRIVAGE_DATA_BUYERS_NOPRO_FILE" default:"dataset-arrivage-organizations - DB_BUYERS_NOPRO.csv"`

	CancelledOrdersFile string `envconfig:"ARRIVAGE_DATA_CANCELLED_ORDERS_FILE" default:"dataset-arrivage-orders - Cancelled.csv"`
	CompletedOrdersFile string `envconfig:"ARRIVAGE_DATA_COMPLETED_ORDERS_FILE" default:"dataset-arrivage-orders - Completed.csv"`
	ConfirmedOrdersFile string `envconfig:"ARRIVAGE_DATA_CONFIRMED_ORDERS_FILE" default:"dataset-arrivage-orders - Confirmed.csv"`
	DeliveredOrdersFile string `envconfig:"ARRIVAGE_DATA_DELIVERED_ORDERS_FILE" default:"dataset-arrivage-orders - Delivered.csv"`
	PaidOrdersFile      string `envconfig:"ARRIVAGE_DATA_PAID_ORDERS_FILE" default:"dataset-arrivage-orders - Paid.csv"`
	SubmittedOrdersFile string `envconfig:"ARRIVAGE_DATA_SUBMITTED_ORDERS_FILE" default:"dataset-arrivage-orders - Submitted.csv"`
}

// RedisConfig configures the merged-orders cache. An empty URL and address
// disables caching entirely.
type RedisConfig struct {
	URL          string        `envconfig:"ARRIVAGE_REDIS_URL"`
	Address      string        `envconfig:"ARRIVAGE_REDIS_ADDR"`
	Password     string        `envconfig:"ARRIVAGE_REDIS_PASSWORD"`
	DB           int           `envconfig:"ARRIVAGE_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"ARRIVAGE_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"ARRIVAGE_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"ARRIVAGE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"ARRIVAGE_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"ARRIVAGE_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// Enabled reports whether a cache backend is configured.
func (r RedisConfig) Enabled() bool {
	return r.URL != "" || r.Address != ""
}
