package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/vinabike/storefront/pkg/utils"
)

type Config struct {
	Env         string      `yaml:"env" env:"ENV" env-default:"local"`
	ServiceName string      `yaml:"service_name" env:"SERVICE_NAME" env-default:"storefront"`
	LogLevel    string      `yaml:"log_level" env:"LOG_LEVEL" env-default:"info"`
	HTTP        HTTP        `yaml:"http"`
	Postgres    PG          `yaml:"postgres"`
	Redis       Redis       `yaml:"redis"`
	Kafka       Kafka       `yaml:"kafka"`
	Tracing     Tracing     `yaml:"tracing"`
	MercadoPago MercadoPago `yaml:"mercadopago"`
	Store       Store       `yaml:"store"`
	Feed        Feed        `yaml:"feed"`
	Limiter     Limiter     `yaml:"limiter"`
}

type HTTP struct {
	Port    string        `yaml:"port" env:"HTTP_PORT" env-default:":3000"`
	Timeout time.Duration `yaml:"timeout" env:"HTTP_TIMEOUT" env-default:"15s"`
}

type PG struct {
	URL      string `yaml:"url" env:"DB_URL"`
	MaxConns int32  `yaml:"max_conns" env-default:"10"`
	MinConns int32  `yaml:"min_conns" env-default:"2"`
}

type Redis struct {
	Enabled bool   `yaml:"enabled" env:"REDIS_ENABLED" env-default:"false"`
	Addr    string `yaml:"addr" env:"REDIS_ADDR" env-default:"localhost:6379"`
}

// Kafka publishing is skipped when Brokers is empty.
type Kafka struct {
	Brokers []string `yaml:"brokers" env:"KAFKA_BROKERS" env-separator:","`
	Topic   string   `yaml:"topic" env:"KAFKA_PAYMENT_TOPIC" env-default:"payment_events"`
	// Timeout bounds broker I/O and how long a webhook waits for its event.
	Timeout time.Duration `yaml:"timeout" env:"KAFKA_TIMEOUT" env-default:"2s"`
}

type Tracing struct {
	Enabled  bool   `yaml:"enabled" env:"TRACING_ENABLED" env-default:"false"`
	Endpoint string `yaml:"endpoint" env:"JAEGER_ENDPOINT" env-default:"localhost:4318"`
}

type MercadoPago struct {
	BaseURL string        `yaml:"base_url" env:"MERCADOPAGO_BASE_URL" env-default:"https://api.mercadopago.com"`
	Timeout time.Duration `yaml:"timeout" env:"MERCADOPAGO_TIMEOUT" env-default:"10s"`
	Breaker Breaker       `yaml:"breaker"`
}

type Breaker struct {
	MaxRequests  uint32        `yaml:"max_requests" env-default:"3"`
	Interval     time.Duration `yaml:"interval" env-default:"5s"`
	Timeout      time.Duration `yaml:"timeout" env-default:"10s"`
	MinRequests  uint32        `yaml:"min_requests" env-default:"5"`
	FailureRatio float64       `yaml:"failure_ratio" env-default:"0.6"`
}

// Store holds the values used when website_settings has no entry for a key.
type Store struct {
	Name            string `yaml:"name" env-default:"Vinabike"`
	URL             string `yaml:"url" env-default:"https://tienda.vinabike.cl"`
	Brand           string `yaml:"brand" env-default:"Vinabike"`
	Description     string `yaml:"description" env-default:"Bicicletas y accesorios en Chile"`
	ProductCategory string `yaml:"product_category" env-default:"Sporting Goods > Cycling"`
	Currency        string `yaml:"currency" env-default:"CLP"`
}

type Feed struct {
	CacheTTL time.Duration `yaml:"cache_ttl" env:"FEED_CACHE_TTL" env-default:"0s"`
}

type Limiter struct {
	Max        int           `yaml:"max" env-default:"20"`
	Expiration time.Duration `yaml:"expiration" env-default:"5s"`
}

func MustLoad() *Config {
	configPath := utils.ParseWithFallback("CONFIG_PATH", "./config/local.yaml")

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("config file does not exists: %v\n", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		log.Fatalf("error reading config: %v", err)
	}

	return cfg
}

func Load(path string) (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
