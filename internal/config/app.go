package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type HTTPServer struct {
	Port string `mapstructure:"port"`
}

type DbServer struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Pass     string `mapstructure:"pass"`
	Name     string `mapstructure:"name"`
	MaxConns int32  `mapstructure:"max_conns"`
}

func (config *DbServer) GetConnectionStr() string {
	return fmt.Sprintf(
		"user=%s password=%s host=%s port=%s dbname=%s sslmode=disable",
		config.User, config.Pass, config.Host, config.Port, config.Name,
	)
}

type HTTPClient struct {
	TimeoutSeconds int `mapstructure:"timeout_seconds"`
}

type Logging struct {
	Level string `mapstructure:"level"`
}

type Scheduler struct {
	RatesJobDurationSec   int `mapstructure:"rates_job_duration_sec"`
	WalletsJobDurationSec int `mapstructure:"wallets_job_duration_sec"`
	OrdersJobDurationSec  int `mapstructure:"orders_job_duration_sec"`
}

type Exchange struct {
	BaseURL           string  `mapstructure:"base_url"`
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
}

// Portfolio names the pivots every conversion goes through.
type Portfolio struct {
	ReferenceAsset string `mapstructure:"reference_asset"`
	StableAsset    string `mapstructure:"stable_asset"`
}

type Cache struct {
	MaxItems int64 `mapstructure:"max_items"`
}

type Security struct {
	Secret string `mapstructure:"secret"`
}

type AppConfig struct {
	HTTPServer HTTPServer `mapstructure:"http_server"`
	DbServer   DbServer   `mapstructure:"db_server"`
	HTTPClient HTTPClient `mapstructure:"http_client"`
	Logging    Logging    `mapstructure:"logging"`
	Scheduler  Scheduler  `mapstructure:"scheduler"`
	Exchange   Exchange   `mapstructure:"exchange"`
	Portfolio  Portfolio  `mapstructure:"portfolio"`
	Cache      Cache      `mapstructure:"cache"`
	Security   Security   `mapstructure:"security"`
}

func Init() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}
	return Load(configPath)
}

// Load reads the yaml file at path and overlays env vars on top of it.
func Load(path string) (*AppConfig, error) {
	var cfg AppConfig

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	v.SetDefault("http_server.port", "8000")
	v.SetDefault("db_server.max_conns", 10)
	v.SetDefault("http_client.timeout_seconds", 10)
	v.SetDefault("logging.level", "info")
	v.SetDefault("scheduler.rates_job_duration_sec", 60)
	v.SetDefault("scheduler.wallets_job_duration_sec", 60)
	v.SetDefault("scheduler.orders_job_duration_sec", 300)
	v.SetDefault("exchange.base_url", "https://api.binance.com")
	v.SetDefault("exchange.requests_per_second", 10)
	v.SetDefault("portfolio.reference_asset", "BTC")
	v.SetDefault("portfolio.stable_asset", "USDT")
	v.SetDefault("cache.max_items", 4096)

	// db server env vars
	_ = v.BindEnv("db_server.host", "DB_HOST")
	_ = v.BindEnv("db_server.port", "DB_PORT")
	_ = v.BindEnv("db_server.user", "DB_USER")
	_ = v.BindEnv("db_server.pass", "DB_PASS")
	_ = v.BindEnv("db_server.name", "DB_NAME")
	_ = v.BindEnv("db_server.max_conns", "DB_MAX_CONNS")

	// http client env vars
	_ = v.BindEnv("http_client.timeout_seconds", "HTTP_CLIENT_TIMEOUT_SECONDS")

	_ = v.BindEnv("http_server.port", "HTTP_PORT")
	_ = v.BindEnv("logging.level", "LOG_LEVEL")
	_ = v.BindEnv("exchange.base_url", "EXCHANGE_BASE_URL")
	_ = v.BindEnv("security.secret", "APP_SECRET")

	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	cfg.Portfolio.ReferenceAsset = strings.ToUpper(strings.TrimSpace(cfg.Portfolio.ReferenceAsset))
	cfg.Portfolio.StableAsset = strings.ToUpper(strings.TrimSpace(cfg.Portfolio.StableAsset))
	if cfg.Portfolio.ReferenceAsset == cfg.Portfolio.StableAsset {
		return nil, fmt.Errorf("reference and stable assets must differ, both are %q", cfg.Portfolio.ReferenceAsset)
	}
	if cfg.Security.Secret == "" {
		return nil, errors.New("security secret is required")
	}

	return &cfg, nil
}
