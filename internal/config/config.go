package config

import (
	"fmt"
	"log"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

var AppEnv Config

type Config struct {
	Port      string `env:"PORT" envDefault:"8080"`
	MongoURI  string `env:"MONGO_URI,required,notEmpty"`
	DBName    string `env:"DB_NAME" envDefault:"canteen"`
	JWTSecret string `env:"JWT_SECRET,required,notEmpty"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`

	// WalletCreditLimit is the largest single top-up, in whole currency units.
	WalletCreditLimit    int64         `env:"WALLET_CREDIT_LIMIT" envDefault:"100000"`
	TaxRatePercent       int64         `env:"TAX_RATE_PERCENT" envDefault:"5"`
	EstimatedPrepMinutes int           `env:"ESTIMATED_PREP_MINUTES" envDefault:"30"`
	RequestTimeout       time.Duration `env:"REQUEST_TIMEOUT" envDefault:"5s"`
	ShutdownTimeout      time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// Load reads an optional .env file and then the process environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println(".env not loaded:", err)
	}
	cfg, err := Parse()
	if err != nil {
		return Config{}, err
	}
	AppEnv = cfg
	return cfg, nil
}

func Parse() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("error while parsing config: %w", err)
	}
	if cfg.WalletCreditLimit <= 0 {
		return Config{}, fmt.Errorf("WALLET_CREDIT_LIMIT must be positive, got %d", cfg.WalletCreditLimit)
	}
	if cfg.TaxRatePercent < 0 {
		return Config{}, fmt.Errorf("TAX_RATE_PERCENT must not be negative, got %d", cfg.TaxRatePercent)
	}
	if cfg.RequestTimeout <= 0 {
		return Config{}, fmt.Errorf("REQUEST_TIMEOUT must be positive, got %s", cfg.RequestTimeout)
	}
	return cfg, nil
}
