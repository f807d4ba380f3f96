package config

import (
	"log"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Port          string        `env:"PORT" envDefault:"8080"`
	AllowedOrigin string        `env:"ALLOWED_ORIGIN" envDefault:"http://localhost:3000"`
	DatabaseURL   string        `env:"DATABASE_URL"`
	JWTSecret     string        `env:"JWT_SECRET"`
	AdminKey      string        `env:"ADMIN_KEY"`
	Clerk         Clerk
	CoinGecko     CoinGecko
	FearGreedURL  string        `env:"FEAR_GREED_URL" envDefault:"https://api.alternative.me/fng/"`
	TokenRefresh  time.Duration `env:"TOKEN_REFRESH_INTERVAL" envDefault:"45m"`
	SnapshotEvery time.Duration `env:"SNAPSHOT_INTERVAL" envDefault:"15m"`
}

type Clerk struct {
	SecretKey     string `env:"CLERK_SECRET_KEY"`
	WebhookSecret string `env:"CLERK_WEBHOOK_SECRET"`
}

type CoinGecko struct {
	URL      string        `env:"COINGECKO_URL" envDefault:"https://api.coingecko.com/api/v3"`
	Timeout  time.Duration `env:"COINGECKO_TIMEOUT" envDefault:"10s"`
	CacheTTL time.Duration `env:"PRICE_CACHE_TTL" envDefault:"5m"`
}

// MustLoad carga la configuración desde el entorno (y .env si existe)
func MustLoad() *Config {
	_ = godotenv.Load(".env")

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		log.Fatalf("Error al cargar la configuración: %v", err)
	}

	return cfg
}
