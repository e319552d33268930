package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// App holds the shared configuration surface for every kormo service.
// All values have working defaults for the docker-compose dev stack.
type App struct {
	// Postgres (one shared database across services)
	DBHost string `envconfig:"DB_HOST" default:"postgres"`
	DBPort int    `envconfig:"DB_PORT" default:"5432"`
	DBUser string `envconfig:"DB_USER" default:"kormo"`
	DBPass string `envconfig:"DB_PASS" default:"kormo"`
	DBName string `envconfig:"DB_NAME" default:"kormo"`

	// Redis (event channel + search cache)
	RedisHost string `envconfig:"REDIS_HOST" default:"redis"`
	RedisPort int    `envconfig:"REDIS_PORT" default:"6379"`
	RedisDB   int    `envconfig:"REDIS_DB" default:"0"`

	// Event channel
	EventChannel string `envconfig:"EVENT_CHANNEL" default:"booking.events"`

	// Payments
	WebhookSecret string `envconfig:"PAYMENTS_WEBHOOK_SECRET" default:"dev-secret"`

	// Auth / JWT
	AuthSecret    string `envconfig:"AUTH_SECRET" default:"dev-secret-change-me"`
	AccessTTLSec  int    `envconfig:"ACCESS_TTL_SECONDS" default:"900"`
	RefreshTTLSec int    `envconfig:"REFRESH_TTL_SECONDS" default:"1209600"`

	// Search cache
	CacheTTLSec int `envconfig:"CACHE_TTL_SECONDS" default:"30"`

	// HTTP listen addresses
	AuthHTTPAddr     string `envconfig:"AUTH_HTTP_ADDR" default:":8002"`
	ProviderHTTPAddr string `envconfig:"PROVIDER_HTTP_ADDR" default:":8003"`
	SearchHTTPAddr   string `envconfig:"SEARCH_HTTP_ADDR" default:":8004"`
	PaymentsHTTPAddr string `envconfig:"PAYMENTS_HTTP_ADDR" default:":8005"`
	NotifyHTTPAddr   string `envconfig:"NOTIFY_HTTP_ADDR" default:":8006"`
}

func Load() (App, error) {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	var c App
	err := envconfig.Process("", &c)
	return c, err
}

// PostgresDSN builds the gorm connection string.
func (c App) PostgresDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		c.DBHost, c.DBPort, c.DBUser, c.DBPass, c.DBName)
}

// RedisAddr returns the host:port pair for the Redis client.
func (c App) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.RedisHost, c.RedisPort)
}
