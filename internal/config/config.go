package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type DB struct {
	DbHOST     string `env:"DB_HOST,default=localhost"`
	DbPORT     string `env:"DB_PORT,default=5432"`
	DbUSER     string `env:"DB_USER,default=postgres"`
	DbPASSWORD string `env:"DB_PASSWORD,default=password"`
	DbNAME     string `env:"DB_NAME,default=raceplanner"`
	DbSSLMODE  string `env:"DB_SSLMODE,default=disable"`
	// DbCONN overrides the individual settings above when set.
	DbCONN string `env:"DB_CONN"`

	MaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS,default=25"`
	MaxIdleConns    int           `env:"DB_MAX_IDLE_CONNS,default=5"`
	ConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME,default=30m"`
	AutoMigrate     bool          `env:"DB_AUTO_MIGRATE,default=true"`
}

// Redis is optional. Without REDIS_URL the server runs without token revocation.
type Redis struct {
	URL string `env:"REDIS_URL"`
}

type Config struct {
	ServerPort        int           `env:"SERVER_PORT,default=8080"`
	DB                DB
	Redis             Redis
	JWTSecretKey      string        `env:"JWT_SECRET_KEY,required"`
	TokenDuration     time.Duration `env:"TOKEN_DURATION,default=168h"`
	SessionCookieName string        `env:"SESSION_COOKIE_NAME,default=session_token"`
	LogLevel          string        `env:"LOG_LEVEL,default=info"`
	StrictHTTPErrors  bool          `env:"STRICT_HTTP_ERRORS,default=false"`
	ShutdownTimeout   time.Duration `env:"SHUTDOWN_TIMEOUT,default=10s"`

	// CORSAllowedOrigins is a comma-separated list of origins allowed to send credentials.
	CORSAllowedOrigins string `env:"CORS_ALLOWED_ORIGINS"`
}

// DSN returns the lib/pq connection string.
func (d DB) DSN() string {
	if d.DbCONN != "" {
		return d.DbCONN
	}
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.DbHOST,
		d.DbPORT,
		d.DbUSER,
		d.DbPASSWORD,
		d.DbNAME,
		d.DbSSLMODE,
	)
}

// URL returns the database address in URL form, as golang-migrate expects it.
func (d DB) URL() string {
	if d.DbCONN != "" {
		return d.DbCONN
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		d.DbUSER, d.DbPASSWORD, d.DbHOST, d.DbPORT, d.DbNAME, d.DbSSLMODE)
}

// AllowedOrigins splits CORSAllowedOrigins, dropping blanks.
func (c *Config) AllowedOrigins() []string {
	origins := make([]string, 0)
	for _, origin := range strings.Split(c.CORSAllowedOrigins, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}

func (c *Config) Level() logrus.Level {
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return logrus.InfoLevel
	}
	return level
}

func LoadConfig() (*Config, error) {
	err := godotenv.Load()
	if err != nil {
		logrus.Warn("Warning: .env file not found, using environment variables")
	}

	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("error reading configuration: %w", err)
	}

	return &cfg, nil
}
