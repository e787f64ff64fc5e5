package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// JWT holds the token parameters shared by the auth service (issuing)
// and the gateway (verifying). The secret is read once at startup and
// passed into constructors; nothing reads it at call time.
type JWT struct {
	Secret   string        `env:"SECRET,notEmpty"`
	Issuer   string        `env:"ISSUER" envDefault:"npuplatform-auth"`
	Audience string        `env:"AUDIENCE" envDefault:"npuplatform"`
	Lifetime time.Duration `env:"LIFETIME" envDefault:"30m"`
}

// Database holds connection parameters for a service-owned Postgres.
type Database struct {
	DSN string `env:"DSN"`
}

// ObjectStorage holds MinIO parameters for the creation registry's
// image store.
type ObjectStorage struct {
	Endpoint  string `env:"ENDPOINT" envDefault:"localhost:9000"`
	AccessKey string `env:"ACCESS_KEY" envDefault:"npu-access-key"`
	SecretKey string `env:"SECRET_KEY" envDefault:"npu-secret-key"`
	Bucket    string `env:"BUCKET" envDefault:"npu-images"`
	UseSSL    bool   `env:"USE_SSL" envDefault:"false"`
	PublicURL string `env:"PUBLIC_URL" envDefault:"http://localhost:9000"`
}

// Auth configures the auth service.
type Auth struct {
	Addr     string   `env:"ADDR" envDefault:":8081"`
	Database Database `envPrefix:"DATABASE_"`
	JWT      JWT      `envPrefix:"JWT_"`
}

// Creations configures the creation registry service.
type Creations struct {
	Addr     string        `env:"ADDR" envDefault:":8082"`
	Database Database      `envPrefix:"DATABASE_"`
	Storage  ObjectStorage `envPrefix:"MINIO_"`
}

// Scores configures the score ledger service.
type Scores struct {
	Addr           string        `env:"ADDR" envDefault:":8083"`
	Database       Database      `envPrefix:"DATABASE_"`
	CreationsURL   string        `env:"CREATIONS_URL" envDefault:"http://localhost:8082"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"5s"`
}

// Search configures the search relay service.
type Search struct {
	Addr           string        `env:"ADDR" envDefault:":8084"`
	CreationsURL   string        `env:"CREATIONS_URL" envDefault:"http://localhost:8082"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"5s"`
}

// Gateway configures the external entry point.
type Gateway struct {
	Addr         string `env:"ADDR" envDefault:":8080"`
	AuthURL      string `env:"AUTH_URL" envDefault:"http://localhost:8081"`
	CreationsURL string `env:"CREATIONS_URL" envDefault:"http://localhost:8082"`
	ScoresURL    string `env:"SCORES_URL" envDefault:"http://localhost:8083"`
	SearchURL    string `env:"SEARCH_URL" envDefault:"http://localhost:8084"`
	JWT          JWT    `envPrefix:"JWT_"`
	RateBurst    int    `env:"RATE_BURST" envDefault:"50"`
	RatePerSec   int    `env:"RATE_PER_SEC" envDefault:"25"`
}

func LoadAuth() (*Auth, error)           { return load[Auth]("AUTH_") }
func LoadCreations() (*Creations, error) { return load[Creations]("CREATIONS_") }
func LoadScores() (*Scores, error)       { return load[Scores]("SCORES_") }
func LoadSearch() (*Search, error)       { return load[Search]("SEARCH_") }
func LoadGateway() (*Gateway, error)     { return load[Gateway]("GATEWAY_") }

func load[T any](prefix string) (*T, error) {
	var cfg T
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: prefix}); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &cfg, nil
}
