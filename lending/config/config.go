package config

import (
	"log"
	"sync"
	"time"

	"github.com/Eduard-Gallardo/lendix/pkg/kafka"
	"github.com/Eduard-Gallardo/lendix/pkg/lock"
	"github.com/Eduard-Gallardo/lendix/pkg/logger"
	"github.com/Eduard-Gallardo/lendix/pkg/postgres"
	"github.com/kelseyhightower/envconfig"
)

const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

type HTTPServer struct {
	Host         string        `yaml:"host" envconfig:"LENDING_HTTP_HOST"`
	Port         string        `yaml:"port" envconfig:"LENDING_HTTP_PORT" default:"8080"`
	ReadTimeout  time.Duration `yaml:"readTimeout" envconfig:"HTTP_READ" default:"10s"`
	WriteTimeout time.Duration `yaml:"writeTimeout" envconfig:"HTTP_WRITE"`
}

type Sweep struct {
	Interval time.Duration `envconfig:"SWEEP_INTERVAL" default:"1m"`
	LockTTL  time.Duration `envconfig:"SWEEP_LOCK_TTL" default:"30s"`
}

// Admin is the account ensured on startup. Empty email skips it.
type Admin struct {
	Name  string `envconfig:"ADMIN_NAME" default:"Administrator"`
	Email string `envconfig:"ADMIN_EMAIL"`
}

type Config struct {
	Server   HTTPServer       `yaml:"server"`
	Database postgres.DB      `yaml:"db"`
	Log      logger.Log       `yaml:"log"`
	Kafka    kafka.Config     `yaml:"kafka"`
	Redis    lock.RedisConfig `yaml:"redis"`
	Sweep    Sweep            `yaml:"sweep"`
	Admin    Admin            `yaml:"admin"`
	Storage  string           `yaml:"storage" envconfig:"LENDING_STORAGE"`
}

var (
	once sync.Once
	cfg  *Config
)

// NewConfig reads config from environment. Options set defaults that the
// environment may still override.
func NewConfig(ops ...Option) *Config {
	once.Do(func() {
		config := Config{Storage: StoragePostgres}
		for _, op := range ops {
			op(&config)
		}
		err := envconfig.Process("", &config)
		if err != nil {
			log.Fatal("NewConfig ", err)
		}
		if config.Storage != StoragePostgres && config.Storage != StorageMemory {
			log.Fatalf("NewConfig: unknown LENDING_STORAGE %q", config.Storage)
		}
		cfg = &config
	})

	return cfg
}
