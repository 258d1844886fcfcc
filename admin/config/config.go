package config

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/Astemirdum/library-admin/admin/internal/policy"
	"github.com/Astemirdum/library-admin/pkg/kafka"
	"github.com/Astemirdum/library-admin/pkg/logger"
	"github.com/Astemirdum/library-admin/pkg/postgres"
	"github.com/kelseyhightower/envconfig"
)

type HTTPServer struct {
	Host         string        `yaml:"host" envconfig:"ADMIN_HTTP_HOST" default:"0.0.0.0"`
	Port         string        `yaml:"port" envconfig:"ADMIN_HTTP_PORT" default:"8080"`
	ReadTimeout  time.Duration `yaml:"readTimeout" envconfig:"HTTP_READ" default:"15s"`
	WriteTimeout time.Duration
}

// Upstream is the remote perpus REST API.
type Upstream struct {
	BaseURL string        `envconfig:"PERPUS_API_URL" default:"http://localhost:8000/api/"`
	Timeout time.Duration `envconfig:"PERPUS_API_TIMEOUT" default:"30s"`
	// Service account used by background jobs.
	Email    string `envconfig:"PERPUS_SERVICE_EMAIL"`
	Password string `envconfig:"PERPUS_SERVICE_PASSWORD" json:"-"`
}

// Configured reports whether background jobs can sign in to the upstream.
func (u Upstream) Configured() bool { return u.Email != "" }

type SessionBackend string

const (
	SessionMemory   SessionBackend = "memory"
	SessionPostgres SessionBackend = "postgres"
	SessionRedis    SessionBackend = "redis"
)

type Session struct {
	Backend SessionBackend `envconfig:"SESSION_BACKEND" default:"memory"`
	TTL     time.Duration  `envconfig:"SESSION_TTL" default:"12h"`
}

type Redis struct {
	Addr     string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	Password string `envconfig:"REDIS_PASSWORD" json:"-"`
	DB       int    `envconfig:"REDIS_DB"`
}

type Worker struct {
	ReminderInterval time.Duration `envconfig:"REMINDER_INTERVAL" default:"24h"`
	CleanupInterval  time.Duration `envconfig:"SESSION_CLEANUP_INTERVAL" default:"1h"`
}

type Config struct {
	Server      HTTPServer `yaml:"server"`
	Upstream    Upstream
	Policy      policy.Config
	Session     Session
	Database    postgres.DB `yaml:"db"`
	Redis       Redis
	Kafka       kafka.Config
	Worker      Worker
	SnapshotTTL time.Duration `envconfig:"SNAPSHOT_TTL" default:"1m"`
	Log         logger.Log    `yaml:"log"`
}

// FineRetryEnabled reports whether failed fines go to the kafka retry queue.
// The consumer resubmits them with the service account, so both are required.
func (c Config) FineRetryEnabled() bool {
	return c.Kafka.Enabled() && c.Upstream.Configured()
}

var (
	once sync.Once
	cfg  Config
)

// NewConfig reads config from environment.
func NewConfig(ops ...Option) Config {
	once.Do(func() {
		var config Config
		for _, op := range ops {
			op(&config)
		}
		err := envconfig.Process("", &config)
		if err != nil {
			log.Fatal("NewConfig ", err)
		}
		cfg = config
		printConfig(cfg)
	})

	return cfg
}

func printConfig(cfg Config) {
	jscfg, _ := json.MarshalIndent(cfg, "", "	") //nolint:errcheck
	fmt.Println(string(jscfg))
}
