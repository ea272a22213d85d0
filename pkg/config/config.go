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

	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	App      AppConfig
	DB       DBConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Password PasswordConfig
	Store    StoreConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"PUZUR_APP_ENV" default:"dev"`
	Port         string `envconfig:"PUZUR_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"PUZUR_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"PUZUR_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"PUZUR_DB_DSN"`
	Driver string `envconfig:"PUZUR_DB_DRIVER" default:"postgres"`

	Host     string `envconfig:"PUZUR_DB_HOST"`
	Port     int    `envconfig:"PUZUR_DB_PORT" default:"5432"`
	User     string `envconfig:"PUZUR_DB_USER"`
	Password string `envconfig:"PUZUR_DB_PASSWORD"`
	Name     string `envconfig:"PUZUR_DB_NAME"`
	SSLMode  string `envconfig:"PUZUR_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"PUZUR_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"PUZUR_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"PUZUR_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"PUZUR_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

func (d *DBConfig) ensureDSN() error {
	if d.DSN != "" {
		return nil
	}
	switch d.Driver {
	case DriverSQLite:
		d.DSN = "file:puzur.db?_pragma=busy_timeout(5000)"
		return nil
	case DriverPostgres:
		if d.Host == "" || d.User == "" || d.Name == "" {
			return fmt.Errorf("database DSN or host/user/name parts are required")
		}
		d.DSN = fmt.Sprintf(
			"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode,
		)
		return nil
	default:
		return fmt.Errorf("unsupported database driver %q", d.Driver)
	}
}

type RedisConfig struct {
	URL          string        `envconfig:"PUZUR_REDIS_URL"`
	Address      string        `envconfig:"PUZUR_REDIS_ADDR"`
	Password     string        `envconfig:"PUZUR_REDIS_PASSWORD"`
	DB           int           `envconfig:"PUZUR_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"PUZUR_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"PUZUR_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"PUZUR_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"PUZUR_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"PUZUR_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"PUZUR_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"PUZUR_JWT_ISSUER" default:"puzur-cataloge"`
	ExpirationMinutes int    `envconfig:"PUZUR_JWT_EXPIRATION_MINUTES" default:"720"`
}

// SessionTTL returns how long a server-side session record stays valid.
func (j JWTConfig) SessionTTL() time.Duration {
	if j.ExpirationMinutes <= 0 {
		return 0
	}
	return time.Duration(j.ExpirationMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"PUZUR_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"PUZUR_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"PUZUR_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"PUZUR_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"PUZUR_ARGON_KEY_LEN" default:"32"`
}

type StoreConfig struct {
	Namespace   string `envconfig:"PUZUR_STORE_NAMESPACE" default:"aesthetix"`
	Seed        bool   `envconfig:"PUZUR_STORE_SEED" default:"true"`
	AutoMigrate bool   `envconfig:"PUZUR_STORE_AUTO_MIGRATE" default:"false"`
}
