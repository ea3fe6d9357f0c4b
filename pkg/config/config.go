package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "STOREADMIN"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	EnvDBDSN  = "STOREADMIN_DB_DSN"
	EnvDBHost = "STOREADMIN_DB_HOST"
	EnvDBUser = "STOREADMIN_DB_USER"
	EnvDBName = "STOREADMIN_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Admin        AdminConfig
	Dashboard    DashboardConfig
	FeatureFlags FeatureFlagsConfig
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
	Env          string   `envconfig:"STOREADMIN_APP_ENV" required:"true"`
	Port         string   `envconfig:"STOREADMIN_APP_PORT" required:"true"`
	LogLevel     string   `envconfig:"STOREADMIN_LOG_LEVEL" default:"info"`
	LogWarnStack bool     `envconfig:"STOREADMIN_LOG_WARN_STACK" default:"false"`
	CORSOrigins  []string `envconfig:"STOREADMIN_CORS_ORIGINS" default:"http://localhost:3000"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"STOREADMIN_DB_DSN"`
	Driver string `envconfig:"STOREADMIN_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"STOREADMIN_DB_HOST"`
	LegacyPort     int    `envconfig:"STOREADMIN_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"STOREADMIN_DB_USER"`
	LegacyPassword string `envconfig:"STOREADMIN_DB_PASSWORD"`
	LegacyName     string `envconfig:"STOREADMIN_DB_NAME"`
	LegacySSLMode  string `envconfig:"STOREADMIN_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"STOREADMIN_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"STOREADMIN_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"STOREADMIN_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"STOREADMIN_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

func (db DBConfig) IsSQLite() bool {
	return strings.EqualFold(db.Driver, DriverSQLite)
}

type RedisConfig struct {
	URL          string        `envconfig:"STOREADMIN_REDIS_URL" required:"true"`
	Address      string        `envconfig:"STOREADMIN_REDIS_ADDR"`
	Password     string        `envconfig:"STOREADMIN_REDIS_PASSWORD"`
	DB           int           `envconfig:"STOREADMIN_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"STOREADMIN_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"STOREADMIN_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"STOREADMIN_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"STOREADMIN_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"STOREADMIN_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"STOREADMIN_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"STOREADMIN_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"STOREADMIN_JWT_EXPIRATION_MINUTES" default:"60"`
	SessionTTLMinutes int    `envconfig:"STOREADMIN_SESSION_TTL_MINUTES" default:"43200"`
}

// SessionTTL returns the server-side session TTL configured in minutes.
func (j JWTConfig) SessionTTL() time.Duration {
	if j.SessionTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.SessionTTLMinutes) * time.Minute
}

// AdminConfig holds the single back-office login. The dashboard has exactly
// one operator identity; user management lives outside this service.
type AdminConfig struct {
	Email        string `envconfig:"STOREADMIN_ADMIN_EMAIL" required:"true"`
	PasswordHash string `envconfig:"STOREADMIN_ADMIN_PASSWORD_HASH" required:"true"`
}

type DashboardConfig struct {
	CacheTTL        time.Duration `envconfig:"STOREADMIN_DASHBOARD_CACHE_TTL" default:"30s"`
	RefreshInterval time.Duration `envconfig:"STOREADMIN_DASHBOARD_REFRESH_INTERVAL" default:"1m"`
	SignalChannel   string        `envconfig:"STOREADMIN_DASHBOARD_SIGNAL_CHANNEL" default:"orders.changed"`
	Timezone        string        `envconfig:"STOREADMIN_DASHBOARD_TIMEZONE" default:"Local"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"STOREADMIN_AUTO_MIGRATE" default:"false"`
	LiveRefresh bool `envconfig:"STOREADMIN_LIVE_REFRESH" default:"true"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}
	if db.IsSQLite() {
		return fmt.Errorf("%s is required for the sqlite driver", EnvDBDSN)
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
