package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App AppConfig
	DB  DBConfig
	Tax TaxConfig
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
	Env          string `envconfig:"POSPLUS_APP_ENV" default:"dev"`
	Port         string `envconfig:"POSPLUS_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"POSPLUS_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"POSPLUS_LOG_WARN_STACK" default:"false"`
	SeedDemoData bool   `envconfig:"POSPLUS_SEED_DEMO_DATA" default:"true"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	Driver string `envconfig:"POSPLUS_DB_DRIVER" default:"sqlite"`
	DSN    string `envconfig:"POSPLUS_DB_DSN"`

	LegacyHost     string `envconfig:"POSPLUS_DB_HOST"`
	LegacyPort     int    `envconfig:"POSPLUS_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"POSPLUS_DB_USER"`
	LegacyPassword string `envconfig:"POSPLUS_DB_PASSWORD"`
	LegacyName     string `envconfig:"POSPLUS_DB_NAME"`
	LegacySSLMode  string `envconfig:"POSPLUS_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"POSPLUS_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"POSPLUS_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"POSPLUS_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"POSPLUS_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// IsSQLite reports whether the embedded sqlite driver is selected.
func (db DBConfig) IsSQLite() bool {
	return strings.EqualFold(db.Driver, DriverSQLite)
}

type TaxConfig struct {
	// RatePercent is the sales tax applied at confirmation, in percent.
	RatePercent string `envconfig:"POSPLUS_TAX_RATE_PERCENT" default:"8.25"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	if db.IsSQLite() {
		db.DSN = DefaultSQLiteDSN
		return nil
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
