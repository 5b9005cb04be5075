package config

const (
	EnvPrefix = "POSPLUS"

	AppEnvDev  = "dev"
	AppEnvProd = "production"

	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	// DefaultSQLiteDSN keeps the whole store in process memory; the shared
	// cache makes every pooled connection see the same database.
	DefaultSQLiteDSN = "file:posplus?mode=memory&cache=shared"

	EnvAppEnv = "POSPLUS_APP_ENV"
	EnvPort   = "POSPLUS_APP_PORT"

	EnvDBDriver = "POSPLUS_DB_DRIVER"
	EnvDBDSN    = "POSPLUS_DB_DSN"
	EnvDBHost   = "POSPLUS_DB_HOST"
	EnvDBUser   = "POSPLUS_DB_USER"
	EnvDBName   = "POSPLUS_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
