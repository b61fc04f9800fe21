package config

// EnvPrefix is passed to envconfig; individual fields carry fully
// qualified envconfig tags so the prefix stays empty.
const EnvPrefix = ""

const (
	AppEnvDev  = "dev"
	AppEnvProd = "production"
)

const (
	DBDriverPostgres = "postgres"
	DBDriverSQLite   = "sqlite"
)

const (
	EnvAppEnv   = "RECHARGEHUB_APP_ENV"
	EnvPort     = "RECHARGEHUB_APP_PORT"
	EnvDBDSN    = "RECHARGEHUB_DB_DSN"
	EnvDBHost   = "RECHARGEHUB_DB_HOST"
	EnvDBUser   = "RECHARGEHUB_DB_USER"
	EnvDBName   = "RECHARGEHUB_DB_NAME"
	EnvRedisURL = "RECHARGEHUB_REDIS_URL"

	EnvJWTSecret  = "RECHARGEHUB_JWT_SECRET"
	EnvJWTIssuer  = "RECHARGEHUB_JWT_ISSUER"
	EnvJWTExpMins = "RECHARGEHUB_JWT_EXPIRATION_MINUTES"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
