package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	FeatureFlags  FeatureFlagsConfig
	Recharge      RechargeConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if !cfg.FeatureFlags.UseMemoryStore {
		if err := cfg.DB.ensureDSN(); err != nil {
			return nil, err
		}
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"RECHARGEHUB_APP_ENV" required:"true"`
	Port         string `envconfig:"RECHARGEHUB_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"RECHARGEHUB_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"RECHARGEHUB_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"RECHARGEHUB_DB_DSN"`
	Driver string `envconfig:"RECHARGEHUB_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"RECHARGEHUB_DB_HOST"`
	LegacyPort     int    `envconfig:"RECHARGEHUB_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"RECHARGEHUB_DB_USER"`
	LegacyPassword string `envconfig:"RECHARGEHUB_DB_PASSWORD"`
	LegacyName     string `envconfig:"RECHARGEHUB_DB_NAME"`
	LegacySSLMode  string `envconfig:"RECHARGEHUB_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"RECHARGEHUB_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"RECHARGEHUB_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"RECHARGEHUB_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"RECHARGEHUB_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"RECHARGEHUB_REDIS_URL" required:"true"`
	Address      string        `envconfig:"RECHARGEHUB_REDIS_ADDR"`
	Password     string        `envconfig:"RECHARGEHUB_REDIS_PASSWORD"`
	DB           int           `envconfig:"RECHARGEHUB_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"RECHARGEHUB_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"RECHARGEHUB_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"RECHARGEHUB_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"RECHARGEHUB_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"RECHARGEHUB_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"RECHARGEHUB_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"RECHARGEHUB_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"RECHARGEHUB_JWT_EXPIRATION_MINUTES" default:"60"`
	SessionTTLMinutes int    `envconfig:"RECHARGEHUB_SESSION_TTL_MINUTES" default:"1440"`
}

// SessionTTL returns the server-side session lifetime.
func (j JWTConfig) SessionTTL() time.Duration {
	if j.SessionTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.SessionTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"RECHARGEHUB_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"RECHARGEHUB_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"RECHARGEHUB_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"RECHARGEHUB_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"RECHARGEHUB_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"RECHARGEHUB_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit    int           `envconfig:"RECHARGEHUB_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"RECHARGEHUB_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow     time.Duration `envconfig:"RECHARGEHUB_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterEmailLimit int           `envconfig:"RECHARGEHUB_AUTH_RATE_LIMIT_REGISTER_EMAIL_LIMIT" default:"3"`
	RegisterIPLimit    int           `envconfig:"RECHARGEHUB_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
}

type FeatureFlagsConfig struct {
	// UseMemoryStore swaps the GORM repositories for the in-memory ones at
	// startup. The two backings are never mixed per request.
	UseMemoryStore bool `envconfig:"RECHARGEHUB_USE_MEMORY_STORE" default:"false"`
	AutoMigrate    bool `envconfig:"RECHARGEHUB_AUTO_MIGRATE" default:"false"`
	SeedOnBoot     bool `envconfig:"RECHARGEHUB_SEED_ON_BOOT" default:"false"`
}

type RechargeConfig struct {
	DefaultOperator string `envconfig:"RECHARGEHUB_DEFAULT_OPERATOR" default:"Jio"`
	RecommendTopN   int    `envconfig:"RECHARGEHUB_RECOMMEND_TOP_N" default:"6"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}
	if strings.EqualFold(db.Driver, DBDriverSQLite) {
		return fmt.Errorf("%s is required when the sqlite driver is selected", EnvDBDSN)
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
