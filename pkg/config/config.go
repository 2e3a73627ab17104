package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "JOBHUNT"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvDBDSN  = "JOBHUNT_DB_DSN"
	EnvDBHost = "JOBHUNT_DB_HOST"
	EnvDBUser = "JOBHUNT_DB_USER"
	EnvDBName = "JOBHUNT_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	Reset         ResetConfig
	AuthRateLimit AuthRateLimitConfig
	FeatureFlags  FeatureFlagsConfig
	Sendgrid      SendgridConfig
	GCP           GCPConfig
	GCS           GCSConfig
	Upload        UploadConfig
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
	Env          string `envconfig:"JOBHUNT_APP_ENV" required:"true"`
	Port         string `envconfig:"JOBHUNT_APP_PORT" required:"true"`
	PublicURL    string `envconfig:"JOBHUNT_APP_PUBLIC_URL" default:"http://localhost:5000"`
	LogLevel     string `envconfig:"JOBHUNT_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"JOBHUNT_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"JOBHUNT_DB_DSN"`
	Driver string `envconfig:"JOBHUNT_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"JOBHUNT_DB_HOST"`
	LegacyPort     int    `envconfig:"JOBHUNT_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"JOBHUNT_DB_USER"`
	LegacyPassword string `envconfig:"JOBHUNT_DB_PASSWORD"`
	LegacyName     string `envconfig:"JOBHUNT_DB_NAME"`
	LegacySSLMode  string `envconfig:"JOBHUNT_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"JOBHUNT_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"JOBHUNT_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"JOBHUNT_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"JOBHUNT_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"JOBHUNT_REDIS_URL" required:"true"`
	Address      string        `envconfig:"JOBHUNT_REDIS_ADDR"`
	Password     string        `envconfig:"JOBHUNT_REDIS_PASSWORD"`
	DB           int           `envconfig:"JOBHUNT_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"JOBHUNT_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"JOBHUNT_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"JOBHUNT_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"JOBHUNT_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"JOBHUNT_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"JOBHUNT_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"JOBHUNT_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"JOBHUNT_JWT_EXPIRATION_MINUTES" default:"1440"`
	SessionTTLMinutes int    `envconfig:"JOBHUNT_SESSION_TTL_MINUTES" default:"43200"`
}

// SessionTTL returns how long issued sessions stay valid in the registry.
func (j JWTConfig) SessionTTL() time.Duration {
	if j.SessionTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.SessionTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"JOBHUNT_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"JOBHUNT_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"JOBHUNT_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"JOBHUNT_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"JOBHUNT_ARGON_KEY_LEN" default:"32"`
}

type ResetConfig struct {
	TokenTTL time.Duration `envconfig:"JOBHUNT_RESET_TOKEN_TTL" default:"10m"`
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"JOBHUNT_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit    int           `envconfig:"JOBHUNT_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"JOBHUNT_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow     time.Duration `envconfig:"JOBHUNT_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterEmailLimit int           `envconfig:"JOBHUNT_AUTH_RATE_LIMIT_REGISTER_EMAIL_LIMIT" default:"3"`
	RegisterIPLimit    int           `envconfig:"JOBHUNT_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"JOBHUNT_AUTO_MIGRATE" default:"false"`
}

type SendgridConfig struct {
	APIKey      string `envconfig:"JOBHUNT_SENDGRID_API_KEY"`
	DefaultFrom string `envconfig:"JOBHUNT_SENDGRID_FROM_EMAIL"`
	FromName    string `envconfig:"JOBHUNT_SENDGRID_FROM_NAME" default:"JobHunt"`
}

type GCPConfig struct {
	ProjectID              string `envconfig:"JOBHUNT_GCP_PROJECT_ID"`
	CredentialsJSON        string `envconfig:"JOBHUNT_GCP_CREDENTIALS_JSON"`
	ApplicationCredentials string `envconfig:"JOBHUNT_GOOGLE_APPLICATION_CREDENTIALS"`
}

type GCSConfig struct {
	BucketName string `envconfig:"JOBHUNT_GCS_BUCKET_NAME"`
	CVFolder   string `envconfig:"JOBHUNT_GCS_CV_FOLDER" default:"jobhunt/cvs"`
	ImgFolder  string `envconfig:"JOBHUNT_GCS_IMAGE_FOLDER" default:"jobhunt/images"`
}

type UploadConfig struct {
	CVMaxBytes    int64 `envconfig:"JOBHUNT_UPLOAD_CV_MAX_BYTES" default:"10485760"`
	ImageMaxBytes int64 `envconfig:"JOBHUNT_UPLOAD_IMAGE_MAX_BYTES" default:"5242880"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
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
