package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"golang.org/x/crypto/bcrypt"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, secrets, etc.)
// - default: Values common across all environments (timezone, timeout, etc.)
// -----------------------------------------------------------------------------

const (
	StoreBackendPostgres = "postgres"
	StoreBackendMemory   = "memory"
)

type Config struct {
	Server  ServerConfig
	DB      DBConfig
	Store   StoreConfig
	CORS    CORSConfig
	Log     LogConfig
	JWT     JWTConfig
	Cookie  CookieConfig
	Admin   AdminConfig
	Mirror  MirrorConfig
	AMQP    AMQPConfig
	Tracing TracingConfig
	Bus     BusConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

type DBConfig struct {
	Host           string        `envconfig:"DB_HOST" default:"localhost"`
	Port           string        `envconfig:"DB_PORT" default:"5432"`
	User           string        `envconfig:"DB_USER" default:"academy"`
	Password       string        `envconfig:"DB_PASSWORD" default:""`
	DBName         string        `envconfig:"DB_NAME" default:"academy"`
	SSLMode        string        `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone       string        `envconfig:"DB_TIMEZONE" default:"UTC"`
	MaxConns       int32         `envconfig:"DB_MAX_CONNS" default:"20"`
	ConnectRetries uint          `envconfig:"DB_CONNECT_RETRIES" default:"5"`
	ConnectDelay   time.Duration `envconfig:"DB_CONNECT_DELAY" default:"500ms"`
}

type StoreConfig struct {
	Backend string `envconfig:"STORE_BACKEND" default:"postgres"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"UTC"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"0"`
}

type JWTConfig struct {
	Secret   string        `envconfig:"JWT_SECRET" required:"true"`
	Duration time.Duration `envconfig:"JWT_DURATION" default:"720h"`
}

type CookieConfig struct {
	Domain   string `envconfig:"COOKIE_DOMAIN" default:""`
	Secure   bool   `envconfig:"COOKIE_SECURE" default:"false"`
	SameSite string `envconfig:"COOKIE_SAME_SITE" default:"Lax"`
}

type AdminConfig struct {
	PinHash string `envconfig:"ADMIN_PIN_HASH" required:"true"`
	Name    string `envconfig:"ADMIN_NAME" default:"Coach"`
}

// Redis is optional; an empty address disables the mirror.
type MirrorConfig struct {
	RedisAddr     string        `envconfig:"REDIS_ADDR" default:""`
	RedisPassword string        `envconfig:"REDIS_PASSWORD" default:""`
	RedisDB       int           `envconfig:"REDIS_DB" default:"0"`
	TTL           time.Duration `envconfig:"MIRROR_TTL" default:"24h"`
}

type AMQPConfig struct {
	URL      string `envconfig:"AMQP_URL" default:""`
	Exchange string `envconfig:"AMQP_EXCHANGE" default:"academy.events"`
}

type TracingConfig struct {
	Endpoint    string `envconfig:"OTEL_EXPORTER_OTLP_ENDPOINT" default:""`
	ServiceName string `envconfig:"OTEL_SERVICE_NAME" default:"academy-booking"`
	Environment string `envconfig:"ENV" default:"dev"`
}

type BusConfig struct {
	Buffer int `envconfig:"BUS_BUFFER" default:"64"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

func (c StoreConfig) UsesPostgres() bool {
	return c.Backend != StoreBackendMemory
}

func LoadConfig() (Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded", "error", err.Error())
	}

	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	switch cfg.Store.Backend {
	case StoreBackendPostgres, StoreBackendMemory:
	default:
		return Config{}, fmt.Errorf("unknown STORE_BACKEND %q", cfg.Store.Backend)
	}
	return cfg, nil
}

// LoadStoreConfig reads only the persistence settings, for tools that do not
// serve HTTP.
func LoadStoreConfig() (DBConfig, StoreConfig, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded", "error", err.Error())
	}

	var db DBConfig
	if err := envconfig.Process("", &db); err != nil {
		return DBConfig{}, StoreConfig{}, fmt.Errorf("failed to process db config: %w", err)
	}
	var store StoreConfig
	if err := envconfig.Process("", &store); err != nil {
		return DBConfig{}, StoreConfig{}, fmt.Errorf("failed to process store config: %w", err)
	}
	return db, store, nil
}

// TestAdminPIN is the administrator PIN accepted by NewTestConfig.
const TestAdminPIN = "7861"

func testPinHash() string {
	hash, err := bcrypt.GenerateFromPassword([]byte(TestAdminPIN), bcrypt.MinCost)
	if err != nil {
		panic("failed to hash test admin pin: " + err.Error())
	}
	return string(hash)
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889", // Test port
		},
		DB: DBConfig{
			Host:           "localhost",
			Port:           "15433", // Test DB port
			User:           "test",
			Password:       "test",
			DBName:         "test_db",
			SSLMode:        "disable",
			TimeZone:       "UTC",
			MaxConns:       10,
			ConnectRetries: 3,
			ConnectDelay:   200 * time.Millisecond,
		},
		Store: StoreConfig{Backend: StoreBackendMemory},
		Log: LogConfig{
			Level:      "error", // Error level only for tests
			TimeZone:   "UTC",
			TimeFormat: "2006-01-02 15:04:05.000",
		},
		JWT: JWTConfig{
			Secret:   "test-secret",
			Duration: time.Hour,
		},
		Admin: AdminConfig{
			PinHash: testPinHash(),
			Name:    "Coach",
		},
		Mirror: MirrorConfig{TTL: time.Hour},
		AMQP:   AMQPConfig{Exchange: "academy.events"},
		Tracing: TracingConfig{
			ServiceName: "academy-booking-test",
			Environment: "test",
		},
		Bus: BusConfig{Buffer: 16},
	}
}
