package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Environment string
	Name        string
	Version     string
	HTTP        HTTPConfig
	Postgres    PostgresConfig
	JWT         JWTConfig
	S3          S3Config
	Redis       RedisConfig
	PubSub      PubSubConfig
	Clinic      ClinicConfig
	Tracing     TracingConfig
	Log         LogConfig
}

type HTTPConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	MaxHeaderMB  int
	// AllowedOrigins is empty when every origin is allowed.
	AllowedOrigins []string
}

type PostgresConfig struct {
	Host               string
	Port               string
	Username           string
	Password           string
	DBName             string
	SSLMode            string
	MaxConnections     int
	MaxIdleConnections int
	MaxLifetime        time.Duration
}

// JWTConfig holds the key shared with the identity provider that issues
// front-desk tokens. This service only verifies them.
type JWTConfig struct {
	SigningKey string
}

type S3Config struct {
	Endpoint        string
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
	UseSSL          bool
	PresignExpiry   time.Duration
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type PubSubConfig struct {
	ProjectID       string
	Topic           string
	CredentialsJSON string
}

type ClinicConfig struct {
	// Timezone is either an offset ("UTC-06:00") or an IANA name.
	Timezone       string
	Location       *time.Location
	BookingLockTTL time.Duration
	BookingLockMax time.Duration
}

type TracingConfig struct {
	Enabled     bool
	Endpoint    string
	ServiceName string
	SampleRate  float64
}

type LogConfig struct {
	Level string
}

func NewConfig() (*Config, error) {
	_ = godotenv.Load()

	httpReadTimeout, err := time.ParseDuration(getEnv("HTTP_READ_TIMEOUT", "10s"))
	if err != nil {
		return nil, err
	}

	httpWriteTimeout, err := time.ParseDuration(getEnv("HTTP_WRITE_TIMEOUT", "30s"))
	if err != nil {
		return nil, err
	}

	postgresMaxLifetime, err := time.ParseDuration(getEnv("POSTGRES_MAX_LIFETIME", "5m"))
	if err != nil {
		return nil, err
	}

	presignExpiry, err := time.ParseDuration(getEnv("S3_PRESIGN_EXPIRY", "24h"))
	if err != nil {
		return nil, err
	}

	lockTTL, err := time.ParseDuration(getEnv("BOOKING_LOCK_TTL", "10s"))
	if err != nil {
		return nil, err
	}

	lockMax, err := time.ParseDuration(getEnv("BOOKING_LOCK_WAIT", "2s"))
	if err != nil {
		return nil, err
	}

	timezone := getEnv("CLINIC_TIMEZONE", "UTC-06:00")
	location, err := ParseLocation(timezone)
	if err != nil {
		return nil, err
	}

	sampleRate, err := strconv.ParseFloat(getEnv("TRACING_SAMPLE_RATE", "1"), 64)
	if err != nil {
		return nil, fmt.Errorf("неверное значение TRACING_SAMPLE_RATE: %w", err)
	}

	name := getEnv("APP_NAME", "clinicdesk")

	return &Config{
		Environment: getEnv("APP_ENV", "development"),
		Name:        name,
		Version:     getEnv("APP_VERSION", "1.0.0"),
		HTTP: HTTPConfig{
			Port:           getEnv("HTTP_PORT", "8080"),
			ReadTimeout:    httpReadTimeout,
			WriteTimeout:   httpWriteTimeout,
			MaxHeaderMB:    getEnvAsInt("HTTP_MAX_HEADER_MB", 1),
			AllowedOrigins: splitAndTrim(getEnv("CORS_ALLOWED_ORIGINS", "")),
		},
		Postgres: PostgresConfig{
			Host:               getEnv("POSTGRES_HOST", "localhost"),
			Port:               getEnv("POSTGRES_PORT", "5432"),
			Username:           getEnv("POSTGRES_USER", "postgres"),
			Password:           getEnv("POSTGRES_PASSWORD", "postgres"),
			DBName:             getEnv("POSTGRES_DB", "clinicdesk"),
			SSLMode:            getEnv("POSTGRES_SSL_MODE", "disable"),
			MaxConnections:     getEnvAsInt("POSTGRES_MAX_CONNECTIONS", 10),
			MaxIdleConnections: getEnvAsInt("POSTGRES_MAX_IDLE_CONNECTIONS", 5),
			MaxLifetime:        postgresMaxLifetime,
		},
		JWT: JWTConfig{
			SigningKey: getEnv("JWT_SIGNING_KEY", "your_secret_key"),
		},
		S3: S3Config{
			Endpoint:        getEnv("S3_ENDPOINT", ""),
			Region:          getEnv("S3_REGION", "us-east-1"),
			AccessKeyID:     getEnv("S3_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("S3_SECRET_ACCESS_KEY", ""),
			Bucket:          getEnv("S3_BUCKET", "clinicdesk-reports"),
			UseSSL:          getEnv("S3_USE_SSL", "true") == "true",
			PresignExpiry:   presignExpiry,
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		PubSub: PubSubConfig{
			ProjectID:       getEnv("PUBSUB_PROJECT_ID", os.Getenv("GOOGLE_CLOUD_PROJECT")),
			Topic:           getEnv("PUBSUB_TOPIC", "appointment-events"),
			CredentialsJSON: getEnv("PUBSUB_CREDENTIALS_JSON", ""),
		},
		Clinic: ClinicConfig{
			Timezone:       timezone,
			Location:       location,
			BookingLockTTL: lockTTL,
			BookingLockMax: lockMax,
		},
		Tracing: TracingConfig{
			Enabled:     getEnv("TRACING_ENABLED", "false") == "true",
			Endpoint:    getEnv("TRACING_ENDPOINT", "localhost:4318"),
			ServiceName: name,
			SampleRate:  sampleRate,
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}, nil
}

// ParseLocation accepts "UTC", "UTC-06:00", "UTC+05:30" or an IANA zone name.
// Offsets become fixed zones with no daylight saving rules.
func ParseLocation(value string) (*time.Location, error) {
	value = strings.TrimSpace(value)
	if value == "" || value == "UTC" {
		return time.UTC, nil
	}

	if strings.HasPrefix(value, "UTC") {
		offset := strings.TrimPrefix(value, "UTC")
		t, err := time.Parse("-07:00", offset)
		if err != nil {
			return nil, fmt.Errorf("неверный формат смещения часового пояса %q: %w", value, err)
		}
		_, seconds := t.Zone()
		return time.FixedZone(value, seconds), nil
	}

	location, err := time.LoadLocation(value)
	if err != nil {
		return nil, fmt.Errorf("неизвестный часовой пояс %q: %w", value, err)
	}
	return location, nil
}

func splitAndTrim(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value := 0
	_, err := fmt.Sscanf(valueStr, "%d", &value)
	if err != nil {
		return defaultValue
	}

	return value
}
