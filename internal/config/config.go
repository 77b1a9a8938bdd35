package config

import (
	"os"
	"strconv"
	"strings"
)

// Store drivers accepted by STORE_DRIVER.
const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
	DriverMongo    = "mongo"
)

// StoreConfig selects the contact store backend.
type StoreConfig struct {
	Driver string
	// Seed loads the default phonebook entries on startup (upsert by name).
	Seed bool
}

// DatabaseConfig holds PostgreSQL database connection settings.
type DatabaseConfig struct {
	Host               string
	Port               string
	User               string
	Password           string
	Name               string
	SSLMode            string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeSec int
}

// MySQLConfig holds MySQL database connection settings.
type MySQLConfig struct {
	Host               string
	Port               string
	User               string
	Password           string
	Name               string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeSec int
}

// MongoConfig holds MongoDB connection settings.
type MongoConfig struct {
	URI        string
	Database   string
	Collection string
	TimeoutSec int
}

// MinIOConfig holds object storage settings for MinIO.
// Snapshots are disabled when Endpoint is empty.
type MinIOConfig struct {
	Endpoint         string
	AccessKey        string
	SecretKey        string
	Bucket           string
	UseSSL           bool
	PresignExpirySec int
}

// Enabled reports whether object storage was configured.
func (c MinIOConfig) Enabled() bool { return c.Endpoint != "" }

// LogConfig controls the zap logger.
type LogConfig struct {
	Level  string
	Format string
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	AppHost            string
	Port               string
	CORSAllowOrigins   string
	ShutdownTimeoutSec int
	Store              StoreConfig
	Database           DatabaseConfig
	MySQL              MySQLConfig
	Mongo              MongoConfig
	MinIO              MinIOConfig
	Log                LogConfig
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	return &AppConfig{
		AppHost:            getEnv("APP_HOST", "localhost:3001"),
		Port:               getEnv("PORT", "3001"),
		CORSAllowOrigins:   getEnv("CORS_ALLOW_ORIGINS", "*"),
		ShutdownTimeoutSec: getEnvInt("SHUTDOWN_TIMEOUT_SEC", 10),
		Store: StoreConfig{
			Driver: strings.ToLower(getEnv("STORE_DRIVER", DriverMemory)),
			Seed:   getEnvBool("STORE_SEED", false),
		},
		Database: DatabaseConfig{
			Host:               getEnv("DB_HOST", ""),
			Port:               getEnv("DB_PORT", "5432"),
			User:               getEnv("DB_USER", ""),
			Password:           getEnv("DB_PASSWORD", ""),
			Name:               getEnv("DB_NAME", ""),
			SSLMode:            getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetimeSec: getEnvInt("DB_CONN_MAX_LIFETIME_SEC", 300),
		},
		MySQL: MySQLConfig{
			Host:               getEnv("MYSQL_HOST", ""),
			Port:               getEnv("MYSQL_PORT", "3306"),
			User:               getEnv("MYSQL_USER", ""),
			Password:           getEnv("MYSQL_PASSWORD", ""),
			Name:               getEnv("MYSQL_NAME", ""),
			MaxOpenConns:       getEnvInt("MYSQL_MAX_OPEN_CONNS", 10),
			MaxIdleConns:       getEnvInt("MYSQL_MAX_IDLE_CONNS", 5),
			ConnMaxLifetimeSec: getEnvInt("MYSQL_CONN_MAX_LIFETIME_SEC", 300),
		},
		Mongo: MongoConfig{
			URI:        getEnv("MONGO_URI", ""),
			Database:   getEnv("MONGO_DATABASE", "phonebook"),
			Collection: getEnv("MONGO_COLLECTION", "contacts"),
			TimeoutSec: getEnvInt("MONGO_TIMEOUT_SEC", 10),
		},
		MinIO: MinIOConfig{
			Endpoint:         getEnv("MINIO_ENDPOINT", ""),
			AccessKey:        getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey:        getEnv("MINIO_SECRET_KEY", ""),
			Bucket:           getEnv("MINIO_BUCKET", ""),
			UseSSL:           getEnvBool("MINIO_USE_SSL", false),
			PresignExpirySec: getEnvInt("SNAPSHOT_URL_EXPIRY_SEC", 900),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}
