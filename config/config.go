package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"metabolic-care/models"
)

type Config struct {
	Port string

	DatabaseURL string
	DBHost      string
	DBUser      string
	DBPassword  string
	DBName      string
	DBPort      string
	SQLitePath  string

	JWTSecret      string
	IdentityPepper string

	GroqAPIKey  string
	GroqBaseURL string
	GroqModel   string

	AWSRegion string
	SNSFCMArn string

	ThresholdsFile string
	CatalogFile    string

	LogLevel    string
	LogFormat   string
	CORSOrigins []string
}

// Load reads .env when present, then the process environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Warn().Err(err).Msg("could not read .env")
	}
	return &Config{
		Port:           getenv("PORT", "8080"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		DBHost:         os.Getenv("DB_HOST"),
		DBUser:         os.Getenv("DB_USER"),
		DBPassword:     os.Getenv("DB_PASSWORD"),
		DBName:         os.Getenv("DB_NAME"),
		DBPort:         getenv("DB_PORT", "5432"),
		SQLitePath:     getenv("SQLITE_PATH", "data.db"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		IdentityPepper: os.Getenv("IDENTITY_PEPPER"),
		GroqAPIKey:     os.Getenv("GROQ_API_KEY"),
		GroqBaseURL:    getenv("GROQ_BASE_URL", "https://api.groq.com/openai/v1"),
		GroqModel:      getenv("GROQ_MODEL", "llama-3.3-70b-versatile"),
		AWSRegion:      getenv("AWS_REGION", "ap-south-1"),
		SNSFCMArn:      os.Getenv("SNS_FCM_ARN"),
		ThresholdsFile: os.Getenv("THRESHOLDS_FILE"),
		CatalogFile:    os.Getenv("CATALOG_FILE"),
		LogLevel:       getenv("LOG_LEVEL", "info"),
		LogFormat:      getenv("LOG_FORMAT", "json"),
		CORSOrigins:    splitList(getenv("CORS_ORIGINS", "*")),
	}
}

// Validate checks what serve needs; the CLI triage and plan commands skip it.
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET not set")
	}
	return nil
}

// Driver reports which database InitDB will open.
func (c *Config) Driver() string {
	if c.DatabaseURL != "" || c.DBHost != "" {
		return "postgres"
	}
	return "sqlite"
}

func (c *Config) postgresDSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort)
}

// InitDB opens Postgres when configured, SQLite otherwise, and migrates every model.
func InitDB(cfg *Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver() {
	case "postgres":
		dialector = postgres.Open(cfg.postgresDSN())
	default:
		dialector = sqlite.Open(cfg.SQLitePath)
	}

	db, err := gorm.Open(dialector, &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		return nil, fmt.Errorf("connect to %s: %w", cfg.Driver(), err)
	}
	if err := db.AutoMigrate(models.All()...); err != nil {
		return nil, fmt.Errorf("auto migrate: %w", err)
	}
	log.Info().Str("driver", cfg.Driver()).Msg("database ready")
	return db, nil
}

func getenv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
