package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database     DatabaseConfig
	JWT          JWTConfig
	App          AppConfig
	WorkHours    WorkHoursConfig
	Office       OfficeConfig
	Storage      StorageConfig
	OAuth2Google OAuth2GoogleConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret            string
	RefreshExpiration string
	AccessExpiration  string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port        int
	Env         string
	LogLevel    string
	FrontendURL string
	Timezone    string
}

// WorkHoursConfig holds the regular-hours boundaries and the approval
// thresholds the attendance rules engine runs with.
type WorkHoursConfig struct {
	WeekdayStart           string // "08:00"
	WeekdayEnd             string // "17:00"
	SaturdayStart          string // "08:00"
	SaturdayEnd            string // "12:00"
	GracePeriodMinutes     int
	LongOvertimeMinutes    int // overtime above this needs the long-overtime capability
	MinOvertimeReasonChars int
}

// OfficeConfig is the geofence attendance captures are checked against.
// A zero radius disables the check.
type OfficeConfig struct {
	Latitude     float64
	Longitude    float64
	RadiusMeters float64
}

type StorageConfig struct {
	Type     string
	BasePath string
	BaseURL  string
}

type OAuth2GoogleConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	Scopes       []string
}

func Load() (*Config, error) {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, relying on environment")
	}

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "hrops"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:        appPort,
		Env:         getEnv("APP_ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:3000"),
		Timezone:    getEnv("APP_TIMEZONE", "Asia/Jakarta"),
	}

	// Work hours configuration
	gracePeriod, err := strconv.Atoi(getEnv("WORK_GRACE_PERIOD_MINUTES", "10"))
	if err != nil {
		return nil, fmt.Errorf("invalid WORK_GRACE_PERIOD_MINUTES: %w", err)
	}
	longOvertime, err := strconv.Atoi(getEnv("LONG_OVERTIME_MINUTES", "120"))
	if err != nil {
		return nil, fmt.Errorf("invalid LONG_OVERTIME_MINUTES: %w", err)
	}
	minReason, err := strconv.Atoi(getEnv("MIN_OVERTIME_REASON_CHARS", "20"))
	if err != nil {
		return nil, fmt.Errorf("invalid MIN_OVERTIME_REASON_CHARS: %w", err)
	}

	config.WorkHours = WorkHoursConfig{
		WeekdayStart:           getEnv("WEEKDAY_START", "08:00"),
		WeekdayEnd:             getEnv("WEEKDAY_END", "17:00"),
		SaturdayStart:          getEnv("SATURDAY_START", "08:00"),
		SaturdayEnd:            getEnv("SATURDAY_END", "12:00"),
		GracePeriodMinutes:     gracePeriod,
		LongOvertimeMinutes:    longOvertime,
		MinOvertimeReasonChars: minReason,
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:            getEnv("JWT_SECRET_KEY", ""),
		RefreshExpiration: getEnv("JWT_REFRESH_EXPIRATION_TIME", "168h"),
		AccessExpiration:  getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
	}

	// Office geofence configuration
	officeLat, err := strconv.ParseFloat(getEnv("OFFICE_LATITUDE", "0"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid OFFICE_LATITUDE: %w", err)
	}
	officeLon, err := strconv.ParseFloat(getEnv("OFFICE_LONGITUDE", "0"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid OFFICE_LONGITUDE: %w", err)
	}
	officeRadius, err := strconv.ParseFloat(getEnv("OFFICE_RADIUS_METERS", "0"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid OFFICE_RADIUS_METERS: %w", err)
	}
	config.Office = OfficeConfig{
		Latitude:     officeLat,
		Longitude:    officeLon,
		RadiusMeters: officeRadius,
	}

	// Storage configuration (attendance proof photos)
	config.Storage = StorageConfig{
		Type:     getEnv("STORAGE_TYPE", "local"),
		BasePath: getEnv("STORAGE_BASE_PATH", "./uploads"),
		BaseURL:  getEnv("STORAGE_BASE_URL", "http://localhost:8080/uploads"),
	}

	// OAuth2 Google configuration
	config.OAuth2Google = OAuth2GoogleConfig{
		ClientID:     getEnv("CLIENT_ID", ""),
		ClientSecret: getEnv("CLIENT_SECRET", ""),
		RedirectURL:  getEnv("REDIRECT_URL", ""),
		Scopes:       getEnvSlice("SCOPES"),
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if _, err := time.LoadLocation(c.App.Timezone); err != nil {
		return fmt.Errorf("invalid APP_TIMEZONE %q: %w", c.App.Timezone, err)
	}
	for _, boundary := range []string{
		c.WorkHours.WeekdayStart, c.WorkHours.WeekdayEnd,
		c.WorkHours.SaturdayStart, c.WorkHours.SaturdayEnd,
	} {
		if _, err := time.Parse("15:04", boundary); err != nil {
			return fmt.Errorf("invalid work hours boundary %q: %w", boundary, err)
		}
	}
	if c.WorkHours.LongOvertimeMinutes <= 0 {
		return fmt.Errorf("LONG_OVERTIME_MINUTES must be positive")
	}
	return nil
}

// Location returns the deployment time zone. Validate has already checked it.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.App.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvSlice(env string) []string {
	value := getEnv(env, "")
	if value == "" {
		return []string{}
	}
	return strings.Split(value, ",")
}
