package config

import (
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
	Redis     RedisConfig
	Documents DocumentsConfig
	Leasing   LeasingConfig
	Log       LogConfig
}

type AppConfig struct {
	Name            string
	Env             string
	Port            string
	Debug           bool
	ShutdownTimeout time.Duration
}

type DatabaseConfig struct {
	// Driver is "postgres" or "sqlite"
	Driver       string
	SQLitePath   string
	Host         string
	Port         string
	Name         string
	User         string
	Password     string
	SSLMode      string
	Timezone     string
	MaxIdleConns int
	MaxOpenConns int
}

type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

type RateLimitConfig struct {
	Enabled           bool
	RequestsPerSecond float64
	Burst             int
}

type RedisConfig struct {
	// URL is a redis:// URL; empty disables the dashboard cache
	URL      string
	StatsTTL time.Duration
}

type DocumentsConfig struct {
	LogoPaths     []string
	DefaultCopies int
	MaxCopies     int
	// Company block overrides; empty fields keep the built-in values
	LegalName string
	Address   string
	Phones    string
	Emails    string
	IBAN      string
}

type LeasingConfig struct {
	// CodeModels maps a product code to a model key such as "leo4"
	CodeModels map[string]string
	// Terms overrides the legal text per model key ("default" included)
	Terms map[string]string
}

type LogConfig struct {
	Level  string
	Pretty bool
}

func Load() *Config {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Warn().Err(err).Msg(".env file not found, using environment variables")
	}

	// Set defaults
	viper.SetDefault("APP_NAME", "event-manager")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("APP_DEBUG", true)
	viper.SetDefault("APP_SHUTDOWN_TIMEOUT_SECONDS", 10)
	viper.SetDefault("DB_DRIVER", "postgres")
	viper.SetDefault("DB_SQLITE_PATH", "event_manager.db")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_NAME", "event_manager")
	viper.SetDefault("DB_USER", "postgres")
	viper.SetDefault("DB_PASSWORD", "postgres")
	viper.SetDefault("DB_SSL_MODE", "disable")
	viper.SetDefault("DB_TIMEZONE", "Europe/Rome")
	viper.SetDefault("DB_MAX_IDLE_CONNS", 5)
	viper.SetDefault("DB_MAX_OPEN_CONNS", 20)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:5173")
	viper.SetDefault("CORS_ALLOWED_HEADERS", []string{})
	viper.SetDefault("RATE_LIMIT_ENABLED", true)
	viper.SetDefault("RATE_LIMIT_RPS", 20)
	viper.SetDefault("RATE_LIMIT_BURST", 40)
	viper.SetDefault("REDIS_URL", "")
	viper.SetDefault("REDIS_STATS_TTL_SECONDS", 60)
	viper.SetDefault("DOCUMENTS_LOGO_PATHS", "./assets/logo.png,./assets/logo.jpg")
	viper.SetDefault("DOCUMENTS_DEFAULT_COPIES", 1)
	viper.SetDefault("DOCUMENTS_MAX_COPIES", 10)
	viper.SetDefault("LEASING_CODE_MODELS", "")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_PRETTY", true)

	return &Config{
		App: AppConfig{
			Name:            viper.GetString("APP_NAME"),
			Env:             viper.GetString("APP_ENV"),
			Port:            viper.GetString("APP_PORT"),
			Debug:           viper.GetBool("APP_DEBUG"),
			ShutdownTimeout: time.Duration(viper.GetInt("APP_SHUTDOWN_TIMEOUT_SECONDS")) * time.Second,
		},
		Database: DatabaseConfig{
			Driver:       strings.ToLower(viper.GetString("DB_DRIVER")),
			SQLitePath:   viper.GetString("DB_SQLITE_PATH"),
			Host:         viper.GetString("DB_HOST"),
			Port:         viper.GetString("DB_PORT"),
			Name:         viper.GetString("DB_NAME"),
			User:         viper.GetString("DB_USER"),
			Password:     viper.GetString("DB_PASSWORD"),
			SSLMode:      viper.GetString("DB_SSL_MODE"),
			Timezone:     viper.GetString("DB_TIMEZONE"),
			MaxIdleConns: viper.GetInt("DB_MAX_IDLE_CONNS"),
			MaxOpenConns: viper.GetInt("DB_MAX_OPEN_CONNS"),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(viper.GetString("CORS_ALLOWED_ORIGINS")),
			AllowedMethods: viper.GetStringSlice("CORS_ALLOWED_METHODS"),
			AllowedHeaders: viper.GetStringSlice("CORS_ALLOWED_HEADERS"),
		},
		RateLimit: RateLimitConfig{
			Enabled:           viper.GetBool("RATE_LIMIT_ENABLED"),
			RequestsPerSecond: viper.GetFloat64("RATE_LIMIT_RPS"),
			Burst:             viper.GetInt("RATE_LIMIT_BURST"),
		},
		Redis: RedisConfig{
			URL:      viper.GetString("REDIS_URL"),
			StatsTTL: time.Duration(viper.GetInt("REDIS_STATS_TTL_SECONDS")) * time.Second,
		},
		Documents: DocumentsConfig{
			LogoPaths:     splitList(viper.GetString("DOCUMENTS_LOGO_PATHS")),
			DefaultCopies: viper.GetInt("DOCUMENTS_DEFAULT_COPIES"),
			MaxCopies:     viper.GetInt("DOCUMENTS_MAX_COPIES"),
			LegalName:     viper.GetString("COMPANY_LEGAL_NAME"),
			Address:       viper.GetString("COMPANY_ADDRESS"),
			Phones:        viper.GetString("COMPANY_PHONES"),
			Emails:        viper.GetString("COMPANY_EMAILS"),
			IBAN:          viper.GetString("COMPANY_IBAN"),
		},
		Leasing: LeasingConfig{
			CodeModels: ParsePairs(viper.GetString("LEASING_CODE_MODELS")),
			Terms: map[string]string{
				"default": viper.GetString("LEASING_TERMS_DEFAULT"),
				"leo2":    viper.GetString("LEASING_TERMS_LEO2"),
				"leo3":    viper.GetString("LEASING_TERMS_LEO3"),
				"leo4":    viper.GetString("LEASING_TERMS_LEO4"),
				"leo5":    viper.GetString("LEASING_TERMS_LEO5"),
				"titano":  viper.GetString("LEASING_TERMS_TITANO"),
			},
		},
		Log: LogConfig{
			Level:  viper.GetString("LOG_LEVEL"),
			Pretty: viper.GetBool("LOG_PRETTY"),
		},
	}
}

func (c *DatabaseConfig) DSN() string {
	return "host=" + c.Host +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.Name +
		" port=" + c.Port +
		" sslmode=" + c.SSLMode +
		" TimeZone=" + c.Timezone
}

// IsProduction reports whether the app runs with APP_ENV=production
func (c *AppConfig) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
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

// ParsePairs reads "ESP-004=leo4,ESP-010=titano" into a map. Malformed
// entries are skipped.
func ParsePairs(s string) map[string]string {
	out := make(map[string]string)
	for _, p := range splitList(s) {
		k, v, ok := strings.Cut(p, "=")
		k, v = strings.TrimSpace(k), strings.TrimSpace(v)
		if !ok || k == "" || v == "" {
			continue
		}
		out[k] = v
	}
	return out
}
