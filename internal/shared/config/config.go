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
	Server     ServerConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	Auth       AuthConfig
	Discord    DiscordConfig
	Frontend   FrontendConfig
	Logging    LoggingConfig
	RateLimit  RateLimitConfig
	Randomizer RandomizerConfig
}

type ServerConfig struct {
	Port         string
	URL          string
	Environment  string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type DatabaseConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	MigrationsPath  string
}

type RedisConfig struct {
	Enabled  bool
	URL      string
	Host     string
	Port     string
	Password string
	DB       int
}

type AuthConfig struct {
	JWTSecret       string
	TokenExpiration time.Duration
	CookieSecure    bool
	CookieSameSite  string
}

type DiscordConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	Scopes       []string
	AdminUserIDs []string
}

type FrontendConfig struct {
	URL       string
	CORSDebug bool
}

type LoggingConfig struct {
	Level      string
	JSONFormat bool
}

type RateLimitConfig struct {
	Enabled           bool
	RequestsPerSecond float64
	BurstSize         int
	TrustProxy        bool
}

// RandomizerConfig holds everything needed to reach the external
// randomizer engine and its bundled data files.
type RandomizerConfig struct {
	EnginePath      string
	WorkDir         string
	BaseROMPath     string
	NamesPath       string
	EngineTimeout   time.Duration
	SpoilerCacheTTL time.Duration
}

var GlobalConfig *Config

func Init() error {
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found, using system environment variables")
	}

	config := load()

	if err := config.validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	GlobalConfig = config
	return nil
}

func load() *Config {
	return &Config{
		Server:     loadServerConfig(),
		Database:   loadDatabaseConfig(),
		Redis:      loadRedisConfig(),
		Auth:       loadAuthConfig(),
		Discord:    loadDiscordConfig(),
		Frontend:   loadFrontendConfig(),
		Logging:    loadLoggingConfig(),
		RateLimit:  loadRateLimitConfig(),
		Randomizer: loadRandomizerConfig(),
	}
}

func loadServerConfig() ServerConfig {
	readTimeout, _ := strconv.Atoi(getEnv("SERVER_READ_TIMEOUT_SECONDS", "15"))
	writeTimeout, _ := strconv.Atoi(getEnv("SERVER_WRITE_TIMEOUT_SECONDS", "60"))
	idleTimeout, _ := strconv.Atoi(getEnv("SERVER_IDLE_TIMEOUT_SECONDS", "60"))

	return ServerConfig{
		Port:         getEnv("SERVER_PORT", "8080"),
		URL:          getEnv("SERVER_URL", "http://localhost:8080"),
		Environment:  getEnv("ENVIRONMENT", "development"),
		ReadTimeout:  time.Duration(readTimeout) * time.Second,
		WriteTimeout: time.Duration(writeTimeout) * time.Second,
		IdleTimeout:  time.Duration(idleTimeout) * time.Second,
	}
}

func loadDatabaseConfig() DatabaseConfig {
	maxOpenConns, _ := strconv.Atoi(getEnv("DB_MAX_OPEN_CONNS", "25"))
	maxIdleConns, _ := strconv.Atoi(getEnv("DB_MAX_IDLE_CONNS", "5"))
	connMaxLifetime, _ := strconv.Atoi(getEnv("DB_CONN_MAX_LIFETIME_MINUTES", "5"))

	return DatabaseConfig{
		Host:            getEnv("DB_HOST", "localhost"),
		Port:            getEnv("DB_PORT", "5432"),
		User:            getEnv("DB_USER", "postgres"),
		Password:        getEnv("DB_PASSWORD", "postgres"),
		Name:            getEnv("DB_NAME", "ctjot"),
		SSLMode:         getEnv("DB_SSLMODE", "disable"),
		MaxOpenConns:    maxOpenConns,
		MaxIdleConns:    maxIdleConns,
		ConnMaxLifetime: time.Duration(connMaxLifetime) * time.Minute,
		MigrationsPath:  getEnv("DB_MIGRATIONS_PATH", "migrations"),
	}
}

func loadRedisConfig() RedisConfig {
	enabled := getEnv("REDIS_ENABLED", "true") == "true"
	db, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))

	return RedisConfig{
		Enabled:  enabled,
		URL:      getEnv("REDIS_URL", ""),
		Host:     getEnv("REDIS_HOST", "localhost"),
		Port:     getEnv("REDIS_PORT", "6379"),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       db,
	}
}

func loadAuthConfig() AuthConfig {
	tokenExpiration, _ := strconv.Atoi(getEnv("JWT_EXPIRATION_HOURS", "24"))

	environment := getEnv("ENVIRONMENT", "development")
	cookieSecure := environment == "production"

	return AuthConfig{
		JWTSecret:       getEnv("JWT_SECRET", ""),
		TokenExpiration: time.Duration(tokenExpiration) * time.Hour,
		CookieSecure:    cookieSecure,
		CookieSameSite:  getEnv("COOKIE_SAME_SITE", "lax"),
	}
}

func loadDiscordConfig() DiscordConfig {
	serverURL := getEnv("SERVER_URL", "http://localhost:8080")

	var adminIDs []string
	for _, id := range strings.Split(getEnv("DISCORD_ADMIN_USER_IDS", ""), ",") {
		id = strings.TrimSpace(id)
		if id != "" {
			adminIDs = append(adminIDs, id)
		}
	}

	return DiscordConfig{
		ClientID:     getEnv("DISCORD_CLIENT_ID", ""),
		ClientSecret: getEnv("DISCORD_CLIENT_SECRET", ""),
		RedirectURL:  serverURL + "/auth/discord/callback",
		Scopes:       []string{"identify"},
		AdminUserIDs: adminIDs,
	}
}

func loadFrontendConfig() FrontendConfig {
	corsDebug := getEnv("CORS_DEBUG", "") == "true"

	return FrontendConfig{
		URL:       getEnv("FRONTEND_URL", "http://localhost:3000"),
		CORSDebug: corsDebug,
	}
}

func loadLoggingConfig() LoggingConfig {
	environment := getEnv("ENVIRONMENT", "development")
	jsonFormat := environment == "production"

	return LoggingConfig{
		Level:      getEnv("LOG_LEVEL", "debug"),
		JSONFormat: jsonFormat,
	}
}

func loadRateLimitConfig() RateLimitConfig {
	enabled := getEnv("RATE_LIMIT_ENABLED", "true") == "true"
	requestsPerSecond, _ := strconv.ParseFloat(getEnv("RATE_LIMIT_REQUESTS_PER_SECOND", "10"), 64)
	burstSize, _ := strconv.Atoi(getEnv("RATE_LIMIT_BURST_SIZE", "20"))
	trustProxy := getEnv("RATE_LIMIT_TRUST_PROXY", "") == "true"

	return RateLimitConfig{
		Enabled:           enabled,
		RequestsPerSecond: requestsPerSecond,
		BurstSize:         burstSize,
		TrustProxy:        trustProxy,
	}
}

func loadRandomizerConfig() RandomizerConfig {
	engineTimeout, _ := strconv.Atoi(getEnv("RANDO_ENGINE_TIMEOUT_SECONDS", "120"))
	spoilerCacheTTL, _ := strconv.Atoi(getEnv("RANDO_SPOILER_CACHE_TTL_MINUTES", "60"))

	return RandomizerConfig{
		EnginePath:      getEnv("RANDO_ENGINE_PATH", "jetsoftime"),
		WorkDir:         getEnv("RANDO_WORK_DIR", os.TempDir()),
		BaseROMPath:     getEnv("RANDO_BASE_ROM_PATH", "ct.sfc"),
		NamesPath:       getEnv("RANDO_NAMES_PATH", "names.txt"),
		EngineTimeout:   time.Duration(engineTimeout) * time.Second,
		SpoilerCacheTTL: time.Duration(spoilerCacheTTL) * time.Minute,
	}
}

func (c *Config) validate() error {
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}

	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("JWT_SECRET must be at least 32 characters long")
	}

	if c.Server.Port == "" {
		return fmt.Errorf("SERVER_PORT is required")
	}

	if c.Database.Host == "" {
		return fmt.Errorf("DB_HOST is required")
	}

	if c.Database.Name == "" {
		return fmt.Errorf("DB_NAME is required")
	}

	if c.Randomizer.EnginePath == "" {
		return fmt.Errorf("RANDO_ENGINE_PATH is required")
	}

	if c.Randomizer.BaseROMPath == "" {
		return fmt.Errorf("RANDO_BASE_ROM_PATH is required")
	}

	return nil
}

func (c *Config) DiscordOAuthConfigured() bool {
	return c.Discord.ClientID != "" && c.Discord.ClientSecret != ""
}

func (c *Config) IsAdminDiscordUser(userID string) bool {
	for _, id := range c.Discord.AdminUserIDs {
		if id == userID {
			return true
		}
	}
	return false
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
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
