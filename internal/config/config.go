package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// AllowedCheckInIntervals - допустимые значения интервала check-in в секундах
var AllowedCheckInIntervals = []int{180, 300, 600, 900}

// Config - структура для хранения конфигурации приложения
type Config struct {
	DatabaseURL string `env:"DATABASE_URL"`
	DBMaxConns  int    `env:"DB_MAX_CONNS" envDefault:"10"`
	DBMinConns  int    `env:"DB_MIN_CONNS" envDefault:"2"`
	HTTPPort    string `env:"HTTP_PORT" envDefault:"8080"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// Redis Config
	RedisAddr string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPass string `env:"REDIS_PASSWORD"`
	RedisDB   int    `env:"REDIS_DB" envDefault:"0"`

	// Канал к удаленному ассистенту
	AssistantWSURL       string        `env:"ASSISTANT_WS_URL"`
	ReconnectBase        time.Duration `env:"RECONNECT_BASE" envDefault:"1s"`
	ReconnectCap         time.Duration `env:"RECONNECT_CAP" envDefault:"30s"`
	ReconnectMaxAttempts int           `env:"RECONNECT_MAX_ATTEMPTS" envDefault:"10"`

	// Внешние коллабораторы геокодинга и маршрутизации
	GeocoderURL    string `env:"GEOCODER_URL"`
	GeocoderEmail  string `env:"GEOCODER_EMAIL"`
	RoutingURL     string `env:"ROUTING_URL"`
	RoutingProfile string `env:"ROUTING_PROFILE" envDefault:"walking"`

	// Параметры протокола check-in и эскалации
	CheckInInterval  time.Duration `env:"CHECK_IN_INTERVAL_SECONDS" envDefault:"300s"`
	AckWindow        time.Duration `env:"ACK_WINDOW_SECONDS" envDefault:"120s"`
	AuthoritiesDelay time.Duration `env:"AUTHORITIES_DELAY_SECONDS" envDefault:"300s"`
	RiskSustain      time.Duration `env:"RISK_SUSTAIN_SECONDS" envDefault:"0s"`

	// Alert Gateway Config (доставка экстренных уведомлений)
	AlertWebhookURL    string        `env:"ALERT_WEBHOOK_URL"`
	AlertWebhookSecret string        `env:"ALERT_WEBHOOK_SECRET"`
	AlertTimeout       time.Duration `env:"ALERT_TIMEOUT" envDefault:"5s"`
	AlertMaxRetries    int           `env:"ALERT_MAX_RETRIES" envDefault:"3"`
	AlertBaseDelay     time.Duration `env:"ALERT_BASE_DELAY" envDefault:"2s"`

	// Stats Config
	StatsTimeWindowMinutes int `env:"STATS_TIME_WINDOW_MINUTES" envDefault:"60"`

	// API Keys for authentication
	APIKeys []string `env:"API_KEYS"`
}

// LoadConfig загружает конфигурацию из переменных окружения и .env файла
func LoadConfig() (*Config, error) {
	// Загрузка переменных окружения из .env файла (если есть)
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("ошибка загрузки файла .env: %w", err)
	}

	cfg := &Config{
		DatabaseURL:            os.Getenv("DATABASE_URL"),
		DBMaxConns:             getEnvAsInt("DB_MAX_CONNS", 10),
		DBMinConns:             getEnvAsInt("DB_MIN_CONNS", 2),
		HTTPPort:               getEnv("HTTP_PORT", "8080"),
		LogLevel:               getEnv("LOG_LEVEL", "info"),
		RedisAddr:              getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPass:              os.Getenv("REDIS_PASSWORD"),
		RedisDB:                getEnvAsInt("REDIS_DB", 0),
		AssistantWSURL:         os.Getenv("ASSISTANT_WS_URL"),
		ReconnectBase:          getEnvAsDuration("RECONNECT_BASE", time.Second),
		ReconnectCap:           getEnvAsDuration("RECONNECT_CAP", 30*time.Second),
		ReconnectMaxAttempts:   getEnvAsInt("RECONNECT_MAX_ATTEMPTS", 10),
		GeocoderURL:            getEnv("GEOCODER_URL", "https://nominatim.openstreetmap.org"),
		GeocoderEmail:          os.Getenv("GEOCODER_EMAIL"),
		RoutingURL:             getEnv("ROUTING_URL", "https://router.project-osrm.org"),
		RoutingProfile:         getEnv("ROUTING_PROFILE", "walking"),
		CheckInInterval:        getEnvAsSeconds("CHECK_IN_INTERVAL_SECONDS", 300*time.Second),
		AckWindow:              getEnvAsSeconds("ACK_WINDOW_SECONDS", 120*time.Second),
		AuthoritiesDelay:       getEnvAsSeconds("AUTHORITIES_DELAY_SECONDS", 300*time.Second),
		RiskSustain:            getEnvAsSeconds("RISK_SUSTAIN_SECONDS", 0),
		AlertWebhookURL:        os.Getenv("ALERT_WEBHOOK_URL"),
		AlertWebhookSecret:     os.Getenv("ALERT_WEBHOOK_SECRET"),
		AlertTimeout:           getEnvAsDuration("ALERT_TIMEOUT", 5*time.Second),
		AlertMaxRetries:        getEnvAsInt("ALERT_MAX_RETRIES", 3),
		AlertBaseDelay:         getEnvAsDuration("ALERT_BASE_DELAY", 2*time.Second),
		StatsTimeWindowMinutes: getEnvAsInt("STATS_TIME_WINDOW_MINUTES", 60),
	}

	// Загрузка API ключей
	apiKeysStr := os.Getenv("API_KEYS")
	if apiKeysStr != "" {
		cfg.APIKeys = strings.Split(apiKeysStr, ",")
		for i, key := range cfg.APIKeys {
			cfg.APIKeys[i] = strings.TrimSpace(key)
		}
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}

	if !ValidCheckInInterval(int(cfg.CheckInInterval.Seconds())) {
		return nil, fmt.Errorf("CHECK_IN_INTERVAL_SECONDS must be one of %v", AllowedCheckInIntervals)
	}

	return cfg, nil
}

// ValidCheckInInterval проверяет, входит ли интервал (в секундах) в допустимый набор
func ValidCheckInInterval(seconds int) bool {
	for _, v := range AllowedCheckInIntervals {
		if v == seconds {
			return true
		}
	}
	return false
}

// getEnv возвращает значение переменной окружения или значение по умолчанию
func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt возвращает значение переменной окружения как int или значение по умолчанию
func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsDuration возвращает значение переменной окружения как time.Duration или значение по умолчанию
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if durationValue, err := time.ParseDuration(value); err == nil {
			return durationValue
		}
	}
	return defaultValue
}

// getEnvAsSeconds трактует числовое значение переменной как количество секунд.
// Значения с суффиксом единицы ("300s", "5m") тоже принимаются.
func getEnvAsSeconds(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return time.Duration(intValue) * time.Second
		}
		if durationValue, err := time.ParseDuration(value); err == nil {
			return durationValue
		}
	}
	return defaultValue
}
