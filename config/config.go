package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Saqlash backendlari
const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
	BackendBolt   = "bolt"
	BackendRedis  = "redis"
)

// Config ilovaning konfiguratsiyasi
type Config struct {
	TelegramToken  string
	GeminiAPIKey   string
	GeminiModel    string
	StoreBackend   string
	StorePath      string
	RedisAddr      string
	LogLevel       string
	LogFormat      string
	MaxContextSize int
	AuditLogSize   int
}

// Load konfiguratsiyani yuklash
func Load() (*Config, error) {
	// .env faylini yuklash (mavjud bo'lsa)
	_ = godotenv.Load()

	config := &Config{
		TelegramToken:  os.Getenv("TELEGRAM_BOT_TOKEN"),
		GeminiAPIKey:   os.Getenv("GEMINI_API_KEY"),
		GeminiModel:    "gemini-2.0-flash",
		StoreBackend:   BackendSQLite,
		StorePath:      "data/store.db",
		RedisAddr:      os.Getenv("REDIS_ADDR"),
		LogLevel:       "info",
		LogFormat:      "text",
		MaxContextSize: 20, // Default qiymat
		AuditLogSize:   500,
	}

	if model := os.Getenv("GEMINI_MODEL"); model != "" {
		config.GeminiModel = model
	}
	if backend := os.Getenv("STORE_BACKEND"); backend != "" {
		config.StoreBackend = strings.ToLower(backend)
	}
	if path := os.Getenv("STORE_PATH"); path != "" {
		config.StorePath = path
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		config.LogLevel = strings.ToLower(level)
	}
	if format := os.Getenv("LOG_FORMAT"); format != "" {
		config.LogFormat = strings.ToLower(format)
	}

	if raw := os.Getenv("MAX_CONTEXT_SIZE"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("MAX_CONTEXT_SIZE noto'g'ri formatda: %v", err)
		}
		config.MaxContextSize = parsed
	}
	if raw := os.Getenv("AUDIT_LOG_SIZE"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("AUDIT_LOG_SIZE noto'g'ri formatda: %v", err)
		}
		config.AuditLogSize = parsed
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate qiymatlarni tekshirish
func (c *Config) Validate() error {
	if c.TelegramToken == "" {
		return fmt.Errorf("TELEGRAM_BOT_TOKEN environment variable bo'sh")
	}

	switch c.StoreBackend {
	case BackendMemory:
	case BackendSQLite, BackendBolt:
		if c.StorePath == "" {
			return fmt.Errorf("STORE_PATH %s backend uchun bo'sh bo'lmasligi kerak", c.StoreBackend)
		}
	case BackendRedis:
		if c.RedisAddr == "" {
			return fmt.Errorf("REDIS_ADDR redis backend uchun bo'sh bo'lmasligi kerak")
		}
	default:
		return fmt.Errorf("STORE_BACKEND noma'lum: %q", c.StoreBackend)
	}

	if c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("LOG_FORMAT text yoki json bo'lishi kerak: %q", c.LogFormat)
	}
	if c.MaxContextSize < 0 {
		return fmt.Errorf("MAX_CONTEXT_SIZE manfiy bo'lmasligi kerak")
	}
	return nil
}
