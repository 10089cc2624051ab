// Package config предоставялет структуры и функции для парсинга и загрузки конфига.
//
// Конфиг читается из YAML-файла по пути CONFIG_PATH, если он задан,
// иначе только из переменных окружения. Переменные окружения всегда
// имеют приоритет над файлом.
package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Config общая структура для хранения настроек
type Config struct {
	Env                     string `yaml:"env" env:"ENV" env-default:"local"`
	StorageConnectionString string `yaml:"storage_connection_string" env:"STORAGE_CONNECTION_STRING" env-required:"true"`
	HTTPServer              `yaml:"http_server"`
	RedisConnection         `yaml:"redis_connection"`
	JWTToken                `yaml:"jwttoken"`
	Auth                    `yaml:"auth"`
	CORS                    `yaml:"cors"`
}

// HTTPServer структура для настройки сервера
type HTTPServer struct {
	AddressHTTP string        `yaml:"addresshttp" env:"HTTP_ADDRESS" env-default:":8000"`
	TimeoutHTTP time.Duration `yaml:"timeouthttp" env:"HTTP_TIMEOUT" env-default:"10s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env:"HTTP_IDLE_TIMEOUT" env-default:"60s"`
}

// RedisConnection структура для настройки подключения к redis.
// Пустой адрес отключает кеш проектов.
type RedisConnection struct {
	AddressRedis string        `yaml:"addressredis" env:"REDIS_ADDRESS"`
	Password     string        `yaml:"password" env:"REDIS_PASSWORD"`
	User         string        `yaml:"user" env:"REDIS_USER"`
	DB           int           `yaml:"db" env:"REDIS_DB" env-default:"0"`
	MaxRetries   int           `yaml:"max_retries" env:"REDIS_MAX_RETRIES" env-default:"3"`
	DialTimeout  time.Duration `yaml:"dial_timeout" env:"REDIS_DIAL_TIMEOUT" env-default:"5s"`
	TimeoutRedis time.Duration `yaml:"timeoutredis" env:"REDIS_TIMEOUT" env-default:"3s"`
	CacheTTL     time.Duration `yaml:"cache_ttl" env:"CACHE_TTL" env-default:"1h"`
}

// JWTToken структура для работы с jwt-токеном
type JWTToken struct {
	JWTSecretKey      string `yaml:"jwt_secret_key" env:"JWT_SECRET_KEY" env-required:"true"`
	ExpireMinutes     int    `yaml:"access_token_expire_minutes" env:"JWT_ACCESS_TOKEN_EXPIRE_MINUTES" env-default:"10"`
	EnforceOnProjects bool   `yaml:"enforce" env:"JWT_ENFORCE" env-default:"false"`
}

// Auth настройки регистрации и входа
type Auth struct {
	StoreRawPassword bool    `yaml:"store_raw_password" env:"AUTH_STORE_RAW_PASSWORD" env-default:"false"`
	RateLimit        float64 `yaml:"rate_limit" env:"AUTH_RATE_LIMIT" env-default:"5"`
	RateBurst        int     `yaml:"rate_burst" env:"AUTH_RATE_BURST" env-default:"10"`
}

// CORS настройки заголовков Cross-Origin
type CORS struct {
	AllowedOrigins   []string `yaml:"allowed_origins" env:"CORS_ALLOWED_ORIGIN" env-default:"http://localhost:8000"`
	AllowedMethods   []string `yaml:"allowed_methods" env:"CORS_ALLOWED_METHODS" env-default:"GET,POST,PUT,DELETE,PATCH"`
	AllowedHeaders   []string `yaml:"allowed_headers" env:"CORS_ALLOWED_HEADERS" env-default:"*"`
	AllowCredentials bool     `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"true"`
	MaxAge           int      `yaml:"max_age" env:"CORS_MAX_AGE" env-default:"600"`
}

// TokenTTL возвращает время жизни access-токена.
func (j JWTToken) TokenTTL() time.Duration {
	return time.Duration(j.ExpireMinutes) * time.Minute
}

// MustLoad загружает конфиг и завершает процесс при ошибке.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	return cfg
}

// Load загружает .env (если есть), затем YAML из CONFIG_PATH (если задан) и переменные окружения.
func Load() (*Config, error) {
	const op = "config.Load"

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var cfg Config
	if configPath := os.Getenv("CONFIG_PATH"); configPath != "" {
		if _, err := os.Stat(configPath); err != nil {
			return nil, fmt.Errorf("%s: config file %s: %w", op, configPath, err)
		}
		if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	cfg.normalize()
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &cfg, nil
}

// normalize убирает пробелы из списков: "GET, POST" и "GET,POST" равнозначны.
func (c *Config) normalize() {
	c.AllowedOrigins = trimAll(c.AllowedOrigins)
	c.AllowedMethods = trimAll(c.AllowedMethods)
	c.AllowedHeaders = trimAll(c.AllowedHeaders)
}

func (c *Config) validate() error {
	if c.ExpireMinutes <= 0 {
		return fmt.Errorf("access token expire minutes must be positive, got %d", c.ExpireMinutes)
	}
	if c.RateLimit <= 0 || c.RateBurst <= 0 {
		return errors.New("auth rate limit and burst must be positive")
	}
	return nil
}

func trimAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// String печатает конфиг без секретов.
func (c *Config) String() string {
	return fmt.Sprintf(
		"Env: %s\n"+
			"HTTPServer:\n"+
			"  Address: %s\n"+
			"  Timeout: %s\n"+
			"  IdleTimeout: %s\n"+
			"Redis:\n"+
			"  Addr: %s\n"+
			"  DB: %d\n"+
			"  CacheTTL: %s\n"+
			"JWTToken:\n"+
			"  TokenTTL: %s\n"+
			"  Enforce: %t\n"+
			"CORS:\n"+
			"  Origins: %v\n"+
			"  Methods: %v\n"+
			"  Headers: %v\n"+
			"  Credentials: %t\n"+
			"  MaxAge: %d\n",
		c.Env,
		c.AddressHTTP,
		c.TimeoutHTTP,
		c.IdleTimeout,
		c.AddressRedis,
		c.DB,
		c.CacheTTL,
		c.TokenTTL(),
		c.EnforceOnProjects,
		c.AllowedOrigins,
		c.AllowedMethods,
		c.AllowedHeaders,
		c.AllowCredentials,
		c.MaxAge,
	)
}
