package config

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/Lixing-Zhang/mulghai-point/backend/internal/models"
	"github.com/Lixing-Zhang/mulghai-point/backend/internal/pincode"
	"gopkg.in/yaml.v3"
)

var phonePattern = regexp.MustCompile(`^\+?[0-9 -]{10,20}$`)

// Config holds all configuration for the application.
// Following 12-factor app principles, config is loaded from environment variables.
// Shop settings may also come from a YAML file named by SHOP_CONFIG_FILE;
// environment variables win over the file.
type Config struct {
	Server   ServerConfig
	Auth     AuthConfig
	Shop     ShopConfig
	Storage  StorageConfig
	LogLevel string
}

type ServerConfig struct {
	Port            string
	Host            string
	ReadTimeout     int
	WriteTimeout    int
	ShutdownTimeout int
	AllowedOrigins  []string
}

type AuthConfig struct {
	APIKeys []string // Valid API keys for the admin routes
}

// ShopConfig describes the storefront itself
type ShopConfig struct {
	Name             string               `yaml:"name"`
	WhatsAppPhone    string               `yaml:"whatsapp_phone"`
	SupportPhone     string               `yaml:"support_phone"`
	Delivery         DeliveryConfig       `yaml:"delivery"`
	ServiceAreas     []models.ServiceArea `yaml:"service_areas"`
	ServiceAreaFiles []string             `yaml:"service_area_files"`
}

// DeliveryConfig is the free-delivery rule, in whole rupees
type DeliveryConfig struct {
	Threshold int64 `yaml:"threshold"`
	Fee       int64 `yaml:"fee"`
}

// StorageConfig selects the backing store of each repository
type StorageConfig struct {
	CartBackend    string // memory | redis
	RedisURL       string
	CartTTLMinutes int
	CartSweepSpec  string

	OrderBackend string // memory | postgres
	PostgresDSN  string

	StatusBackend string // memory | mongo
	MongoURI      string
	MongoDatabase string
}

// Load reads configuration from environment variables and the optional shop file
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			Host:            getEnv("HOST", "0.0.0.0"),
			ReadTimeout:     getEnvAsInt("READ_TIMEOUT", 15),
			WriteTimeout:    getEnvAsInt("WRITE_TIMEOUT", 15),
			ShutdownTimeout: getEnvAsInt("SHUTDOWN_TIMEOUT", 30),
			AllowedOrigins:  getEnvAsSlice("CORS_ORIGINS", []string{"*"}),
		},
		Auth: AuthConfig{
			APIKeys: getEnvAsSlice("API_KEYS", []string{"apitest"}),
		},
		Shop: DefaultShop(),
		Storage: StorageConfig{
			CartBackend:    getEnv("CART_BACKEND", "memory"),
			RedisURL:       getEnv("REDIS_URL", ""),
			CartTTLMinutes: getEnvAsInt("CART_TTL_MINUTES", 24*60),
			CartSweepSpec:  getEnv("CART_SWEEP_SCHEDULE", "@every 10m"),
			OrderBackend:   getEnv("ORDER_BACKEND", "memory"),
			PostgresDSN:    getEnv("POSTGRES_DSN", ""),
			StatusBackend:  getEnv("STATUS_BACKEND", "memory"),
			MongoURI:       getEnv("MONGO_URL", ""),
			MongoDatabase:  getEnv("DB_NAME", "mulghai"),
		},
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	if path := os.Getenv("SHOP_CONFIG_FILE"); path != "" {
		if err := cfg.loadShopFile(path); err != nil {
			return nil, err
		}
	}
	cfg.applyShopEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// DefaultShop returns the built-in shop settings
func DefaultShop() ShopConfig {
	return ShopConfig{
		Name:          "Mulghai Point",
		WhatsAppPhone: "917986955634",
		SupportPhone:  "6284307484",
		Delivery: DeliveryConfig{
			Threshold: 500,
			Fee:       50,
		},
	}
}

// loadShopFile overlays the shop section with the YAML file at path
func (c *Config) loadShopFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read shop config: %w", err)
	}

	var file struct {
		Shop ShopConfig `yaml:"shop"`
	}
	file.Shop = c.Shop
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to parse shop config %s: %w", path, err)
	}

	c.Shop = file.Shop
	return nil
}

func (c *Config) applyShopEnv() {
	c.Shop.Name = getEnv("SHOP_NAME", c.Shop.Name)
	c.Shop.WhatsAppPhone = getEnv("WHATSAPP_PHONE", c.Shop.WhatsAppPhone)
	c.Shop.SupportPhone = getEnv("SUPPORT_PHONE", c.Shop.SupportPhone)
	c.Shop.Delivery.Threshold = int64(getEnvAsInt("DELIVERY_THRESHOLD", int(c.Shop.Delivery.Threshold)))
	c.Shop.Delivery.Fee = int64(getEnvAsInt("DELIVERY_FEE", int(c.Shop.Delivery.Fee)))
	c.Shop.ServiceAreaFiles = getEnvAsSlice("SERVICE_AREA_FILES", c.Shop.ServiceAreaFiles)
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	if len(c.Auth.APIKeys) == 0 {
		return fmt.Errorf("at least one API key must be configured")
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[strings.ToLower(c.LogLevel)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.LogLevel)
	}

	if strings.TrimSpace(c.Shop.Name) == "" {
		return fmt.Errorf("shop name is required")
	}
	if !phonePattern.MatchString(c.Shop.WhatsAppPhone) {
		return fmt.Errorf("invalid WhatsApp phone: %q", c.Shop.WhatsAppPhone)
	}
	// a zero fee or threshold is allowed: delivery is then always free
	if c.Shop.Delivery.Threshold < 0 || c.Shop.Delivery.Fee < 0 {
		return fmt.Errorf("delivery threshold and fee must not be negative")
	}
	for _, a := range c.Shop.ServiceAreas {
		if strings.TrimSpace(a.Area) == "" {
			return fmt.Errorf("service area %q has no area name", a.Pincode)
		}
		if !pincode.ValidCode(a.Pincode) {
			return fmt.Errorf("invalid service area pincode: %q (must be 6 digits)", a.Pincode)
		}
	}

	switch c.Storage.CartBackend {
	case "memory":
	case "redis":
		if c.Storage.RedisURL == "" {
			return fmt.Errorf("REDIS_URL is required when CART_BACKEND=redis")
		}
	default:
		return fmt.Errorf("invalid cart backend: %s (must be memory or redis)", c.Storage.CartBackend)
	}

	switch c.Storage.OrderBackend {
	case "memory":
	case "postgres":
		if c.Storage.PostgresDSN == "" {
			return fmt.Errorf("POSTGRES_DSN is required when ORDER_BACKEND=postgres")
		}
	default:
		return fmt.Errorf("invalid order backend: %s (must be memory or postgres)", c.Storage.OrderBackend)
	}

	switch c.Storage.StatusBackend {
	case "memory":
	case "mongo":
		if c.Storage.MongoURI == "" {
			return fmt.Errorf("MONGO_URL is required when STATUS_BACKEND=mongo")
		}
	default:
		return fmt.Errorf("invalid status backend: %s (must be memory or mongo)", c.Storage.StatusBackend)
	}

	return nil
}

// Helper functions for reading environment variables

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	parts := strings.Split(valueStr, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
