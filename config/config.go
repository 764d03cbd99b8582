package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for both services
type Config struct {
	Server    ServerConfig
	Cache     CacheConfig
	Geo       GeoConfig
	Fuel      FuelConfig
	Routing   RoutingConfig
	Directory DirectoryConfig
	Savings   SavingsConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	FuelPort       string   `mapstructure:"fuel_port"`
	ComparisonPort string   `mapstructure:"comparison_port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// CacheConfig holds price cache configuration
type CacheConfig struct {
	Type      string        `mapstructure:"type"` // "memory" or "redis"
	RedisAddr string        `mapstructure:"redis_addr"`
	TTL       time.Duration `mapstructure:"ttl"`
}

// GeoConfig holds geocoding provider configuration
type GeoConfig struct {
	NominatimURL string `mapstructure:"nominatim_url"`
	UserAgent    string `mapstructure:"user_agent"`
	GoogleAPIKey string `mapstructure:"google_api_key"`
}

// FuelConfig holds fuel price publisher and service configuration
type FuelConfig struct {
	PublisherURL string `mapstructure:"publisher_url"`
	// ServiceURL is where the comparison service reaches the fuel service.
	ServiceURL string `mapstructure:"service_url"`
}

// RoutingConfig holds routing provider configuration
type RoutingConfig struct {
	TomTomURL string `mapstructure:"tomtom_url"`
	APIKey    string `mapstructure:"api_key"`
}

// DirectoryConfig holds the record store endpoints
type DirectoryConfig struct {
	PatientURL   string `mapstructure:"patient_url"`
	CounselorURL string `mapstructure:"counselor_url"`
	AccountURL   string `mapstructure:"account_url"`
}

// SavingsConfig holds savings calculation configuration
type SavingsConfig struct {
	AvgFuelConsumption float64 `mapstructure:"avg_fuel_consumption"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/commutewise/")

	// Environment variable settings
	v.SetEnvPrefix("COMMUTEWISE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set default values
	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; using environment variables and defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Validate configuration
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.fuel_port", "8001")
	v.SetDefault("server.comparison_port", "8000")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"*"})

	// Cache defaults
	v.SetDefault("cache.type", "memory")
	v.SetDefault("cache.redis_addr", "localhost:6379")
	v.SetDefault("cache.ttl", "24h")

	// Geocoding defaults. The API key defaults to empty so the env
	// binding is registered; viper only reads env vars for known keys.
	v.SetDefault("geo.nominatim_url", "https://nominatim.openstreetmap.org")
	v.SetDefault("geo.user_agent", "commutewise/1.0")
	v.SetDefault("geo.google_api_key", "")

	// Fuel defaults
	v.SetDefault("fuel.publisher_url", "https://www.globalpetrolprices.com")
	v.SetDefault("fuel.service_url", "http://localhost:8001")

	// Routing defaults
	v.SetDefault("routing.tomtom_url", "https://api.tomtom.com/routing/1")
	v.SetDefault("routing.api_key", "")

	// Directory defaults. The record store has no sensible default
	// location; the comparison binary checks these at startup.
	v.SetDefault("directory.patient_url", "")
	v.SetDefault("directory.counselor_url", "")
	v.SetDefault("directory.account_url", "")

	// Savings defaults
	v.SetDefault("savings.avg_fuel_consumption", 6.5)
}

// validate validates the configuration shared by both services. Provider
// API keys are checked by the binary that needs them.
func validate(config *Config) error {
	if config.Cache.Type != "memory" && config.Cache.Type != "redis" {
		return fmt.Errorf("cache type must be 'memory' or 'redis', got: %s", config.Cache.Type)
	}

	if config.Cache.Type == "redis" && config.Cache.RedisAddr == "" {
		return fmt.Errorf("Redis address is required when cache type is 'redis'")
	}

	if config.Cache.TTL <= 0 {
		return fmt.Errorf("cache TTL must be positive, got: %s", config.Cache.TTL)
	}

	if config.Savings.AvgFuelConsumption <= 0 {
		return fmt.Errorf("average fuel consumption must be positive, got: %v", config.Savings.AvgFuelConsumption)
	}

	return nil
}
