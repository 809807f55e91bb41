package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	GoldApple GoldAppleConfig `mapstructure:"goldapple"`
	Output    OutputConfig    `mapstructure:"output"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Log       LogConfig       `mapstructure:"log"`
}

// GoldAppleConfig holds catalog API configuration
type GoldAppleConfig struct {
	BaseURL         string        `mapstructure:"base_url"`
	CategoryID      string        `mapstructure:"category_id"`
	CityID          string        `mapstructure:"city_id"`
	GeoPolygons     []string      `mapstructure:"geo_polygons"`
	CustomerGroupID string        `mapstructure:"customer_group_id"`
	Timeout         time.Duration `mapstructure:"timeout"`
	ItemDelay       time.Duration `mapstructure:"item_delay"`
	Proxies         []string      `mapstructure:"proxies"`

	// Upper bound over all requests, 0 means unlimited
	MaxRequestsPerSecond int `mapstructure:"max_requests_per_second"`

	// Browser impersonation
	Accept    string `mapstructure:"accept"`
	UserAgent string `mapstructure:"user_agent"`
}

// OutputConfig holds the location of the CSV file
type OutputConfig struct {
	Path string `mapstructure:"path"`
}

// DatabaseConfig holds the optional PostgreSQL mirror configuration
type DatabaseConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Name     string `mapstructure:"name"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
}

// DSN returns the pgx connection string.
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		c.Host, c.Port, c.User, c.Password, c.Name)
}

// RedisConfig holds the optional run progress store
type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	Database int    `mapstructure:"database"`
}

func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

// Load loads configuration from ./config.yaml with environment variable overrides.
func Load() (*Config, error) {
	return LoadFrom(".")
}

// LoadFrom reads config.yaml from dir. The file is optional: without it the
// built-in defaults are used. A .env file in the working directory is loaded
// into the environment first, when present.
func LoadFrom(dir string) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug("No .env file found, using process environment")
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)

	setDefaults(v)

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		log.Info("config.yaml not found, using defaults")
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate checks the settings the pipeline cannot run without.
func (c *Config) Validate() error {
	if c.GoldApple.BaseURL == "" {
		return errors.New("goldapple.base_url must be set")
	}
	if c.GoldApple.CategoryID == "" || c.GoldApple.CityID == "" {
		return errors.New("goldapple.category_id and goldapple.city_id must be set")
	}
	if c.GoldApple.ItemDelay < 0 {
		return fmt.Errorf("goldapple.item_delay must not be negative, got %s", c.GoldApple.ItemDelay)
	}
	if c.GoldApple.MaxRequestsPerSecond < 0 {
		return fmt.Errorf("goldapple.max_requests_per_second must not be negative, got %d", c.GoldApple.MaxRequestsPerSecond)
	}
	if c.Output.Path == "" {
		return errors.New("output.path must be set")
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("goldapple.base_url", "https://goldapple.ru")
	v.SetDefault("goldapple.category_id", "1000000007")
	v.SetDefault("goldapple.city_id", "c2deb16a-0330-4f05-821f-1d09c93331e6")
	v.SetDefault("goldapple.geo_polygons", []string{
		"EKB-000000316",
		"EKB-000000319",
		"EKB-000000318",
		"EKB-000000320",
	})
	v.SetDefault("goldapple.customer_group_id", "0")
	v.SetDefault("goldapple.timeout", 60*time.Second)
	v.SetDefault("goldapple.item_delay", 2*time.Second)
	v.SetDefault("goldapple.max_requests_per_second", 0)
	v.SetDefault("goldapple.proxies", []string{})
	v.SetDefault("goldapple.accept", "text/html,application/xhtml+xml,application/xml;q=0.9,"+
		"image/avif,image/webp,image/apng,*/*;q=0.8,"+
		"application/signed-exchange;v=b3;q=0.7")
	v.SetDefault("goldapple.user_agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) "+
		"AppleWebKit/537.36 (KHTML, like Gecko) "+
		"Chrome/124.0.0.0 Safari/537.36")

	v.SetDefault("output.path", "product_data.csv")

	v.SetDefault("database.enabled", false)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.name", "goldapple")
	v.SetDefault("database.user", "goldapple_user")
	v.SetDefault("database.password", "goldapple_pass")

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.database", 0)

	v.SetDefault("log.level", "info")
}
