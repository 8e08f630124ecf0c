package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Environment string           `mapstructure:"environment"`
	LogLevel    string           `mapstructure:"log_level"`
	Server      ServerConfig     `mapstructure:"server"`
	Database    DatabaseConfig   `mapstructure:"database"`
	Redis       RedisConfig      `mapstructure:"redis"`
	Weather     WeatherConfig    `mapstructure:"weather"`
	Telemetry   TelemetryConfig  `mapstructure:"telemetry"`
	Prediction  PredictionConfig `mapstructure:"prediction"`
}

type ServerConfig struct {
	Port           int      `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type DatabaseConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	User         string `mapstructure:"user"`
	Password     string `mapstructure:"password"`
	DBName       string `mapstructure:"dbname"`
	SSLMode      string `mapstructure:"sslmode"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type WeatherConfig struct {
	ServiceURL string `mapstructure:"service_url"`
	Timeout    int    `mapstructure:"timeout"`
}

type TelemetryConfig struct {
	Enabled        bool    `mapstructure:"enabled"`
	OTLPEndpoint   string  `mapstructure:"otlp_endpoint"`
	ServiceName    string  `mapstructure:"service_name"`
	ServiceVersion string  `mapstructure:"service_version"`
	SampleRate     float64 `mapstructure:"sample_rate"`
}

// PredictionConfig holds the tunable constants of the prediction engine. The
// ensemble weights and confidence increments are calibration knobs, not derived
// values, so they live in config rather than code.
type PredictionConfig struct {
	ForestPath            string  `mapstructure:"forest_path"`
	GradientBoostedWeight float64 `mapstructure:"gradient_boosted_weight"`
	SeasonalWeight        float64 `mapstructure:"seasonal_weight"`
	StepMinutes           int     `mapstructure:"step_minutes"`
	DefaultHoursAhead     float64 `mapstructure:"default_hours_ahead"`
	MaxHoursAhead         float64 `mapstructure:"max_hours_ahead"`
	HistoricalWindowDays  int     `mapstructure:"historical_window_days"`
	RealtimeWindowMinutes int     `mapstructure:"realtime_window_minutes"`
}

func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath(".")

	setDefaults()

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		// Config file not found, use defaults and environment variables
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	config.Environment = strings.ToLower(config.Environment)

	if err := validate(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

func validate(cfg *Config) error {
	weightSum := cfg.Prediction.GradientBoostedWeight + cfg.Prediction.SeasonalWeight
	if weightSum < 0.999 || weightSum > 1.001 {
		return fmt.Errorf("ensemble weights must sum to 1, got %0.3f", weightSum)
	}
	if cfg.Prediction.StepMinutes <= 0 {
		return fmt.Errorf("step_minutes must be positive, got %d", cfg.Prediction.StepMinutes)
	}
	if cfg.Prediction.MaxHoursAhead < cfg.Prediction.DefaultHoursAhead {
		return fmt.Errorf("max_hours_ahead %0.1f below default_hours_ahead %0.1f",
			cfg.Prediction.MaxHoursAhead, cfg.Prediction.DefaultHoursAhead)
	}
	return nil
}

func setDefaults() {
	// Environment
	viper.SetDefault("environment", "development")
	viper.SetDefault("log_level", "info")

	// Server
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})

	// Database
	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 5432)
	viper.SetDefault("database.user", "postgres")
	viper.SetDefault("database.password", "postgres")
	viper.SetDefault("database.dbname", "parkcast")
	viper.SetDefault("database.sslmode", "disable")
	viper.SetDefault("database.max_open_conns", 25)

	// Redis
	viper.SetDefault("redis.host", "localhost")
	viper.SetDefault("redis.port", 6379)
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.db", 0)

	// Weather
	viper.SetDefault("weather.service_url", "http://localhost:3002")
	viper.SetDefault("weather.timeout", 10)

	// Telemetry
	viper.SetDefault("telemetry.enabled", false)
	viper.SetDefault("telemetry.otlp_endpoint", "http://localhost:4318")
	viper.SetDefault("telemetry.service_name", "parkcast-go")
	viper.SetDefault("telemetry.service_version", "1.0.0")
	viper.SetDefault("telemetry.sample_rate", 0.2)

	// Prediction engine
	viper.SetDefault("prediction.forest_path", "")
	viper.SetDefault("prediction.gradient_boosted_weight", 0.6)
	viper.SetDefault("prediction.seasonal_weight", 0.4)
	viper.SetDefault("prediction.step_minutes", 30)
	viper.SetDefault("prediction.default_hours_ahead", 1)
	viper.SetDefault("prediction.max_hours_ahead", 24)
	viper.SetDefault("prediction.historical_window_days", 30)
	viper.SetDefault("prediction.realtime_window_minutes", 30)
}
