package commons

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"ordersvc/internal/config"
)

// fileConfig mirrors config.Config with durations as strings, since
// yaml has no native duration decoding.
type fileConfig struct {
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`
	Database struct {
		Host            string `yaml:"host"`
		Port            int    `yaml:"port"`
		User            string `yaml:"user"`
		Password        string `yaml:"password"`
		Name            string `yaml:"name"`
		MaxOpenConns    int    `yaml:"maxOpenConns"`
		MaxIdleConns    int    `yaml:"maxIdleConns"`
		ConnMaxLifetime string `yaml:"connMaxLifetime"`
	} `yaml:"database"`
	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`
	Order struct {
		CancelTxTimeout string `yaml:"cancelTxTimeout"`
	} `yaml:"order"`
	Job struct {
		PromotionInterval string `yaml:"promotionInterval"`
	} `yaml:"job"`
}

// LoadConfig reads configuration from a YAML file.
func LoadConfig(path string) (*config.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	connMaxLifetime, err := parseDuration(fc.Database.ConnMaxLifetime, 5*time.Minute)
	if err != nil {
		return nil, fmt.Errorf("database.connMaxLifetime: %w", err)
	}
	cancelTxTimeout, err := parseDuration(fc.Order.CancelTxTimeout, 5*time.Second)
	if err != nil {
		return nil, fmt.Errorf("order.cancelTxTimeout: %w", err)
	}
	promotionInterval, err := parseDuration(fc.Job.PromotionInterval, 5*time.Minute)
	if err != nil {
		return nil, fmt.Errorf("job.promotionInterval: %w", err)
	}

	return &config.Config{
		Server: config.ServerConfig{
			Port: fc.Server.Port,
		},
		Database: config.DatabaseConfig{
			Host:            fc.Database.Host,
			Port:            fc.Database.Port,
			User:            fc.Database.User,
			Password:        fc.Database.Password,
			Name:            fc.Database.Name,
			MaxOpenConns:    fc.Database.MaxOpenConns,
			MaxIdleConns:    fc.Database.MaxIdleConns,
			ConnMaxLifetime: connMaxLifetime,
		},
		Log: config.LogConfig{
			Level: fc.Log.Level,
		},
		Order: config.OrderConfig{
			CancelTxTimeout: cancelTxTimeout,
		},
		Job: config.JobConfig{
			PromotionInterval: promotionInterval,
		},
	}, nil
}

func parseDuration(raw string, fallback time.Duration) (time.Duration, error) {
	if raw == "" {
		return fallback, nil
	}
	return time.ParseDuration(raw)
}
