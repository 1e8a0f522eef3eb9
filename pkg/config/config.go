package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Environment string `yaml:"environment"`
	Server      struct {
		Port            int           `yaml:"port"`
		ReadTimeout     time.Duration `yaml:"read_timeout"`
		WriteTimeout    time.Duration `yaml:"write_timeout"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	} `yaml:"server"`
	Logging struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
		Output string `yaml:"output"`
	} `yaml:"logging"`
	Redis struct {
		Host     string `yaml:"host"`
		Port     int    `yaml:"port"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
		Prefix   string `yaml:"prefix"`
	} `yaml:"redis"`
	Session struct {
		TTL         time.Duration `yaml:"ttl"`
		SnapshotTTL time.Duration `yaml:"snapshot_ttl"`
	} `yaml:"session"`
	Directory struct {
		IndexPath string `yaml:"index_path"`
		DataPath  string `yaml:"data_path"`
	} `yaml:"directory"`
	Resolver struct {
		Threshold  int `yaml:"threshold"`
		MaxMatches int `yaml:"max_matches"`
	} `yaml:"resolver"`
	LLM struct {
		BaseURL     string        `yaml:"base_url"`
		APIKey      string        `yaml:"api_key"`
		Model       string        `yaml:"model"`
		Timeout     time.Duration `yaml:"timeout"`
		Temperature float32       `yaml:"temperature"`
	} `yaml:"llm"`
	Providers struct {
		Market struct {
			Timeout time.Duration `yaml:"timeout"`
		} `yaml:"market"`
		News struct {
			BaseURL string        `yaml:"base_url"`
			Timeout time.Duration `yaml:"timeout"`
		} `yaml:"news"`
		Chart struct {
			BaseURL string        `yaml:"base_url"`
			Timeout time.Duration `yaml:"timeout"`
		} `yaml:"chart"`
		RateLimit struct {
			Capacity     float64 `yaml:"capacity"`
			RefillPerSec float64 `yaml:"refill_per_sec"`
		} `yaml:"rate_limit"`
	} `yaml:"providers"`
	Kafka struct {
		Enabled      bool     `yaml:"enabled"`
		Brokers      []string `yaml:"brokers"`
		Topic        string   `yaml:"topic"`
		RequiredAcks int      `yaml:"required_acks"`
		Compression  string   `yaml:"compression"`
		Producer     struct {
			MaxAttempts  int           `yaml:"max_attempts"`
			Linger       time.Duration `yaml:"linger"`
			BatchBytes   int           `yaml:"batch_bytes"`
			BatchSize    int           `yaml:"batch_size"`
			WriteTimeout time.Duration `yaml:"write_timeout"`
			ReadTimeout  time.Duration `yaml:"read_timeout"`
			Async        bool          `yaml:"async"`
		} `yaml:"producer"`
	} `yaml:"kafka"`
	ClickHouse struct {
		Enabled          bool          `yaml:"enabled"`
		Host             string        `yaml:"host"`
		Port             int           `yaml:"port"`
		Database         string        `yaml:"database"`
		User             string        `yaml:"user"`
		Password         string        `yaml:"password"`
		UseHTTP          bool          `yaml:"use_http"`
		AsyncInsert      bool          `yaml:"async_insert"`
		WaitForAsync     bool          `yaml:"wait_for_async_insert"`
		DialTimeout      time.Duration `yaml:"dial_timeout"`
		ReadTimeout      time.Duration `yaml:"read_timeout"`
		WriteTimeout     time.Duration `yaml:"write_timeout"`
		MaxExecutionTime time.Duration `yaml:"max_execution_time"`
	} `yaml:"clickhouse"`
	Analytics struct {
		QueueWorkers int `yaml:"queue_workers"`
		RetryLimit   int `yaml:"retry_limit"`
	} `yaml:"analytics"`
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	c.applyDefaults()

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	if v := os.Getenv("FINTALK_LLM_API_KEY"); v != "" {
		c.LLM.APIKey = v
	}
	if v := os.Getenv("FINTALK_LLM_BASE_URL"); v != "" {
		c.LLM.BaseURL = v
	}
	if v := os.Getenv("FINTALK_REDIS_HOST"); v != "" {
		c.Redis.Host = v
	}
	if v := os.Getenv("FINTALK_REDIS_PASSWORD"); v != "" {
		c.Redis.Password = v
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		c.Kafka.Brokers = strings.Split(v, ",")
	}
	if v := os.Getenv("KAFKA_TOPIC"); v != "" {
		c.Kafka.Topic = v
	}

	return c, nil
}

func (c *Config) applyDefaults() {
	if c.Redis.Prefix == "" {
		c.Redis.Prefix = "fintalk"
	}
	if c.Session.TTL == 0 {
		c.Session.TTL = 30 * time.Minute
	}
	if c.Session.SnapshotTTL == 0 {
		c.Session.SnapshotTTL = 5 * time.Minute
	}
	if c.Resolver.Threshold == 0 {
		c.Resolver.Threshold = 70
	}
	if c.Resolver.MaxMatches == 0 {
		c.Resolver.MaxMatches = 5
	}
	if c.LLM.Timeout == 0 {
		c.LLM.Timeout = 20 * time.Second
	}
	if c.Providers.Market.Timeout == 0 {
		c.Providers.Market.Timeout = 8 * time.Second
	}
	if c.Providers.News.Timeout == 0 {
		c.Providers.News.Timeout = 8 * time.Second
	}
	if c.Providers.Chart.Timeout == 0 {
		c.Providers.Chart.Timeout = 8 * time.Second
	}
	if c.Providers.RateLimit.Capacity == 0 {
		c.Providers.RateLimit.Capacity = 10
	}
	if c.Providers.RateLimit.RefillPerSec == 0 {
		c.Providers.RateLimit.RefillPerSec = 5
	}
	if c.Analytics.QueueWorkers == 0 {
		c.Analytics.QueueWorkers = 2
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if c.Directory.DataPath == "" {
		return fmt.Errorf("directory.data_path is required")
	}
	if c.Resolver.Threshold < 0 || c.Resolver.Threshold > 100 {
		return fmt.Errorf("resolver.threshold must be within 0-100, got %d", c.Resolver.Threshold)
	}
	if c.Kafka.Enabled && len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("kafka.brokers cannot be empty when kafka is enabled")
	}
	if c.ClickHouse.Enabled && c.ClickHouse.Host == "" {
		return fmt.Errorf("clickhouse.host is required when clickhouse is enabled")
	}
	return nil
}
