package config

import (
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	JWT      JWTConfig      `yaml:"jwt"`
	Sweeper  SweeperConfig  `yaml:"sweeper"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
	Mode string `yaml:"mode"` // debug, release, test
}

type DatabaseConfig struct {
	Driver string `yaml:"driver"` // sqlite, mysql, postgres
	DSN    string `yaml:"dsn"`
}

type JWTConfig struct {
	Secret     string `yaml:"secret"`
	ExpireHour int    `yaml:"expire_hour"`
}

// SweeperConfig controls the expiration reconciliation job.
//
// Timezone is the IANA location in which "midnight" and day-level date
// truncation are evaluated. Date comparisons against membership end dates
// strip the time of day in this location, so a membership stays valid
// through the whole of its final calendar day there.
type SweeperConfig struct {
	Timezone         string `yaml:"timezone"`
	Schedule         string `yaml:"schedule"` // cron expression, minute granularity
	ExpiryNoticeDays int    `yaml:"expiry_notice_days"`
	RunOnStart       bool   `yaml:"run_on_start"`
}

var GlobalConfig *Config

func Load(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = "config.yaml"
	}

	var cfg *Config

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		cfg = DefaultConfig()
	} else {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, err
		}

		var fileCfg Config
		if err := yaml.Unmarshal(data, &fileCfg); err != nil {
			return nil, err
		}
		cfg = &fileCfg
	}

	cfg.applyDefaults()
	cfg.overrideFromEnv()
	GlobalConfig = cfg
	return cfg, nil
}

func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: "8080",
			Mode: "debug",
		},
		Database: DatabaseConfig{
			Driver: "sqlite",
			DSN:    "gymgate.db",
		},
		JWT: JWTConfig{
			Secret:     "gymgate-secret-key-change-in-production",
			ExpireHour: 24,
		},
		Sweeper: SweeperConfig{
			Timezone:         "UTC",
			Schedule:         "0 0 * * *",
			ExpiryNoticeDays: 5,
			RunOnStart:       true,
		},
	}
}

// applyDefaults fills zero values left by a partial config file.
func (c *Config) applyDefaults() {
	def := DefaultConfig()
	if c.Server.Port == "" {
		c.Server.Port = def.Server.Port
	}
	if c.Server.Mode == "" {
		c.Server.Mode = def.Server.Mode
	}
	if c.Database.Driver == "" {
		c.Database.Driver = def.Database.Driver
	}
	if c.Database.DSN == "" {
		c.Database.DSN = def.Database.DSN
	}
	if c.JWT.Secret == "" {
		c.JWT.Secret = def.JWT.Secret
	}
	if c.JWT.ExpireHour == 0 {
		c.JWT.ExpireHour = def.JWT.ExpireHour
	}
	if c.Sweeper.Timezone == "" {
		c.Sweeper.Timezone = def.Sweeper.Timezone
	}
	if c.Sweeper.Schedule == "" {
		c.Sweeper.Schedule = def.Sweeper.Schedule
	}
	if c.Sweeper.ExpiryNoticeDays == 0 {
		c.Sweeper.ExpiryNoticeDays = def.Sweeper.ExpiryNoticeDays
	}
}

func (c *Config) overrideFromEnv() {
	if host := os.Getenv("SERVER_HOST"); host != "" {
		c.Server.Host = host
	}
	if port := os.Getenv("SERVER_PORT"); port != "" {
		c.Server.Port = port
	}
	if mode := os.Getenv("SERVER_MODE"); mode != "" {
		c.Server.Mode = mode
	}
	if driver := os.Getenv("DB_DRIVER"); driver != "" {
		c.Database.Driver = driver
	}
	if dsn := os.Getenv("DB_DSN"); dsn != "" {
		c.Database.DSN = dsn
	}
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		c.JWT.Secret = secret
	}
	if tz := os.Getenv("SWEEPER_TIMEZONE"); tz != "" {
		c.Sweeper.Timezone = tz
	}
	if schedule := os.Getenv("SWEEPER_SCHEDULE"); schedule != "" {
		c.Sweeper.Schedule = schedule
	}
	if days := os.Getenv("SWEEPER_EXPIRY_NOTICE_DAYS"); days != "" {
		if n, err := strconv.Atoi(days); err == nil && n > 0 {
			c.Sweeper.ExpiryNoticeDays = n
		}
	}
	if runOnStart := os.Getenv("SWEEPER_RUN_ON_START"); runOnStart != "" {
		c.Sweeper.RunOnStart = runOnStart == "true"
	}
}

func (c *Config) Save(configPath string) error {
	if configPath == "" {
		configPath = "config.yaml"
	}

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0644)
}
