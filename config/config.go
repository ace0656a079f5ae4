package config

import (
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App        AppConfig
	Log        LogConfig
	DB         DBConfig
	Redis      RedisConfig
	Scheduling SchedulingConfig
}

type AppConfig struct {
	Port string
	Env  string
}

type LogConfig struct {
	Level string
}

type DBConfig struct {
	Driver       string
	Host         string
	Port         string
	User         string
	Password     string
	Name         string
	SQLitePath   string
	AutoMigrate  bool
	MaxOpenConns int
	MaxIdleConns int
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     string
	Password string
	DB       int
}

// SchedulingConfig tunes the per-doctor lock taken while follow-up
// appointments are created.
type SchedulingConfig struct {
	LockTTL  time.Duration
	LockWait time.Duration
}

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// LoadConfig reads path (usually ".env") when it exists and overlays the
// process environment on top of it.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DB_DRIVER", DriverPostgres)
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_SQLITE_PATH", "hospital.db")
	v.SetDefault("DB_AUTO_MIGRATE", true)
	v.SetDefault("DB_MAX_OPEN_CONNS", 100)
	v.SetDefault("DB_MAX_IDLE_CONNS", 10)
	v.SetDefault("REDIS_ENABLED", false)
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("SCHEDULING_LOCK_TTL", "30s")
	v.SetDefault("SCHEDULING_LOCK_WAIT", "5s")

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			v.SetConfigType("env")
			if err := v.ReadInConfig(); err != nil {
				return nil, err
			}
		}
	}

	lockTTL, err := time.ParseDuration(v.GetString("SCHEDULING_LOCK_TTL"))
	if err != nil {
		lockTTL = 30 * time.Second
	}

	lockWait, err := time.ParseDuration(v.GetString("SCHEDULING_LOCK_WAIT"))
	if err != nil {
		lockWait = 5 * time.Second
	}

	config := &Config{
		App: AppConfig{
			Port: v.GetString("APP_PORT"),
			Env:  v.GetString("APP_ENV"),
		},
		Log: LogConfig{
			Level: v.GetString("LOG_LEVEL"),
		},
		DB: DBConfig{
			Driver:       v.GetString("DB_DRIVER"),
			Host:         v.GetString("DB_HOST"),
			Port:         v.GetString("DB_PORT"),
			User:         v.GetString("DB_USER"),
			Password:     v.GetString("DB_PASSWORD"),
			Name:         v.GetString("DB_NAME"),
			SQLitePath:   v.GetString("DB_SQLITE_PATH"),
			AutoMigrate:  v.GetBool("DB_AUTO_MIGRATE"),
			MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
		},
		Redis: RedisConfig{
			Enabled:  v.GetBool("REDIS_ENABLED"),
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetString("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		Scheduling: SchedulingConfig{
			LockTTL:  lockTTL,
			LockWait: lockWait,
		},
	}

	return config, nil
}

func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}
