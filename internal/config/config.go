// Package config loads settings from flags, PRESUPUESTO_* environment
// variables and an optional YAML file.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/SergeyParamoshkin/presupuesto/internal/store"
)

const EnvPrefix = "PRESUPUESTO"

// Keys shared by flags, env and file.
const (
	KeyRedisHost      = "redis.host"
	KeyRedisPort      = "redis.port"
	KeyRedisDB        = "redis.db"
	KeyRedisPassword  = "redis.password"
	KeyRedisKeyPrefix = "redis.key_prefix"
	KeyMemory         = "memory"
	KeyHTTPAddr       = "http.addr"
	KeyHTTPDiagAddr   = "http.diag_addr"
	KeyLogLevel       = "log.level"
	KeyLogOutput      = "log.output"
)

type Config struct {
	Redis  Redis `mapstructure:"redis"`
	Memory bool  `mapstructure:"memory"`
	HTTP   HTTP  `mapstructure:"http"`
	Log    Log   `mapstructure:"log"`
}

type Redis struct {
	Host      string `mapstructure:"host"`
	Port      int    `mapstructure:"port"`
	DB        int    `mapstructure:"db"`
	Password  string `mapstructure:"password"`
	KeyPrefix string `mapstructure:"key_prefix"`
}

type HTTP struct {
	Addr     string `mapstructure:"addr"`
	DiagAddr string `mapstructure:"diag_addr"`
}

type Log struct {
	// Level is empty unless configured; commands pick their own default.
	Level  string `mapstructure:"level"`
	Output string `mapstructure:"output"`
}

func (r Redis) Store() store.RedisConfig {
	return store.RedisConfig{
		Host:      r.Host,
		Port:      r.Port,
		DB:        r.DB,
		Password:  r.Password,
		KeyPrefix: r.KeyPrefix,
	}
}

// LevelOr returns the configured level or def.
func (l Log) LevelOr(def string) string {
	if l.Level == "" {
		return def
	}

	return l.Level
}

// SetDefaults registers defaults and environment bindings on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyRedisHost, "localhost")
	v.SetDefault(KeyRedisPort, 6379)
	v.SetDefault(KeyRedisDB, 0)
	v.SetDefault(KeyRedisPassword, "")
	v.SetDefault(KeyRedisKeyPrefix, "")
	v.SetDefault(KeyMemory, false)
	v.SetDefault(KeyHTTPAddr, ":3333")
	v.SetDefault(KeyHTTPDiagAddr, ":9999")
	v.SetDefault(KeyLogLevel, "")
	v.SetDefault(KeyLogOutput, "stderr")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// ReadFile reads path, or ~/.presupuesto.yaml when path is empty. A missing
// default file is not an error.
func ReadFile(v *viper.Viper, path, home string) error {
	if path != "" {
		v.SetConfigFile(path)

		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config %s: %w", path, err)
		}

		return nil
	}

	if home == "" {
		return nil
	}

	v.AddConfigPath(home)
	v.SetConfigType("yaml")
	v.SetConfigName(".presupuesto")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil
		}

		return fmt.Errorf("read config: %w", err)
	}

	return nil
}

func Load(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	if cfg.Redis.Port <= 0 || cfg.Redis.Port > 65535 {
		return Config{}, fmt.Errorf("redis port %d out of range", cfg.Redis.Port)
	}
	if cfg.Redis.DB < 0 {
		return Config{}, fmt.Errorf("redis db %d is negative", cfg.Redis.DB)
	}

	return cfg, nil
}
