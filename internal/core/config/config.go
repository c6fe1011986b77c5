package config

import (
	"log"
	"os"
	"strings"

	"github.com/spf13/viper"
)

type HTTP struct {
	Host            string
	Port            int
	ReadTimeoutSec  int
	WriteTimeoutSec int
	IdleTimeoutSec  int
}

type AdminHTTP struct {
	Host string
	Port int
}

type App struct {
	Name  string
	Env   string
	HTTP  HTTP
	Admin AdminHTTP
}

type Log struct {
	Level string
	JSON  bool
}

type JWT struct {
	Secret            string
	Issuer            string
	AccessTokenTTLMin int
}

type CORS struct {
	// Origin allow-list for browser clients (the SPA dev server by default).
	AllowOrigins []string `mapstructure:"allow_origins"`
}

type Redis struct {
	Addr           string `mapstructure:"addr"`
	Password       string `mapstructure:"password"`
	DB             int    `mapstructure:"db"`
	FeaturedTTLSec int    `mapstructure:"featured_ttl_sec"`
}

type Limits struct {
	RateRPS      int   `mapstructure:"rate_rps"`
	RateBurst    int   `mapstructure:"rate_burst"`
	MaxInFlight  int64 `mapstructure:"max_in_flight"`
	MaxBodyBytes int64 `mapstructure:"max_body_bytes"`
	TimeoutSec   int   `mapstructure:"timeout_sec"`
}

type DB struct {
	Driver             string
	DSN                string
	Username           string
	Password           string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeMin int
	AutoMigrate        bool
	LogLevel           string
}

type Config struct {
	App    App
	Log    Log
	JWT    JWT
	CORS   CORS `mapstructure:"cors"`
	DB     DB
	Redis  Redis  `mapstructure:"redis"`
	Limits Limits `mapstructure:"limits"`
}

func Load(path string) *Config {
	v := viper.New()
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
		if path == "" {
			path = "./configs/config.local.yaml"
		}
	}
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("APP")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("jwt.accesstokenttlmin", 24*60)
	v.SetDefault("redis.featured_ttl_sec", 300)
	v.SetDefault("limits.rate_rps", 200)
	v.SetDefault("limits.rate_burst", 400)
	v.SetDefault("limits.max_in_flight", 300)
	v.SetDefault("limits.max_body_bytes", 16<<20)
	v.SetDefault("limits.timeout_sec", 10)

	if err := v.ReadInConfig(); err != nil {
		log.Fatalf("read config: %v", err)
	}
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		log.Fatalf("unmarshal config: %v", err)
	}
	if len(c.CORS.AllowOrigins) == 0 {
		c.CORS.AllowOrigins = []string{"http://localhost:5173"}
	}
	return &c
}
