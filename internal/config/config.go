package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Mode       string        `mapstructure:"mode"`
	Port       int           `mapstructure:"port"`
	StaticPath string        `mapstructure:"static_path"`
	ReadLimit  int64         `mapstructure:"read_limit"`
	PingPeriod time.Duration `mapstructure:"ping_period"`

	MongoURI string `mapstructure:"mongo_uri"`
	MongoDB  string `mapstructure:"mongo_db"`

	Secret     string        `mapstructure:"secret"`
	AccessTTL  time.Duration `mapstructure:"access_ttl"`
	RefreshTTL time.Duration `mapstructure:"refresh_ttl"`

	// StoreTimeout bounds per-message membership lookups so a slow store
	// cannot stall a send handler forever.
	StoreTimeout time.Duration `mapstructure:"store_timeout"`

	// Whitelist holds the origins allowed by CORS and the websocket upgrader.
	Whitelist []string `mapstructure:"whitelist"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	env := os.Getenv("CONFIG_ENV")
	if env == "" {
		env = "dev"
	}
	fileName := fmt.Sprintf("config/config.%s.yaml", env)

	v.SetConfigFile(fileName)
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetDefault("mode", "release")
	v.SetDefault("port", 3500)
	v.SetDefault("static_path", "./public")
	v.SetDefault("read_limit", 32768)
	v.SetDefault("ping_period", "54s")
	v.SetDefault("mongo_uri", "mongodb://127.0.0.1:27017")
	v.SetDefault("mongo_db", "pixelpals")
	v.SetDefault("access_ttl", "24h")
	v.SetDefault("refresh_ttl", "24h")
	v.SetDefault("store_timeout", "3s")
	v.SetDefault("whitelist", []string{
		"http://127.0.0.1:5173",
		"http://127.0.0.1:3500",
		"http://localhost:5173",
	})

	if err := v.ReadInConfig(); err != nil {
		fmt.Printf("⚠️ Config file not found (%s), using defaults\n", fileName)
	} else {
		fmt.Printf("✅ Loaded config: %s\n", fileName)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.Secret == "" {
		cfg.Secret = os.Getenv("ACCESS_TOKEN_SECRET")
	}
	fmt.Printf("🧩 Mode: %s | Port: %d | Mongo: %s/%s\n", cfg.Mode, cfg.Port, cfg.MongoURI, cfg.MongoDB)
	return &cfg, nil
}

// AllowedOrigin reports whether origin may talk to us. An empty origin is
// allowed, matching the original CORS whitelist behavior for same-host tools.
func (c *Config) AllowedOrigin(origin string) bool {
	if origin == "" {
		return true
	}
	for _, o := range c.Whitelist {
		if o == origin {
			return true
		}
	}
	return false
}
