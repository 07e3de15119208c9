package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration
type Config struct {
	Server     ServerConfig
	MongoDB    MongoDBConfig
	Redis      RedisConfig
	RateLimit  RateLimitConfig
	Static     StaticConfig
	Templates  TemplatesConfig
	ImageProxy ImageProxyConfig
}

type ServerConfig struct {
	Port            string
	Host            string
	Mode            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// MongoDBConfig describes the document store. Backend "memory" keeps notes
// and words in process and is meant for local development only.
type MongoDBConfig struct {
	Backend  string
	URI      string
	User     string
	Password string
	Database string
	Timeout  time.Duration
}

type RedisConfig struct {
	URI string
}

type RateLimitConfig struct {
	Backend string
	Times   int
	Window  time.Duration
}

type StaticConfig struct {
	Root    string
	Indexes []string
}

type TemplatesConfig struct {
	Dir string
}

type ImageProxyConfig struct {
	UserAgentFile string
	Timeout       time.Duration
	MaxBytes      int64
	AllowPrivate  bool
}

// Addr returns the listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Server.Host, c.Server.Port)
}

// LoadConfig loads configuration from environment variables and an optional .env file
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("SERVER_PORT", "8000")
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("GIN_MODE", "release")
	v.SetDefault("SERVER_SHUTDOWN_TIMEOUT", 10)
	v.SetDefault("STORE_BACKEND", "mongo")
	v.SetDefault("MONGO_URI", "mongodb://127.0.0.1:27017/")
	v.SetDefault("MONGO_DATABASE", "litey")
	v.SetDefault("MONGO_TIMEOUT", 10)
	v.SetDefault("REDIS_URI", "redis://127.0.0.1:6379/")
	v.SetDefault("RATE_LIMIT_BACKEND", "redis")
	v.SetDefault("RATE_LIMIT_TIMES", 1)
	v.SetDefault("RATE_LIMIT_WINDOW_SECONDS", 86400)
	v.SetDefault("STATIC_ROOT", "static")
	v.SetDefault("STATIC_INDEXES", "index.html,index.htm")
	v.SetDefault("TEMPLATES_DIR", "templates")
	v.SetDefault("USER_AGENT_FILE", "user_agent.txt")
	v.SetDefault("IMAGE_PROXY_TIMEOUT_SECONDS", 5)
	v.SetDefault("IMAGE_PROXY_MAX_BYTES", 10<<20)
	v.SetDefault("IMAGE_PROXY_ALLOW_PRIVATE", false)

	cfg := &Config{
		Server: ServerConfig{
			Port:            v.GetString("SERVER_PORT"),
			Host:            v.GetString("SERVER_HOST"),
			Mode:            v.GetString("GIN_MODE"),
			ReadTimeout:     30 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: time.Duration(v.GetInt("SERVER_SHUTDOWN_TIMEOUT")) * time.Second,
		},
		MongoDB: MongoDBConfig{
			Backend:  strings.ToLower(v.GetString("STORE_BACKEND")),
			URI:      v.GetString("MONGO_URI"),
			User:     v.GetString("MONGO_USER"),
			Password: v.GetString("MONGO_PASSWORD"),
			Database: v.GetString("MONGO_DATABASE"),
			Timeout:  time.Duration(v.GetInt("MONGO_TIMEOUT")) * time.Second,
		},
		Redis: RedisConfig{
			URI: v.GetString("REDIS_URI"),
		},
		RateLimit: RateLimitConfig{
			Backend: strings.ToLower(v.GetString("RATE_LIMIT_BACKEND")),
			Times:   v.GetInt("RATE_LIMIT_TIMES"),
			Window:  time.Duration(v.GetInt("RATE_LIMIT_WINDOW_SECONDS")) * time.Second,
		},
		Static: StaticConfig{
			Root:    v.GetString("STATIC_ROOT"),
			Indexes: splitList(v.GetString("STATIC_INDEXES")),
		},
		Templates: TemplatesConfig{
			Dir: v.GetString("TEMPLATES_DIR"),
		},
		ImageProxy: ImageProxyConfig{
			UserAgentFile: v.GetString("USER_AGENT_FILE"),
			Timeout:       time.Duration(v.GetInt("IMAGE_PROXY_TIMEOUT_SECONDS")) * time.Second,
			MaxBytes:      v.GetInt64("IMAGE_PROXY_MAX_BYTES"),
			AllowPrivate:  v.GetBool("IMAGE_PROXY_ALLOW_PRIVATE"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.MongoDB.Backend {
	case "mongo":
		if c.MongoDB.URI == "" {
			return fmt.Errorf("MONGO_URI is required when STORE_BACKEND=mongo")
		}
	case "memory":
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", c.MongoDB.Backend)
	}
	switch c.RateLimit.Backend {
	case "redis":
		if c.Redis.URI == "" {
			return fmt.Errorf("REDIS_URI is required when RATE_LIMIT_BACKEND=redis")
		}
	case "memory":
	default:
		return fmt.Errorf("unknown RATE_LIMIT_BACKEND %q", c.RateLimit.Backend)
	}
	if c.RateLimit.Times <= 0 {
		return fmt.Errorf("RATE_LIMIT_TIMES must be positive, got %d", c.RateLimit.Times)
	}
	if c.RateLimit.Window <= 0 {
		return fmt.Errorf("RATE_LIMIT_WINDOW_SECONDS must be positive")
	}
	if c.ImageProxy.Timeout <= 0 {
		c.ImageProxy.Timeout = 5 * time.Second
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
