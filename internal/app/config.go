package app

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	dbpkg "github.com/mthstanley/stockpot/internal/data/db"
	"github.com/mthstanley/stockpot/internal/platform/envutil"
	"github.com/mthstanley/stockpot/internal/platform/logger"
)

const DefaultShutdownTimeout = 10 * time.Second

// Duration reads "10s"-style strings or bare integer seconds from YAML.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	raw := strings.TrimSpace(node.Value)
	if raw == "" {
		return nil
	}
	if secs, err := strconv.Atoi(raw); err == nil {
		*d = Duration(time.Duration(secs) * time.Second)
		return nil
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) Std() time.Duration { return time.Duration(d) }

type Config struct {
	Addr           string       `yaml:"addr"`
	DB             dbpkg.Config `yaml:"db"`
	JWTTokenSecret string       `yaml:"jwt_token_secret"`
	BcryptCost     int          `yaml:"bcrypt_cost"`

	LogMode        string   `yaml:"log_mode"`
	Environment    string   `yaml:"environment"`
	Version        string   `yaml:"version"`
	AllowedOrigins []string `yaml:"allowed_origins"`

	MetricsAddr string `yaml:"metrics_addr"`
	RedisAddr   string `yaml:"redis_addr"`

	ShutdownTimeout Duration `yaml:"shutdown_timeout"`
}

// LoadConfig resolves every setting from the environment, falling back to
// local development defaults.
func LoadConfig(log *logger.Logger) Config {
	origins := []string{}
	for _, o := range strings.Split(envutil.String("CORS_ALLOWED_ORIGINS", "", log), ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return Config{
		Addr: envutil.String("ADDR", "127.0.0.1:8080", log),
		DB: dbpkg.Config{
			Driver:   envutil.String("DB_DRIVER", dbpkg.DriverPostgres, log),
			Host:     envutil.String("DB_HOST", "localhost", log),
			Port:     envutil.Int("DB_PORT", 5432, log),
			Username: envutil.String("DB_USERNAME", "postgres", log),
			Password: envutil.String("DB_PASSWORD", "postgres", log),
			Database: envutil.String("DB_DATABASE", "stockpot", log),
		},
		JWTTokenSecret:  envutil.String("JWT_TOKEN_SECRET", "secret", log),
		BcryptCost:      envutil.Int("BCRYPT_COST", 0, log),
		LogMode:         envutil.String("LOG_MODE", "development", log),
		Environment:     envutil.String("ENVIRONMENT", "development", log),
		Version:         envutil.String("VERSION", "dev", log),
		AllowedOrigins:  origins,
		MetricsAddr:     envutil.String("METRICS_ADDR", ":9090", log),
		RedisAddr:       envutil.String("REDIS_ADDR", "", log),
		ShutdownTimeout: Duration(time.Duration(envutil.Int("SHUTDOWN_TIMEOUT_SECONDS", int(DefaultShutdownTimeout/time.Second), log)) * time.Second),
	}
}

// LoadConfigFile overlays the YAML file at path onto base. Keys absent from
// the file keep their base value.
func LoadConfigFile(path string, base Config) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return base, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := base
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return base, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) shutdownTimeout() time.Duration {
	if c.ShutdownTimeout <= 0 {
		return DefaultShutdownTimeout
	}
	return c.ShutdownTimeout.Std()
}
