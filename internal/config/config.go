package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Registry  RegistryConfig
	FMServing FMServingConfig
	Serving   ServingConfig
	Auth      AuthConfig
	Logger    LoggerConfig
}

type ServerConfig struct {
	Host string
	Port int
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	Name            string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode)
}

// RegistryConfig carries catalog defaults and the optional criteria
// profile path. An empty profile path means built-in thresholds.
type RegistryConfig struct {
	DefaultCatalog  string
	DefaultSchema   string
	CriteriaProfile string
	WatchCriteria   bool
}

// FMServingConfig points at the foundation-model chat endpoint used for
// article classification.
type FMServingConfig struct {
	Enabled   bool
	URL       string
	Model     string
	Timeout   time.Duration
	FeedURL   string
	MaxTokens int
}

// ServingConfig controls the Kubernetes champion-endpoint sync.
type ServingConfig struct {
	Enabled        bool
	InCluster      bool
	KubeConfigPath string
	Namespace      string
	EndpointName   string
}

type AuthConfig struct {
	Enabled bool
	Secret  string
}

type LoggerConfig struct {
	Level  string
	Format string
}

func Load() (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_PORT", 8080)

	v.SetDefault("DATABASE_HOST", "localhost")
	v.SetDefault("DATABASE_PORT", 5432)
	v.SetDefault("DATABASE_USER", "registry")
	v.SetDefault("DATABASE_PASSWORD", "registry")
	v.SetDefault("DATABASE_NAME", "news_registry")
	v.SetDefault("DATABASE_SSLMODE", "disable")
	v.SetDefault("DATABASE_MAX_OPEN_CONNS", 10)
	v.SetDefault("DATABASE_MAX_IDLE_CONNS", 2)
	v.SetDefault("DATABASE_CONN_MAX_LIFETIME", "30m")

	v.SetDefault("REGISTRY_CATALOG", "main")
	v.SetDefault("REGISTRY_SCHEMA", "news_classifier")
	v.SetDefault("REGISTRY_CRITERIA_PROFILE", "")
	v.SetDefault("REGISTRY_WATCH_CRITERIA", false)

	v.SetDefault("FMSERVING_ENABLED", false)
	v.SetDefault("FMSERVING_URL", "http://localhost:8090")
	v.SetDefault("FMSERVING_MODEL", "databricks-meta-llama-3-3-70b-instruct")
	v.SetDefault("FMSERVING_TIMEOUT", "30s")
	v.SetDefault("FMSERVING_FEED_URL", "")
	v.SetDefault("FMSERVING_MAX_TOKENS", 64)

	v.SetDefault("KUBE_ENABLED", false)
	v.SetDefault("KUBE_IN_CLUSTER", false)
	v.SetDefault("KUBE_CONFIG_PATH", "")
	v.SetDefault("KUBE_NAMESPACE", "model-serving")
	v.SetDefault("KUBE_ENDPOINT_NAME", "news-classifier")

	v.SetDefault("AUTH_ENABLED", false)
	v.SetDefault("AUTH_SECRET", "")

	v.SetDefault("LOGGER_LEVEL", "info")
	v.SetDefault("LOGGER_FORMAT", "json")

	// Env
	v.AutomaticEnv()

	connLifetime, err := time.ParseDuration(v.GetString("DATABASE_CONN_MAX_LIFETIME"))
	if err != nil {
		connLifetime = 30 * time.Minute
	}

	fmTimeout, err := time.ParseDuration(v.GetString("FMSERVING_TIMEOUT"))
	if err != nil {
		fmTimeout = 30 * time.Second
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: v.GetString("SERVER_HOST"),
			Port: v.GetInt("SERVER_PORT"),
		},
		Database: DatabaseConfig{
			Host:            v.GetString("DATABASE_HOST"),
			Port:            v.GetInt("DATABASE_PORT"),
			User:            v.GetString("DATABASE_USER"),
			Password:        v.GetString("DATABASE_PASSWORD"),
			Name:            v.GetString("DATABASE_NAME"),
			SSLMode:         v.GetString("DATABASE_SSLMODE"),
			MaxOpenConns:    v.GetInt("DATABASE_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DATABASE_MAX_IDLE_CONNS"),
			ConnMaxLifetime: connLifetime,
		},
		Registry: RegistryConfig{
			DefaultCatalog:  v.GetString("REGISTRY_CATALOG"),
			DefaultSchema:   v.GetString("REGISTRY_SCHEMA"),
			CriteriaProfile: v.GetString("REGISTRY_CRITERIA_PROFILE"),
			WatchCriteria:   v.GetBool("REGISTRY_WATCH_CRITERIA"),
		},
		FMServing: FMServingConfig{
			Enabled:   v.GetBool("FMSERVING_ENABLED"),
			URL:       v.GetString("FMSERVING_URL"),
			Model:     v.GetString("FMSERVING_MODEL"),
			Timeout:   fmTimeout,
			FeedURL:   v.GetString("FMSERVING_FEED_URL"),
			MaxTokens: v.GetInt("FMSERVING_MAX_TOKENS"),
		},
		Serving: ServingConfig{
			Enabled:        v.GetBool("KUBE_ENABLED"),
			InCluster:      v.GetBool("KUBE_IN_CLUSTER"),
			KubeConfigPath: v.GetString("KUBE_CONFIG_PATH"),
			Namespace:      v.GetString("KUBE_NAMESPACE"),
			EndpointName:   v.GetString("KUBE_ENDPOINT_NAME"),
		},
		Auth: AuthConfig{
			Enabled: v.GetBool("AUTH_ENABLED"),
			Secret:  v.GetString("AUTH_SECRET"),
		},
		Logger: LoggerConfig{
			Level:  v.GetString("LOGGER_LEVEL"),
			Format: v.GetString("LOGGER_FORMAT"),
		},
	}

	if cfg.Auth.Enabled && cfg.Auth.Secret == "" {
		return nil, fmt.Errorf("AUTH_SECRET is required when AUTH_ENABLED is set")
	}

	return cfg, nil
}
