package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/fx"
)

const (
	DefaultMongoURI  = "mongodb://localhost:27017/myntra_clone"
	DefaultDatabase  = "myntra_clone"
	DefaultPort      = 5000
	DefaultBodyLimit = 2 << 20
)

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

type DBConfig struct {
	URI string `mapstructure:"uri"`
	// Name is used when the URI carries no database path.
	Name           string        `mapstructure:"name"`
	ConnectTimeout time.Duration `mapstructure:"connect_timeout"`
	SlowThreshold  time.Duration `mapstructure:"slow_threshold"`
	// QueryMode is one of strict, throw or off.
	QueryMode      string        `mapstructure:"query_mode"`
	AutoIndex      bool          `mapstructure:"auto_index"`
}

type AuthConfig struct {
	JWTSecret  string        `mapstructure:"jwt_secret"`
	TokenTTL   time.Duration `mapstructure:"token_ttl"`
	CookieName string        `mapstructure:"cookie_name"`
}

type Env string

const (
	EnvDev  Env = "dev"
	EnvProd Env = "prod"
)

type Config struct {
	Env       Env          `mapstructure:"env"`
	Server    ServerConfig `mapstructure:"server"`
	Database  DBConfig     `mapstructure:"database"`
	Auth      AuthConfig   `mapstructure:"auth"`
	ClientURL string       `mapstructure:"client_url"`
	// UploadsDir backs the /uploads static prefix. A relative path is
	// resolved against the config file directory, or the working directory
	// when no file was read.
	UploadsDir  string `mapstructure:"uploads_dir"`
	BodyLimit   int64  `mapstructure:"body_limit"`
	MetricsAddr string `mapstructure:"metrics_addr"`
}

func (c *Config) IsProd() bool {
	return c != nil && c.Env == EnvProd
}

// LoadDotEnv populates the process environment from a dotenv file.
// A missing file is not an error; variables already set are kept.
func LoadDotEnv(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

func New() (*Config, error) {
	v := viper.New()
	// Allow overriding config file via env:
	// - APP_CONFIG_FILE: absolute or relative file path (e.g., /etc/app/prod.yaml)
	// - APP_CONFIG_NAME: config base name without extension (default: "config")
	if file := os.Getenv("APP_CONFIG_FILE"); file != "" {
		v.SetConfigFile(file)
	} else {
		cfgName := os.Getenv("APP_CONFIG_NAME")
		if cfgName == "" {
			cfgName = "config"
		}
		v.SetConfigName(cfgName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}
	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Plain variables shared with the rest of the deployment.
	_ = v.BindEnv("client_url", "CLIENT_URL")
	_ = v.BindEnv("database.uri", "MONGO_URI")
	_ = v.BindEnv("server.port", "PORT")

	// Defaults
	v.SetDefault("env", "dev")
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", DefaultPort)
	v.SetDefault("client_url", "")
	v.SetDefault("database.uri", DefaultMongoURI)
	v.SetDefault("database.name", DefaultDatabase)
	v.SetDefault("database.connect_timeout", 10*time.Second)
	v.SetDefault("database.slow_threshold", 500*time.Millisecond)
	v.SetDefault("database.query_mode", "strict")
	v.SetDefault("database.auto_index", true)
	v.SetDefault("auth.jwt_secret", "change-me")
	v.SetDefault("auth.token_ttl", 7*24*time.Hour)
	v.SetDefault("auth.cookie_name", "token")
	v.SetDefault("uploads_dir", "uploads")
	v.SetDefault("body_limit", DefaultBodyLimit)
	v.SetDefault("metrics_addr", ":9090")

	base := "."
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	} else {
		base = filepath.Dir(v.ConfigFileUsed())
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	uploads, err := resolveDir(base, c.UploadsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve uploads_dir: %w", err)
	}
	c.UploadsDir = uploads
	return &c, nil
}

func resolveDir(base, dir string) (string, error) {
	if filepath.IsAbs(dir) {
		return filepath.Clean(dir), nil
	}
	return filepath.Abs(filepath.Join(base, dir))
}

var Module = fx.Options(
	fx.Provide(New),
)
