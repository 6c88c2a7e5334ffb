package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	logcfg "github.com/teamops/dashboard/logging/logger/config"
)

var (
	config *Config
	path   string
	mu     sync.Mutex
	v      *viper.Viper
)

// Config represents the configuration implementation.
type Config struct {
	AppName  string
	RunMode  string
	Host     string
	Port     int
	API      *API
	Realtime *Realtime
	Session  *Session
	Cache    *Cache
	PDF      *PDF
	Redis    *Redis
	Auth     *Auth
	Logger   *logcfg.Config
	Observes *Observes
	Viper    *viper.Viper
}

// Addr returns host:port for the HTTP listener.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// IsRelease reports whether the service runs in release mode.
func (c *Config) IsRelease() bool {
	return c.RunMode == "release" || c.RunMode == "production"
}

// GetConfig returns the configuration loaded last, loading defaults if needed.
func GetConfig() (*Config, error) {
	mu.Lock()
	cfg := config
	mu.Unlock()
	if cfg != nil {
		return cfg, nil
	}
	return LoadConfig("")
}

// LoadConfig loads the configuration from the file.
// An empty path searches the usual locations and tolerates a missing file.
func LoadConfig(configPath string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	nv := viper.New()
	setDefaults(nv)
	bindEnv(nv)

	if configPath != "" {
		nv.SetConfigFile(configPath)
	} else {
		nv.SetConfigName("config")
		nv.SetConfigType("yaml")
		nv.AddConfigPath("/etc/teamops")
		nv.AddConfigPath("$HOME/.teamops")
		nv.AddConfigPath(".")
		if ex, err := os.Executable(); err == nil {
			nv.AddConfigPath(filepath.Dir(ex))
		}
	}

	if err := nv.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := fromViper(nv)

	mu.Lock()
	config = cfg
	path = configPath
	v = nv
	mu.Unlock()

	return cfg, nil
}

func fromViper(v *viper.Viper) *Config {
	return &Config{
		AppName:  v.GetString("app_name"),
		RunMode:  v.GetString("run_mode"),
		Host:     v.GetString("server.host"),
		Port:     v.GetInt("server.port"),
		API:      getAPIConfig(v),
		Realtime: getRealtimeConfig(v),
		Session:  getSessionConfig(v),
		Cache:    getCacheConfig(v),
		PDF:      getPDFConfig(v),
		Redis:    getRedisConfig(v),
		Auth:     getAuth(v),
		Logger:   logcfg.GetConfig(v),
		Observes: getObservesConfig(v),
		Viper:    v,
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app_name", "teamops")
	v.SetDefault("run_mode", "debug")
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 3000)
	v.SetDefault("api.base_url", "http://localhost:3001/api")
	v.SetDefault("realtime.url", "http://localhost:3001")
	v.SetDefault("realtime.namespace", "/notifications")
	v.SetDefault("session.store", "file")
}

func bindEnv(v *viper.Viper) {
	v.SetEnvPrefix("TEAMOPS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("api.base_url", "TEAMOPS_API_BASE_URL", "TEAMOPS_API_URL", "NEXT_PUBLIC_API_URL")
	_ = v.BindEnv("realtime.url", "TEAMOPS_REALTIME_URL", "URL_IO")
	_ = v.BindEnv("run_mode", "TEAMOPS_RUN_MODE", "NODE_ENV")
}

// Reload reloads the configuration from the file.
func Reload() (*Config, error) {
	mu.Lock()
	p := path
	mu.Unlock()

	newConfig, err := LoadConfig(p)
	if err != nil {
		return nil, fmt.Errorf("failed to reload config: %w", err)
	}
	return newConfig, nil
}

// Watch watches the configuration file and reloads it when it changes.
func Watch(callback func(*Config)) {
	mu.Lock()
	wv := v
	mu.Unlock()
	if wv == nil || wv.ConfigFileUsed() == "" {
		return
	}

	wv.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		cfg := fromViper(wv)
		mu.Lock()
		config = cfg
		mu.Unlock()
		callback(cfg)
	})
	wv.WatchConfig()
}
