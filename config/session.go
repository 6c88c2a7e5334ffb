package config

import (
	"time"

	"github.com/spf13/viper"
)

// Session token storage settings
type Session struct {
	Store     string // memory | file | redis
	Path      string
	KeyPrefix string
}

func getSessionConfig(v *viper.Viper) *Session {
	return &Session{
		Store:     getStringOrDefault(v, "session.store", "file"),
		Path:      expandHome(getStringOrDefault(v, "session.path", "~/.teamops/session.json")),
		KeyPrefix: getStringOrDefault(v, "session.key_prefix", "teamops:session:"),
	}
}

// Cache query cache settings
type Cache struct {
	Backend    string // memory | redis
	KeyPrefix  string
	StaleTime  time.Duration
	RetryDelay time.Duration
}

func getCacheConfig(v *viper.Viper) *Cache {
	return &Cache{
		Backend:    getStringOrDefault(v, "cache.backend", "memory"),
		KeyPrefix:  getStringOrDefault(v, "cache.key_prefix", "teamops:query:"),
		StaleTime:  getDurationOrDefault(v, "cache.stale_time", 5*time.Minute),
		RetryDelay: getDurationOrDefault(v, "cache.retry_delay", time.Second),
	}
}

// Redis connection settings shared by the session store and the query cache
type Redis struct {
	Addr         string
	Username     string
	Password     string
	DB           int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	DialTimeout  time.Duration
}

// Enabled reports whether a Redis address is configured
func (r *Redis) Enabled() bool {
	return r != nil && r.Addr != ""
}

func getRedisConfig(v *viper.Viper) *Redis {
	return &Redis{
		Addr:         v.GetString("data.redis.addr"),
		Username:     v.GetString("data.redis.username"),
		Password:     v.GetString("data.redis.password"),
		DB:           v.GetInt("data.redis.db"),
		ReadTimeout:  getDurationOrDefault(v, "data.redis.read_timeout", 3*time.Second),
		WriteTimeout: getDurationOrDefault(v, "data.redis.write_timeout", 3*time.Second),
		DialTimeout:  getDurationOrDefault(v, "data.redis.dial_timeout", 5*time.Second),
	}
}
