package config

import (
	"time"

	"github.com/spf13/viper"
)

// Realtime notification socket settings
type Realtime struct {
	URL                  string
	Namespace            string
	ReconnectionDelay    time.Duration
	ReconnectionAttempts int
	AckTimeout           time.Duration
}

func getRealtimeConfig(v *viper.Viper) *Realtime {
	return &Realtime{
		URL:                  getStringOrDefault(v, "realtime.url", "http://localhost:3001"),
		Namespace:            getStringOrDefault(v, "realtime.namespace", "/notifications"),
		ReconnectionDelay:    getDurationOrDefault(v, "realtime.reconnection_delay", time.Second),
		ReconnectionAttempts: getIntOrDefault(v, "realtime.reconnection_attempts", 5),
		AckTimeout:           getDurationOrDefault(v, "realtime.ack_timeout", 10*time.Second),
	}
}
