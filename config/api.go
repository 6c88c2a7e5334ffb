package config

import (
	"time"

	"github.com/spf13/viper"
)

// API describes the upstream REST API the dashboard consumes
type API struct {
	BaseURL string
	Timeout time.Duration
	Breaker *Breaker
}

// Breaker circuit breaker settings for outbound API calls
type Breaker struct {
	MaxRequests  uint32
	Interval     time.Duration
	Timeout      time.Duration
	MinRequests  uint32
	FailureRatio float64
}

func getAPIConfig(v *viper.Viper) *API {
	return &API{
		BaseURL: getStringOrDefault(v, "api.base_url", "http://localhost:3001/api"),
		Timeout: getDurationOrDefault(v, "api.timeout", 30*time.Second),
		Breaker: &Breaker{
			MaxRequests:  uint32(getIntOrDefault(v, "api.breaker.max_requests", 100)),
			Interval:     getDurationOrDefault(v, "api.breaker.interval", 5*time.Second),
			Timeout:      getDurationOrDefault(v, "api.breaker.timeout", 3*time.Second),
			MinRequests:  uint32(getIntOrDefault(v, "api.breaker.min_requests", 3)),
			FailureRatio: getFloat64OrDefault(v, "api.breaker.failure_ratio", 0.6),
		},
	}
}
