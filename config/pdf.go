package config

import (
	"time"

	"github.com/spf13/viper"
)

// PDF rendering settings
type PDF struct {
	Workers   int
	QueueSize int
	Timeout   time.Duration
	Author    string
	MaxBody   int64
}

func getPDFConfig(v *viper.Viper) *PDF {
	return &PDF{
		Workers:   getIntOrDefault(v, "pdf.workers", 4),
		QueueSize: getIntOrDefault(v, "pdf.queue_size", 64),
		Timeout:   getDurationOrDefault(v, "pdf.timeout", 30*time.Second),
		Author:    getStringOrDefault(v, "pdf.author", "Team Ops Dashboard"),
		MaxBody:   int64(getIntOrDefault(v, "pdf.max_body", 8<<20)),
	}
}
