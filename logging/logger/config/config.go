package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Config configuration struct
type Config struct {
	Level           int              `json:"level" yaml:"level"`
	Path            string           `json:"path" yaml:"path"`
	Format          string           `json:"format" yaml:"format"`
	Output          string           `json:"output" yaml:"output"`
	OutputFile      string           `json:"output_file" yaml:"output_file"`
	Name            string           `json:"name" yaml:"name"`
	Desensitization *Desensitization `json:"desensitization" yaml:"desensitization"`
}

// Default returns the configuration used when the logger section is absent.
func Default() *Config {
	return &Config{
		Level:           4, // info
		Format:          "text",
		Output:          "stderr",
		Desensitization: defaultDesensitization(),
	}
}

// GetConfig returns the logger configuration
func GetConfig(v *viper.Viper) *Config {
	if !v.IsSet("logger") {
		cfg := Default()
		cfg.Name = strings.ToLower(v.GetString("app_name"))
		return cfg
	}

	level := 4
	if v.IsSet("logger.level") {
		level = v.GetInt("logger.level")
	}

	return &Config{
		Level:           level,
		Format:          v.GetString("logger.format"),
		Path:            v.GetString("logger.path"),
		Output:          v.GetString("logger.output"),
		OutputFile:      v.GetString("logger.output_file"),
		Name:            strings.ToLower(v.GetString("app_name")),
		Desensitization: getDesensitizationConfigs(v),
	}
}
