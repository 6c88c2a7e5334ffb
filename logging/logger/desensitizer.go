package logger

import (
	"regexp"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/teamops/dashboard/logging/logger/config"
)

// Values that look like credentials regardless of the field they sit in.
var defaultValuePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)bearer\s+[A-Za-z0-9\-_.=]+`),
	regexp.MustCompile(`\beyJ[A-Za-z0-9\-_]+\.[A-Za-z0-9\-_]+\.[A-Za-z0-9\-_]*`), // JWT
}

// Desensitizer masks sensitive data in log fields
type Desensitizer struct {
	config   *config.Desensitization
	patterns []*regexp.Regexp
	mask     string
}

// NewDesensitizer creates a new desensitizer instance
func NewDesensitizer(cfg *config.Desensitization) *Desensitizer {
	d := &Desensitizer{
		config:   cfg,
		patterns: append([]*regexp.Regexp{}, defaultValuePatterns...),
		mask:     strings.Repeat(cfg.MaskChar, cfg.FixedMaskLength),
	}
	for _, pattern := range cfg.CustomPatterns {
		if regex, err := regexp.Compile(pattern); err == nil {
			d.patterns = append(d.patterns, regex)
		}
	}
	return d
}

// DesensitizeFields returns a copy of fields with sensitive values masked
func (d *Desensitizer) DesensitizeFields(fields logrus.Fields) logrus.Fields {
	if !d.config.Enabled {
		return fields
	}
	result := make(logrus.Fields, len(fields))
	for key, value := range fields {
		result[key] = d.desensitizeValue(key, value, 0)
	}
	return result
}

func (d *Desensitizer) desensitizeValue(key string, value any, depth int) any {
	if value == nil || depth > 8 {
		return value
	}
	if d.isSensitiveField(key) {
		if s, ok := value.(string); ok && s == "" {
			return s
		}
		return d.mask
	}

	switch v := value.(type) {
	case string:
		return d.desensitizeString(v)
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, item := range v {
			out[k] = d.desensitizeValue(k, item, depth+1)
		}
		return out
	case map[string]string:
		out := make(map[string]string, len(v))
		for k, item := range v {
			if d.isSensitiveField(k) && item != "" {
				out[k] = d.mask
				continue
			}
			out[k] = d.desensitizeString(item)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = d.desensitizeValue("", item, depth+1)
		}
		return out
	case error:
		return d.desensitizeString(v.Error())
	default:
		return value
	}
}

// isSensitiveField reports whether the field name contains a sensitive keyword
func (d *Desensitizer) isSensitiveField(fieldName string) bool {
	if fieldName == "" {
		return false
	}
	lowerName := strings.ToLower(fieldName)
	for _, sensitiveField := range d.config.SensitiveFields {
		if strings.Contains(lowerName, strings.ToLower(sensitiveField)) {
			return true
		}
	}
	return false
}

func (d *Desensitizer) desensitizeString(str string) string {
	if str == "" {
		return str
	}
	for _, pattern := range d.patterns {
		str = pattern.ReplaceAllString(str, d.mask)
	}
	return str
}

// desensitizeHook applies the desensitizer to every entry before it is written
type desensitizeHook struct {
	d *Desensitizer
}

func (h *desensitizeHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (h *desensitizeHook) Fire(entry *logrus.Entry) error {
	entry.Data = h.d.DesensitizeFields(entry.Data)
	entry.Message = h.d.desensitizeString(entry.Message)
	return nil
}
