package logger

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/teamops/dashboard/logging/logger/config"
)

// Key constants
const (
	VersionKey = "version"
	AppKey     = "app"
)

// Logger represents logger instance
type Logger struct {
	*logrus.Logger
	mu      sync.Mutex
	version string
	name    string
	logFile *os.File
	logPath string
	stop    chan struct{}
}

var (
	// stdLogger is the global logger
	stdLogger *Logger
	// once ensures that the logger is initialized only once
	once sync.Once
)

// StdLogger returns the single logger instance
func StdLogger() *Logger {
	once.Do(func() {
		stdLogger = &Logger{
			Logger: logrus.New(),
		}
		stdLogger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
		stdLogger.SetOutput(os.Stderr)
	})
	return stdLogger
}

// SetVersion sets the version for logging
func (l *Logger) SetVersion(v string) {
	l.version = v
}

// Init initializes the logger with the given configuration
func (l *Logger) Init(c *config.Config) (func(), error) {
	if c == nil {
		c = config.Default()
	}

	l.SetLevel(logrus.Level(c.Level))
	l.name = c.Name

	switch c.Format {
	case "json":
		l.SetFormatter(&logrus.JSONFormatter{})
	default:
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	switch c.Output {
	case "stdout":
		l.SetOutput(os.Stdout)
	case "file":
		l.logPath = c.OutputFile
		if l.logPath == "" && c.Path != "" {
			l.logPath = filepath.Join(c.Path, "teamops.log")
		}
		if l.logPath != "" {
			if err := l.setupLogFile(); err != nil {
				return nil, err
			}
			l.stop = make(chan struct{})
			go l.periodicLogRotation(l.stop)
		}
	default:
		l.SetOutput(os.Stderr)
	}

	if c.Desensitization != nil && c.Desensitization.Enabled {
		l.AddHook(&desensitizeHook{d: NewDesensitizer(c.Desensitization)})
	}

	return func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		if l.stop != nil {
			close(l.stop)
			l.stop = nil
		}
		if l.logFile != nil {
			_ = l.logFile.Close()
			l.logFile = nil
		}
	}, nil
}

// setupLogFile sets up the log file
func (l *Logger) setupLogFile() error {
	if err := os.MkdirAll(filepath.Dir(l.logPath), 0o755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}
	return l.rotateLog()
}

// rotateLog opens the log file for the current day
func (l *Logger) rotateLog() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.logFile != nil {
		if err := l.logFile.Close(); err != nil {
			return fmt.Errorf("failed to close current log file: %w", err)
		}
	}

	logFilePath := fmt.Sprintf("%s.%s.log", strings.TrimSuffix(l.logPath, ".log"), time.Now().Format("2006-01-02"))
	f, err := os.OpenFile(logFilePath, os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open new log file: %w", err)
	}

	l.logFile = f
	l.Logger.SetOutput(f)
	return nil
}

// periodicLogRotation rotates the log every 24 hours
func (l *Logger) periodicLogRotation(stop <-chan struct{}) {
	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if err := l.rotateLog(); err != nil {
				l.Logger.Errorf("Error rotating log: %v", err)
			}
		}
	}
}

// entryFromContext creates a new log entry with fields from context
func (l *Logger) entryFromContext(ctx context.Context) *logrus.Entry {
	fields := logrus.Fields{}

	if traceID := getTraceID(ctx); traceID != "" {
		fields[traceKey] = traceID
	}
	if l.version != "" {
		fields[VersionKey] = l.version
	}
	if l.name != "" {
		fields[AppKey] = l.name
	}

	return l.WithFields(fields)
}

// fieldsFromKeyvals turns alternating key/value arguments into logrus fields.
func fieldsFromKeyvals(keyvals []any) logrus.Fields {
	fields := make(logrus.Fields, len(keyvals)/2)
	for i := 0; i < len(keyvals); i += 2 {
		key, ok := keyvals[i].(string)
		if !ok {
			key = fmt.Sprint(keyvals[i])
		}
		if i+1 >= len(keyvals) {
			fields["!BADKEY"] = key
			break
		}
		val := keyvals[i+1]
		if err, isErr := val.(error); isErr && err != nil {
			val = err.Error()
		}
		fields[key] = val
	}
	return fields
}

func (l *Logger) log(ctx context.Context, level logrus.Level, msg string, keyvals ...any) {
	if !l.IsLevelEnabled(level) {
		return
	}
	entry := l.entryFromContext(ctx)
	if len(keyvals) > 0 {
		entry = entry.WithFields(fieldsFromKeyvals(keyvals))
	}
	entry.Log(level, msg)
}

func (l *Logger) logf(ctx context.Context, level logrus.Level, format string, args ...any) {
	l.entryFromContext(ctx).Logf(level, format, args...)
}

// Trace logs a trace message
func (l *Logger) Trace(ctx context.Context, msg string, keyvals ...any) {
	l.log(ctx, logrus.TraceLevel, msg, keyvals...)
}

// Debug logs a debug message
func (l *Logger) Debug(ctx context.Context, msg string, keyvals ...any) {
	l.log(ctx, logrus.DebugLevel, msg, keyvals...)
}

// Info logs an info message
func (l *Logger) Info(ctx context.Context, msg string, keyvals ...any) {
	l.log(ctx, logrus.InfoLevel, msg, keyvals...)
}

// Warn logs a warn message
func (l *Logger) Warn(ctx context.Context, msg string, keyvals ...any) {
	l.log(ctx, logrus.WarnLevel, msg, keyvals...)
}

// Error logs an error message
func (l *Logger) Error(ctx context.Context, msg string, keyvals ...any) {
	l.log(ctx, logrus.ErrorLevel, msg, keyvals...)
}

// Fatal logs a fatal message
func (l *Logger) Fatal(ctx context.Context, msg string, keyvals ...any) {
	l.log(ctx, logrus.FatalLevel, msg, keyvals...)
}

// Debugf logs a debug message with format
func (l *Logger) Debugf(ctx context.Context, format string, args ...any) {
	l.logf(ctx, logrus.DebugLevel, format, args...)
}

// Infof logs an info message with format
func (l *Logger) Infof(ctx context.Context, format string, args ...any) {
	l.logf(ctx, logrus.InfoLevel, format, args...)
}

// Warnf logs a warn message with format
func (l *Logger) Warnf(ctx context.Context, format string, args ...any) {
	l.logf(ctx, logrus.WarnLevel, format, args...)
}

// Errorf logs an error message with format
func (l *Logger) Errorf(ctx context.Context, format string, args ...any) {
	l.logf(ctx, logrus.ErrorLevel, format, args...)
}

// SetOutput sets the output destination for the logger
func (l *Logger) SetOutput(out io.Writer) {
	l.Logger.SetOutput(out)
}

// AddHook adds a hook to the logger
func (l *Logger) AddHook(hook logrus.Hook) {
	if !l.hookExists(hook) {
		l.Logger.AddHook(hook)
	}
}

// hookExists checks if an equivalent hook already exists
func (l *Logger) hookExists(hook logrus.Hook) bool {
	_, isDesensitizer := hook.(*desensitizeHook)
	for _, h := range l.Hooks {
		for _, existingHook := range h {
			if existingHook == hook {
				return true
			}
			if _, ok := existingHook.(*desensitizeHook); ok && isDesensitizer {
				return true
			}
		}
	}
	return false
}

// SetVersion sets the version for logging
func SetVersion(v string) { StdLogger().SetVersion(v) }

// New initializes the standard logger
func New(c *config.Config) (func(), error) { return StdLogger().Init(c) }

// WithFields returns an entry with the given fields
func WithFields(ctx context.Context, fields logrus.Fields) *logrus.Entry {
	return StdLogger().entryFromContext(ctx).WithFields(fields)
}

// Debug logs debug message
func Debug(ctx context.Context, msg string, keyvals ...any) { StdLogger().Debug(ctx, msg, keyvals...) }

// Info logs info message
func Info(ctx context.Context, msg string, keyvals ...any) { StdLogger().Info(ctx, msg, keyvals...) }

// Warn logs warn message
func Warn(ctx context.Context, msg string, keyvals ...any) { StdLogger().Warn(ctx, msg, keyvals...) }

// Error logs error message
func Error(ctx context.Context, msg string, keyvals ...any) { StdLogger().Error(ctx, msg, keyvals...) }

// Fatal logs fatal message
func Fatal(ctx context.Context, msg string, keyvals ...any) { StdLogger().Fatal(ctx, msg, keyvals...) }

// Debugf logs debug message with format
func Debugf(ctx context.Context, format string, args ...any) {
	StdLogger().Debugf(ctx, format, args...)
}

// Infof logs info message with format
func Infof(ctx context.Context, format string, args ...any) {
	StdLogger().Infof(ctx, format, args...)
}

// Warnf logs warn message with format
func Warnf(ctx context.Context, format string, args ...any) {
	StdLogger().Warnf(ctx, format, args...)
}

// Errorf logs error message with format
func Errorf(ctx context.Context, format string, args ...any) {
	StdLogger().Errorf(ctx, format, args...)
}

// SetOutput sets the output destination for the logger
func SetOutput(out io.Writer) { StdLogger().SetOutput(out) }

// AddHook adds a hook to the logger
func AddHook(hook logrus.Hook) { StdLogger().AddHook(hook) }
