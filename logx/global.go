package logx

import (
	"io"
	"os"
	"strconv"
	"strings"
)

var defaultLogger = New()

func init() {
	// Early output before the config layer loads still honors the environment.
	_ = Configure(Settings{
		Level:  os.Getenv("LOG_LEVEL"),
		Format: os.Getenv("LOG_FORMAT"),
		Color:  envBool("LOG_COLOR", true),
		Caller: envBool("LOG_CALLER", true),
	})
}

// Settings is the logging block of the application config (log.level,
// log.format, log.color, log.caller). Empty strings keep the current value.
type Settings struct {
	Level  string
	Format string
	Color  bool
	Caller bool
}

// Configure applies s to the default logger. An unknown level is reported
// and leaves the level untouched.
func Configure(s Settings) error {
	defaultLogger.SetColored(s.Color)
	defaultLogger.SetShowCaller(s.Caller)

	switch strings.ToLower(s.Format) {
	case "":
	case "json":
		defaultLogger.SetFormat(FormatJSON)
	default:
		defaultLogger.SetFormat(FormatConsole)
	}

	if s.Level == "" {
		return nil
	}
	level, err := ParseLevel(s.Level)
	if err != nil {
		return err
	}
	defaultLogger.SetLevel(level)
	return nil
}

func envBool(key string, def bool) bool {
	b, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return def
	}
	return b
}

func SetLevel(level Level) {
	defaultLogger.SetLevel(level)
}

// SetOutput redirects the default logger, mostly for tests.
func SetOutput(w io.Writer) {
	defaultLogger.SetOutput(w)
}

func GetLogger() *Logger {
	return defaultLogger
}

func Trace(msg string, args ...any) { defaultLogger.Trace(msg, args...) }
func Debug(msg string, args ...any) { defaultLogger.Debug(msg, args...) }
func Info(msg string, args ...any)  { defaultLogger.Info(msg, args...) }
func Warn(msg string, args ...any)  { defaultLogger.Warn(msg, args...) }
func Error(msg string, args ...any) { defaultLogger.Error(msg, args...) }
func Fatal(msg string, args ...any) { defaultLogger.Fatal(msg, args...) }

// DebugStruct logs a value at debug level
func DebugStruct(name string, value any) {
	defaultLogger.DebugStruct(name, value)
}
