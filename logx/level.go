package logx

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// Level represents the severity level of a log message
type Level int

const (
	TraceLevel Level = iota
	DebugLevel
	InfoLevel
	WarnLevel
	ErrorLevel
	OffLevel
)

// String returns the string representation of the level
func (l Level) String() string {
	switch l {
	case TraceLevel:
		return "TRACE"
	case DebugLevel:
		return "DEBUG"
	case InfoLevel:
		return "INFO"
	case WarnLevel:
		return "WARN"
	case ErrorLevel:
		return "ERROR"
	case OffLevel:
		return "OFF"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel parses a string into a Level
func ParseLevel(s string) (Level, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "TRACE":
		return TraceLevel, nil
	case "DEBUG":
		return DebugLevel, nil
	case "INFO":
		return InfoLevel, nil
	case "WARN", "WARNING":
		return WarnLevel, nil
	case "ERROR":
		return ErrorLevel, nil
	case "OFF":
		return OffLevel, nil
	default:
		return InfoLevel, fmt.Errorf("invalid log level: %s", s)
	}
}

// attribute maps a level to its console color
func (l Level) attribute() color.Attribute {
	switch l {
	case TraceLevel:
		return color.FgHiBlack
	case DebugLevel:
		return color.FgCyan
	case InfoLevel:
		return color.FgGreen
	case WarnLevel:
		return color.FgYellow
	case ErrorLevel:
		return color.FgRed
	default:
		return color.Reset
	}
}

// Colorize wraps s in the level's ANSI color, regardless of whether the
// output is a terminal.
func (l Level) Colorize(s string) string {
	c := color.New(l.attribute())
	c.EnableColor()
	return c.Sprint(s)
}
