// Package debug provides an opt-in, component-filterable trace
// logger shared across the CPU, memory fabric, rasterizer, input and
// host UI.
package debug

import (
	"fmt"
	"time"
)

// LogLevel is the severity of a log entry.
type LogLevel int

const (
	LogLevelNone LogLevel = iota
	LogLevelError
	LogLevelWarning
	LogLevelInfo
	LogLevelDebug
	LogLevelTrace
)

func (l LogLevel) String() string {
	switch l {
	case LogLevelNone:
		return "NONE"
	case LogLevelError:
		return "ERROR"
	case LogLevelWarning:
		return "WARNING"
	case LogLevelInfo:
		return "INFO"
	case LogLevelDebug:
		return "DEBUG"
	case LogLevelTrace:
		return "TRACE"
	default:
		return "UNKNOWN"
	}
}

// Component identifies which subsystem produced a log entry.
type Component string

const (
	ComponentCPU        Component = "CPU"
	ComponentMemory     Component = "Memory"
	ComponentRasterizer Component = "Rasterizer"
	ComponentInput      Component = "Input"
	ComponentUI         Component = "UI"
	ComponentSystem     Component = "System"
)

// LogEntry is a single recorded trace event.
type LogEntry struct {
	Timestamp time.Time
	Component Component
	Level     LogLevel
	Message   string
	Data      map[string]interface{}
}

// Format renders the entry as a single human-readable line.
func (e *LogEntry) Format() string {
	timestamp := e.Timestamp.Format("15:04:05.000")
	return fmt.Sprintf("[%s] [%s] %s: %s", timestamp, e.Component, e.Level, e.Message)
}
