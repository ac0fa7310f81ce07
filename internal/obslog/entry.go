package obslog

import (
	"fmt"
	"time"
)

// Level represents the severity of a log entry.
type Level int

const (
	LevelNone Level = iota
	LevelError
	LevelWarning
	LevelInfo
	LevelDebug
	LevelTrace
)

// String returns the string representation of a level.
func (l Level) String() string {
	switch l {
	case LevelNone:
		return "NONE"
	case LevelError:
		return "ERROR"
	case LevelWarning:
		return "WARNING"
	case LevelInfo:
		return "INFO"
	case LevelDebug:
		return "DEBUG"
	case LevelTrace:
		return "TRACE"
	default:
		return "UNKNOWN"
	}
}

// Component identifies the subsystem that produced a log entry.
type Component string

const (
	ComponentScan     Component = "Scan"
	ComponentDebounce Component = "Debounce"
	ComponentLayout   Component = "Layout"
	ComponentLink     Component = "Link"
	ComponentHID      Component = "HID"
	ComponentUI       Component = "UI"
	ComponentSystem   Component = "System"
)

// Entry is a single host-side diagnostic record.
//
// This is distinct from eventlog.Record: Entry is for the developer
// console/visualizer, Record is the §4.7 firmware ring a debug probe reads.
type Entry struct {
	Timestamp time.Time
	Component Component
	Level     Level
	Message   string
	Data      map[string]interface{}
}

// Format renders the entry as a single log line.
func (e *Entry) Format() string {
	timestamp := e.Timestamp.Format("15:04:05.000")
	return fmt.Sprintf("[%s] [%s] %s: %s", timestamp, e.Component, e.Level, e.Message)
}
