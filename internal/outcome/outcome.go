// Package outcome carries the severity-leveled results a scoring run can end
// with. An Outcome separates the user-readable message from the internal
// cause, which is logged but never serialized.
package outcome

// Level orders outcome severities the way logging levels do.
type Level int

const (
	LevelInfo Level = iota
	LevelWarning
	LevelError
	LevelCritical
)

// Status returns the wire status string for the level.
func (l Level) Status() string {
	switch l {
	case LevelInfo:
		return "info"
	case LevelWarning:
		return "warning"
	case LevelError:
		return "error"
	case LevelCritical:
		return "critical"
	}
	return "unknown"
}

// Outcome is an error with a severity and a message safe to show to clients.
type Outcome struct {
	Level   Level
	Message string
	cause   error
}

func (o *Outcome) Error() string {
	return o.Message
}

// Unwrap exposes the internal cause for logging and errors.Is/As chains.
func (o *Outcome) Unwrap() error {
	return o.cause
}

// Info marks transient, expected results: still processing, isolated article.
func Info(message string) *Outcome {
	return &Outcome{Level: LevelInfo, Message: message}
}

// Warning marks bad input or unscoreable content.
func Warning(message string) *Outcome {
	return &Outcome{Level: LevelWarning, Message: message}
}

// Error marks unexpected internal failures; cause stays internal.
func Error(message string, cause error) *Outcome {
	return &Outcome{Level: LevelError, Message: message, cause: cause}
}

// Critical marks infrastructure-level failures such as storage being down.
func Critical(message string, cause error) *Outcome {
	return &Outcome{Level: LevelCritical, Message: message, cause: cause}
}
