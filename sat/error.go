package sat

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"
)

// ErrorContext selects how a RecordError renders.
type ErrorContext string

const (
	// ErrorContextTerminal renders with ANSI colors
	ErrorContextTerminal ErrorContext = "terminal"
	// ErrorContextPlain renders without ANSI codes (logs, JSON output)
	ErrorContextPlain ErrorContext = "plain"
)

// ErrorSeverity indicates how much a skipped record matters.
type ErrorSeverity string

const (
	SeverityError   ErrorSeverity = "error"
	SeverityWarning ErrorSeverity = "warning"
)

// ErrorKind categorizes record failures for programmatic handling
type ErrorKind string

const (
	ErrorKindSyntax  ErrorKind = "syntax"  // record head is not "-<index> <type>"
	ErrorKindExtract ErrorKind = "extract" // extractor rejected the fields
	ErrorKindPanic   ErrorKind = "panic"   // extractor panicked
)

// RecordError describes one record dropped at the dispatch boundary.
// Index is -1 when the record head could not be read.
type RecordError struct {
	Err        error         `json:"-"`
	Kind       ErrorKind     `json:"kind"`
	Severity   ErrorSeverity `json:"severity"`
	Message    string        `json:"message"`
	Index      int           `json:"index"`
	EntityType string        `json:"entity_type,omitempty"`
	Line       int           `json:"line,omitempty"`
	Preview    string        `json:"preview,omitempty"`
}

// NewRecordError creates a warning-severity RecordError.
func NewRecordError(kind ErrorKind, message string) *RecordError {
	return &RecordError{
		Kind:     kind,
		Severity: SeverityWarning,
		Message:  message,
		Index:    -1,
	}
}

func (e *RecordError) WithEntity(index int, entityType string) *RecordError {
	e.Index = index
	e.EntityType = entityType
	return e
}

func (e *RecordError) WithLine(line int) *RecordError {
	e.Line = line
	return e
}

// WithPreview stores the first n bytes of the record text, kept on a rune boundary.
func (e *RecordError) WithPreview(text string, n int) *RecordError {
	e.Preview = preview(text, n)
	return e
}

func (e *RecordError) WithSeverity(sev ErrorSeverity) *RecordError {
	e.Severity = sev
	return e
}

func (e *RecordError) WithUnderlying(err error) *RecordError {
	e.Err = err
	return e
}

// Error implements error interface
func (e *RecordError) Error() string {
	return e.FormatError(ErrorContextPlain)
}

// Unwrap for errors.Is/As compatibility
func (e *RecordError) Unwrap() error {
	return e.Err
}

// FormatError renders the error for the given context.
func (e *RecordError) FormatError(ctx ErrorContext) string {
	if ctx == ErrorContextTerminal {
		return e.formatTerminalError()
	}
	return e.formatPlainError()
}

func (e *RecordError) location() string {
	var parts []string
	if e.Index >= 0 {
		parts = append(parts, fmt.Sprintf("entity %d", e.Index))
	}
	if e.EntityType != "" {
		parts = append(parts, e.EntityType)
	}
	if e.Line > 0 {
		parts = append(parts, fmt.Sprintf("line %d", e.Line))
	}
	return strings.Join(parts, ", ")
}

func (e *RecordError) formatPlainError() string {
	msg := e.Message
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if loc := e.location(); loc != "" {
		msg += " (" + loc + ")"
	}
	return msg
}

func (e *RecordError) formatTerminalError() string {
	var base string
	switch e.Severity {
	case SeverityError:
		base = pterm.Red(e.Message)
	default:
		base = pterm.Yellow(e.Message)
	}
	if e.Err != nil {
		base += ": " + e.Err.Error()
	}
	if loc := e.location(); loc != "" {
		base += "\n  " + pterm.LightCyan("At:") + " " + loc
	}
	if e.Preview != "" {
		base += "\n  " + pterm.LightCyan("Record:") + " " + pterm.Gray(e.Preview)
	}
	return base
}

// preview truncates s to at most n bytes without splitting a rune and
// flattens newlines so the result fits on one log line.
func preview(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	if n <= 0 || len(s) <= n {
		return s
	}
	cut := n
	for cut > 0 && !isRuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}

func isRuneStart(b byte) bool {
	return b&0xC0 != 0x80
}
