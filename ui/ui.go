package ui

import (
	"encoding/json"
	"io"
)

// Severity classifies the visual weight of a piece of inline text.
type Severity uint8

const (
	SeverityInfo     Severity = iota // plain
	SeveritySuccess                  // green
	SeverityWarn                     // yellow
	SeverityError                    // red
	SeverityCritical                 // bold
)

// StyledText pairs a plain string with a Severity. It marshals to JSON as
// the plain text only.
type StyledText struct {
	Text     string
	Severity Severity
}

func (s StyledText) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Text)
}

func (s StyledText) MarshalYAML() (any, error) {
	return s.Text, nil
}

// UI is where every command writes its results.
//
// Production code uses TerminalUI. Tests use RecordingUI, which captures
// every call so assertions don't depend on colours or terminal width.
//
// Use [UI.Indent] to get a child UI one level deeper, e.g. for the records
// listed under a name in `profile`. The child shares the parent's writer.
type UI interface {
	// Style returns the text coloured according to its Severity. Plain
	// text comes back when colours are off.
	//
	//	u.Info("owner: %s", u.Style(ownerText))
	Style(t StyledText) string

	Info(format string, args ...any)
	Success(format string, args ...any)
	Warn(format string, args ...any)
	// Error does not exit; the caller decides what happens next.
	Error(format string, args ...any)
	Critical(format string, args ...any)

	// Section writes a separator centred around title.
	Section(title string)

	// KeyValue renders label/value rows with the values aligned.
	KeyValue(rows [][2]string)

	// Table renders a bordered table. A nil header skips the header row.
	Table(headers []string, rows [][]string)

	// Spinner shows msg while work is in flight and returns the function
	// that clears it.
	//
	//	stop := u.Spinner("resolving alice.eth")
	//	defer stop()
	Spinner(msg string) func()

	Indent() UI

	// Writer is the raw output, indented at the current level. Machine
	// readable output (json, yaml) goes through it.
	Writer() io.Writer
}
