package errors

import (
	"fmt"
	"io"
	"strings"
	"testing"
)

func TestCodegenErrorLevels(t *testing.T) {
	fatal := New(G0001, "f", "variable 'y' is not bound")
	if fatal.Level != LevelError {
		t.Errorf("G0001 should be an error, got %s", fatal.Level)
	}
	warn := New(G0100, "f", "unhandled operation 'lt'")
	if warn.Level != LevelWarning {
		t.Errorf("G0100 should be a warning, got %s", warn.Level)
	}
	if got := fatal.Error(); got != "error[G0001]: variable 'y' is not bound (in f)" {
		t.Errorf("Error(): got %q", got)
	}
}

func TestWrapAndCodeOf(t *testing.T) {
	err := Wrap(G0002, "failed to write assembly output", io.ErrShortWrite)
	wrapped := fmt.Errorf("generate: %w", err)

	if CodeOf(wrapped) != G0002 {
		t.Errorf("CodeOf: got %q, want G0002", CodeOf(wrapped))
	}
	if CodeOf(io.EOF) != "" {
		t.Error("plain errors should have no code")
	}
	if err.Unwrap() != io.ErrShortWrite {
		t.Error("Unwrap should return the underlying error")
	}
}

func TestFormatterPlain(t *testing.T) {
	f := &Formatter{ShowNotes: true}
	err := New(G0001, "f", "variable 'y' is not bound in function 'f'").
		WithNote("the front end should reject references to undeclared names")

	out := f.Format(err)
	want := []string{
		"error[G0001]: variable 'y' is not bound in function 'f'",
		" --> function f",
		" = note: the front end should reject references to undeclared names",
	}
	for _, line := range want {
		if !strings.Contains(out, line) {
			t.Errorf("output missing %q:\n%s", line, out)
		}
	}
}

func TestFormatterColors(t *testing.T) {
	f := &Formatter{Colors: true}
	out := f.Format(New(G0100, "", "unhandled operation 'lt'"))
	if !strings.Contains(out, "\033[1;33m") {
		t.Errorf("warnings should be yellow: %q", out)
	}
	if Strip(out) != "warning[G0100]: unhandled operation 'lt'\n" {
		t.Errorf("Strip: got %q", Strip(out))
	}
}
