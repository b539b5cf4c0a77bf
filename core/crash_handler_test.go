package core

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

type fakeTerminal struct{ finis int }

func (f *fakeTerminal) Fini() { f.finis++ }

func captureCrash(t *testing.T) (*bytes.Buffer, chan int) {
	t.Helper()
	var out bytes.Buffer
	codes := make(chan int, 1)
	stderr, exit = &out, func(code int) { codes <- code }
	t.Cleanup(func() {
		stderr, exit = os.Stderr, os.Exit
		RegisterTerminal(nil)
	})
	return &out, codes
}

// TestHandleCrashRestoresTerminal verifies the screen is finalized once before exit
func TestHandleCrashRestoresTerminal(t *testing.T) {
	out, codes := captureCrash(t)
	term := &fakeTerminal{}
	RegisterTerminal(term)

	HandleCrash("boom")

	if code := <-codes; code != 1 {
		t.Errorf("expected exit code 1, got %d", code)
	}
	if term.finis != 1 {
		t.Errorf("expected one Fini call, got %d", term.finis)
	}
	if !strings.Contains(out.String(), "CRASH DETECTED: boom") {
		t.Errorf("missing crash banner in %q", out.String())
	}
	if !strings.Contains(out.String(), "Stack Trace:") {
		t.Error("missing stack trace")
	}
}

// TestHandleCrashNil verifies a nil recover value is ignored
func TestHandleCrashNil(t *testing.T) {
	out, codes := captureCrash(t)
	term := &fakeTerminal{}
	RegisterTerminal(term)

	HandleCrash(nil)

	select {
	case code := <-codes:
		t.Fatalf("unexpected exit %d", code)
	default:
	}
	if term.finis != 0 || out.Len() != 0 {
		t.Error("nil crash should have no effect")
	}
}

// TestGoRecovers verifies panics in goroutines reach HandleCrash
func TestGoRecovers(t *testing.T) {
	_, codes := captureCrash(t)

	Go(func() { panic("worker") })

	if code := <-codes; code != 1 {
		t.Errorf("expected exit code 1, got %d", code)
	}
}
