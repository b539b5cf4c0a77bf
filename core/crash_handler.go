// Package core holds process-level helpers for the terminal host
package core

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"sync"
)

// Finisher restores the terminal, tcell.Screen satisfies it
type Finisher interface {
	Fini()
}

var (
	crashMu       sync.Mutex
	crashTerminal Finisher

	// Swapped by tests
	exit             = os.Exit
	stderr io.Writer = os.Stderr
)

// RegisterTerminal sets the screen restored by HandleCrash, nil clears it
func RegisterTerminal(t Finisher) {
	crashMu.Lock()
	crashTerminal = t
	crashMu.Unlock()
}

// HandleCrash restores the terminal, prints r with a stack trace and exits
// Use as: defer func() { core.HandleCrash(recover()) }()
func HandleCrash(r any) {
	if r == nil {
		return
	}

	crashMu.Lock()
	t := crashTerminal
	crashTerminal = nil
	crashMu.Unlock()
	if t != nil {
		t.Fini()
	}

	// \r\n survives a terminal still in raw mode
	fmt.Fprintf(stderr, "\r\n\x1b[31mCRASH DETECTED: %v\x1b[0m\r\n", r)
	fmt.Fprintf(stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
	exit(1)
}

// Go runs fn in a new goroutine with panic recovery
// Use instead of the go keyword so a crash off the main goroutine still restores the terminal
func Go(fn func()) {
	go func() {
		defer func() {
			HandleCrash(recover())
		}()
		fn()
	}()
}
