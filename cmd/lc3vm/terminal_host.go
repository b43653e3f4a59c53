// terminal_host.go - puts the controlling terminal into raw mode for the
// duration of a run and restores it on exit. Grounded on the raw-mode
// lifecycle of the engine's own terminal host, adapted here to a
// synchronous reader instead of an asynchronous goroutine-fed device:
// this VM's fetch-execute loop is single-threaded and blocks directly on
// stdin at its own GETC/IN/KBSR-poll suspension points, so there is no
// separate reader goroutine to manage.

package main

import (
	"io"

	"golang.org/x/term"
)

// TerminalHost owns the terminal's raw-mode lifecycle. Only ever
// instantiated from main() for interactive runs; tests drive the VM
// directly against in-memory I/O and never touch this type.
type TerminalHost struct {
	fd       int
	oldState *term.State
}

// NewTerminalHost targets the given terminal file descriptor.
func NewTerminalHost(fd int) *TerminalHost {
	return &TerminalHost{fd: fd}
}

// Start disables canonical mode and echo so GETC/IN/KBSR polling see raw
// keystrokes one byte at a time instead of a line-buffered, echoed read.
func (h *TerminalHost) Start() error {
	state, err := term.MakeRaw(h.fd)
	if err != nil {
		return err
	}
	h.oldState = state
	return nil
}

// Stop restores whatever terminal mode was active before Start. Safe to
// call even if Start failed or was never called.
func (h *TerminalHost) Stop() {
	if h.oldState != nil {
		_ = term.Restore(h.fd, h.oldState)
		h.oldState = nil
	}
}

// StdinPort adapts a raw-mode stdin into the core's InputPort, translating
// the two keys raw mode would otherwise deliver unusably: Enter arrives as
// CR (not LF, since ICRNL is disabled), and Backspace arrives as DEL on
// modern terminals.
type StdinPort struct {
	r io.Reader
}

func NewStdinPort(r io.Reader) *StdinPort {
	return &StdinPort{r: r}
}

func (p *StdinPort) ReadByte() (byte, error) {
	var buf [1]byte
	if _, err := io.ReadFull(p.r, buf[:]); err != nil {
		return 0, err
	}

	b := buf[0]
	switch b {
	case '\r':
		b = '\n'
	case 0x7F:
		b = 0x08
	}
	return b, nil
}
