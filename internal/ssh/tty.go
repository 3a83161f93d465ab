// Package ssh lets a tcell screen run over a gliderlabs/ssh session.
package ssh

import (
	"sync"

	"github.com/gdamore/tcell/v2"
	gossh "github.com/gliderlabs/ssh"
)

// Size reported until the client sends a usable window.
const (
	fallbackWidth  = 80
	fallbackHeight = 24
)

// SessionTty implements tcell.Tty backed by a gliderlabs/ssh session.
// Each connected SSH client gets its own SessionTty and tcell.Screen.
type SessionTty struct {
	session gossh.Session
	winCh   <-chan gossh.Window

	mu       sync.Mutex
	window   gossh.Window
	cb       func()
	watching bool
	done     chan struct{}
	stopOnce sync.Once
}

// NewSessionTty wraps a gliderlabs SSH session as a tcell Tty.
// pty holds the initial window size; winCh delivers subsequent resize events.
func NewSessionTty(s gossh.Session, pty gossh.Pty, winCh <-chan gossh.Window) *SessionTty {
	return &SessionTty{
		session: s,
		window:  pty.Window,
		winCh:   winCh,
		done:    make(chan struct{}),
	}
}

// Read reads raw bytes from the SSH session's stdin (keyboard input).
func (t *SessionTty) Read(b []byte) (int, error) { return t.session.Read(b) }

// Write writes rendered output to the SSH session's stdout.
func (t *SessionTty) Write(b []byte) (int, error) { return t.session.Write(b) }

// Close stops resize tracking and closes the SSH session channel.
func (t *SessionTty) Close() error {
	t.stop()
	return t.session.Close()
}

// Start is a no-op; the SSH channel is already open.
func (t *SessionTty) Start() error { return nil }

// Stop ends resize tracking. The session stays open for its handler.
func (t *SessionTty) Stop() error {
	t.stop()
	return nil
}

// Drain is a no-op; SSH flushes writes immediately.
func (t *SessionTty) Drain() error { return nil }

func (t *SessionTty) stop() { t.stopOnce.Do(func() { close(t.done) }) }

// WindowSize returns the current terminal dimensions.
func (t *SessionTty) WindowSize() (tcell.WindowSize, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	w, h := t.window.Width, t.window.Height
	if w <= 0 || h <= 0 {
		w, h = fallbackWidth, fallbackHeight
	}
	return tcell.WindowSize{Width: w, Height: h}, nil
}

// NotifyResize registers a callback invoked on every window resize event.
// The first call starts draining the window-change channel until the tty
// is stopped or the channel closes.
func (t *SessionTty) NotifyResize(cb func()) {
	t.mu.Lock()
	t.cb = cb
	start := !t.watching && t.winCh != nil
	t.watching = true
	t.mu.Unlock()

	if start {
		go t.watch()
	}
}

func (t *SessionTty) watch() {
	for {
		select {
		case <-t.done:
			return
		case win, ok := <-t.winCh:
			if !ok {
				return
			}
			t.mu.Lock()
			t.window = win
			cb := t.cb
			t.mu.Unlock()
			if cb != nil {
				cb()
			}
		}
	}
}
