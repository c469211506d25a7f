// Package clipboard copies text to the user's system clipboard.
//
// Copying uses the OSC 52 terminal escape sequence, so it works over SSH and
// from inside full-screen programs as long as the terminal emulator honors
// it.
package clipboard

import (
	"io"
	"sync"

	"github.com/muesli/termenv"
)

// OSC52 writes clipboard escape sequences to a terminal.
type OSC52 struct {
	mu  sync.Mutex
	out *termenv.Output
}

// NewOSC52 returns a clipboard that writes to w, usually os.Stdout.
func NewOSC52(w io.Writer) *OSC52 {
	return &OSC52{out: termenv.NewOutput(w)}
}

// Copy sends text to the terminal clipboard.
func (c *OSC52) Copy(text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.out.Copy(text)
	return nil
}

// Func adapts a function to a clipboard.
type Func func(text string) error

// Copy calls f.
func (f Func) Copy(text string) error { return f(text) }
