package runner

import (
	"io"
	"os"

	"golang.org/x/term"
)

// keyInterrupt is the byte a raw-mode terminal delivers for Ctrl+C. Raw mode
// disables signal generation, so the runner treats it like "q".
const keyInterrupt = 0x03

// RawMode puts the terminal into raw mode so single key presses arrive
// without waiting for Enter. The returned restore function must run before
// the process exits, or the shell is left unusable.
func RawMode(f *os.File) (restore func(), err error) {
	state, err := term.MakeRaw(int(f.Fd()))
	if err != nil {
		return nil, err
	}
	return func() { _ = term.Restore(int(f.Fd()), state) }, nil
}

// ReadKeys pumps single-byte key presses from r into a channel. The channel
// closes when r reaches EOF or fails; the pump goroutine lives as long as
// the reader does.
func ReadKeys(r io.Reader) <-chan rune {
	keys := make(chan rune, 8)
	go func() {
		defer close(keys)
		buf := make([]byte, 1)
		for {
			n, err := r.Read(buf)
			if n > 0 {
				keys <- rune(buf[0])
			}
			if err != nil {
				return
			}
		}
	}()
	return keys
}
