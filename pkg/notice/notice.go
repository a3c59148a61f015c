// Package notice buffers user-facing messages while a full-screen program
// owns the terminal and prints them once it exits.
package notice

import (
	"fmt"
	"io"
	"sync"
)

// Buffer collects notices until Flush is called. Safe for concurrent use.
type Buffer struct {
	mu    sync.Mutex
	lines []string
}

// Addf records a formatted notice.
func (b *Buffer) Addf(format string, args ...any) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lines = append(b.lines, fmt.Sprintf(format, args...))
}

// Len returns the number of pending notices.
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.lines)
}

// Flush writes every pending notice to w, one per line, and clears the
// buffer.
func (b *Buffer) Flush(w io.Writer) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, line := range b.lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	b.lines = nil
	return nil
}
