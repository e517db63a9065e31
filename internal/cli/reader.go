package cli

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
)

// ErrInputCancelled is returned when input is canceled by context.
var ErrInputCancelled = errors.New("input canceled")

type lineResult struct {
	err  error
	line string
}

// NonBlockingReader reads lines from a reader that may block forever, such as
// a terminal, while letting a context abandon the wait.
//
// At most one read runs at a time. A read abandoned by cancellation keeps
// going, and its line is handed to the next ReadLine instead of being lost.
type NonBlockingReader struct {
	reader  *bufio.Reader
	pending chan lineResult
	mu      sync.Mutex
}

// NewNonBlockingReader wraps reader. It panics on a nil reader.
func NewNonBlockingReader(reader io.Reader) *NonBlockingReader {
	if reader == nil {
		panic("reader cannot be nil")
	}
	return &NonBlockingReader{reader: bufio.NewReader(reader)}
}

// ReadLine returns the next line with surrounding whitespace trimmed. A final
// line without a newline is still returned; after it comes io.EOF.
func (r *NonBlockingReader) ReadLine(ctx context.Context) (string, error) {
	if ctx.Err() != nil {
		return "", ErrInputCancelled
	}

	select {
	case <-ctx.Done():
		return "", ErrInputCancelled
	case res := <-r.read():
		r.mu.Lock()
		r.pending = nil
		r.mu.Unlock()

		if res.err != nil && !(errors.Is(res.err, io.EOF) && res.line != "") {
			return "", res.err
		}
		return strings.TrimSpace(res.line), nil
	}
}

// read returns the channel of the outstanding read, starting one if needed.
func (r *NonBlockingReader) read() <-chan lineResult {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.pending == nil {
		ch := make(chan lineResult, 1)
		r.pending = ch
		go func() {
			line, err := r.reader.ReadString('\n')
			ch <- lineResult{line: line, err: err}
		}()
	}
	return r.pending
}
