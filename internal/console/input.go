package console

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
)

// ErrCancelled is returned when input ends or the context is cancelled mid-entry.
var ErrCancelled = errors.New("operation cancelled")

type line struct {
	text string
	err  error
}

// lineReader hands out input lines one at a time while letting a caller give up
// waiting when its context is cancelled.
type lineReader struct {
	lines    chan line
	done     chan struct{}
	finished chan struct{}
	stopOnce sync.Once
}

func newLineReader(r io.Reader) *lineReader {
	lr := &lineReader{
		lines:    make(chan line),
		done:     make(chan struct{}),
		finished: make(chan struct{}),
	}
	go func() {
		defer close(lr.finished)
		defer close(lr.lines)

		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			if !lr.send(line{text: scanner.Text()}) {
				return
			}
		}
		err := scanner.Err()
		if err == nil {
			err = io.EOF
		}
		lr.send(line{err: err})
	}()
	return lr
}

// send delivers l unless the reader has been stopped.
func (lr *lineReader) send(l line) bool {
	select {
	case lr.lines <- l:
		return true
	case <-lr.done:
		return false
	}
}

// stop releases the scanning goroutine once nobody will read from it again.
// A goroutine blocked inside the underlying Read exits after that Read returns.
func (lr *lineReader) stop() {
	lr.stopOnce.Do(func() { close(lr.done) })
}

func (lr *lineReader) readLine(ctx context.Context) (string, error) {
	select {
	case <-ctx.Done():
		return "", ErrCancelled
	case l, ok := <-lr.lines:
		if !ok {
			return "", io.EOF
		}
		if l.err != nil {
			return "", l.err
		}
		return strings.TrimRight(l.text, "\r"), nil
	}
}
