package cli

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
)

// ErrInputCancelled is returned when a prompt is abandoned before an answer arrives.
var ErrInputCancelled = errors.New("input canceled")

type answer struct {
	err  error
	text string
}

// AnswerReader hands input lines to prompts one at a time. A single goroutine
// scans the input, so a line that arrives after a prompt was cancelled is
// kept for the next prompt instead of being lost.
type AnswerReader struct {
	scanner *bufio.Scanner
	answers chan answer
	once    sync.Once
}

// NewAnswerReader creates a reader over r. Scanning starts with the first ReadLine.
func NewAnswerReader(r io.Reader) *AnswerReader {
	return &AnswerReader{
		scanner: bufio.NewScanner(r),
		answers: make(chan answer),
	}
}

// ReadLine returns the next trimmed line, io.EOF once input is exhausted, or
// ErrInputCancelled when ctx ends first.
func (r *AnswerReader) ReadLine(ctx context.Context) (string, error) {
	if ctx.Err() != nil {
		return "", ErrInputCancelled
	}
	r.once.Do(func() { go r.scan() })

	select {
	case <-ctx.Done():
		return "", ErrInputCancelled
	case a, ok := <-r.answers:
		if !ok {
			return "", io.EOF
		}
		return strings.TrimSpace(a.text), a.err
	}
}

func (r *AnswerReader) scan() {
	defer close(r.answers)

	for r.scanner.Scan() {
		r.answers <- answer{text: r.scanner.Text()}
	}
	if err := r.scanner.Err(); err != nil {
		r.answers <- answer{err: err}
	}
}
