package cli

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("terminal gone")
}

func TestAnswerReader_ConsecutiveAnswers(t *testing.T) {
	r := NewAnswerReader(strings.NewReader("  ~/walls/den.png \n2, 3\nlast answer"))
	ctx := context.Background()

	for _, want := range []string{"~/walls/den.png", "2, 3", "last answer"} {
		got, err := r.ReadLine(ctx)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := r.ReadLine(ctx)
	assert.ErrorIs(t, err, io.EOF)
}

func TestAnswerReader_AlreadyCancelled(t *testing.T) {
	r := NewAnswerReader(strings.NewReader("ignored\n"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.ReadLine(ctx)
	assert.ErrorIs(t, err, ErrInputCancelled)
}

func TestAnswerReader_CancelKeepsLateAnswer(t *testing.T) {
	pr, pw := io.Pipe()
	t.Cleanup(func() { _ = pw.Close() })
	r := NewAnswerReader(pr)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := r.ReadLine(ctx)
	require.ErrorIs(t, err, ErrInputCancelled)

	go func() { _, _ = io.WriteString(pw, "/walls/late.jpg\n") }()

	got, err := r.ReadLine(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "/walls/late.jpg", got)
}

func TestAnswerReader_ReadError(t *testing.T) {
	r := NewAnswerReader(failingReader{})

	_, err := r.ReadLine(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "terminal gone")
}

func TestPrompter_AskImageCancelledMidPrompt(t *testing.T) {
	pr, pw := io.Pipe()
	t.Cleanup(func() { _ = pw.Close() })

	var out strings.Builder
	p := NewPrompter(pr, &out)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := p.AskImage(ctx)
		done <- err
	}()

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, ErrInputCancelled)
	case <-time.After(time.Second):
		t.Fatal("prompt did not return after cancel")
	}
}
