package common

import (
	"context"
	"errors"
	"fmt"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

var _ net.Error = timeoutErr{}

func TestAPIError_MessageCarriesStatusAndBody(t *testing.T) {
	err := &APIError{StatusCode: 500, Body: "server error"}
	assert.Contains(t, err.Error(), "500")
	assert.Contains(t, err.Error(), "server error")
}

func TestSizeLimitError_Message(t *testing.T) {
	err := &SizeLimitError{Size: 12 * 1024 * 1024, Limit: 10 * 1024 * 1024}
	assert.Contains(t, err.Error(), "too large")
	assert.Contains(t, err.Error(), "12.00")
}

func TestIsTimeout(t *testing.T) {
	tests := []struct {
		err  error
		name string
		want bool
	}{
		{name: "deadline exceeded", err: context.DeadlineExceeded, want: true},
		{name: "wrapped deadline", err: fmt.Errorf("call: %w", context.DeadlineExceeded), want: true},
		{name: "transport net timeout", err: &TransportError{Err: timeoutErr{}}, want: true},
		{name: "transport refused", err: &TransportError{Err: errors.New("connection refused")}, want: false},
		{name: "api error", err: &APIError{StatusCode: 504}, want: false},
		{name: "plain", err: errors.New("boom"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsTimeout(tt.err))
		})
	}
}

func TestErrorUnwrapping(t *testing.T) {
	inner := errors.New("dial tcp: refused")

	var transportErr *TransportError
	require.ErrorAs(t, fmt.Errorf("match: %w", &TransportError{Err: inner}), &transportErr)
	require.ErrorIs(t, transportErr, inner)

	validation := &ValidationError{Err: ErrMissingColor}
	require.ErrorIs(t, validation, ErrMissingColor)
	assert.Equal(t, "please select at least one color", validation.Error())

	userErr := NewUserError("could not save", inner)
	require.ErrorIs(t, userErr, inner)
	assert.Equal(t, "could not save: dial tcp: refused", userErr.Error())
}

func TestParseLevel(t *testing.T) {
	level, err := ParseLevel("warn")
	require.NoError(t, err)
	assert.Equal(t, "WARN", level.String())

	_, err = ParseLevel("loud")
	require.ErrorIs(t, err, ErrInvalidConfig)
}
