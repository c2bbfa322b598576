package utils

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategorizeError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, "None"},
		{"retry failed wrapping 5xx", fmt.Errorf("%w: %w", ErrRetryFailed, fmt.Errorf("%w: status 503", ErrServerHTTPError)), "RetryFailed_HTTPServer"},
		{"retry failed wrapping 4xx", fmt.Errorf("%w: %w", ErrRetryFailed, fmt.Errorf("%w: status 403", ErrClientHTTPError)), "RetryFailed_HTTPClient"},
		{"retry failed wrapping timeout", fmt.Errorf("%w: %w", ErrRetryFailed, errors.New("dial tcp: i/o timeout")), "RetryFailed_NetworkTimeout"},
		{"bare retry failed", ErrRetryFailed, "RetryFailed_Unknown"},
		{"client 404", fmt.Errorf("%w: status 404 Not Found", ErrClientHTTPError), "HTTP_404"},
		{"client generic", fmt.Errorf("%w: status 418", ErrClientHTTPError), "HTTP_4xx"},
		{"server error", fmt.Errorf("%w: status 502", ErrServerHTTPError), "HTTP_5xx"},
		{"marker not found", WrapErrorf(ErrMarkerNotFound, "problems-solved section"), "Content_MarkerNotFound"},
		{"json parsing", WrapErrorf(ErrParsing, "JSON: unexpected EOF"), "Content_ParsingJSON"},
		{"html parsing", WrapErrorf(ErrParsing, "HTML: bad token"), "Content_ParsingHTML"},
		{"unknown language", WrapErrorf(ErrUnknownLanguage, "%q", "BRAINFUCK"), "Archive_UnknownLanguage"},
		{"filesystem", WrapErrorf(ErrFilesystem, "mkdir"), "Filesystem_Other"},
		{"config", WrapErrorf(ErrConfigValidation, "bad"), "Config_Validation"},
		{"context canceled", context.Canceled, "System_ContextCanceled"},
		{"context deadline", context.DeadlineExceeded, "System_ContextDeadlineExceeded"},
		{"connection refused", errors.New("dial tcp 127.0.0.1:1: connection refused"), "Network_ConnectionRefused"},
		{"unknown", errors.New("something else"), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CategorizeError(tt.err))
		})
	}
}

func TestWrapErrorf(t *testing.T) {
	err := WrapErrorf(ErrUnknownLanguage, "label %q", "BRAINFUCK")
	assert.True(t, errors.Is(err, ErrUnknownLanguage))
	assert.Contains(t, err.Error(), `"BRAINFUCK"`)
}
