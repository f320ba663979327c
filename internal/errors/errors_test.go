package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSentinelErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		msg  string
	}{
		{"not found", ErrNotFound, "not found"},
		{"already exists", ErrAlreadyExists, "already exists"},
		{"invalid", ErrInvalid, "invalid"},
		{"unauthorized", ErrUnauthorized, "unauthorized"},
		{"conflict", ErrConflict, "conflict"},
		{"unreachable", ErrUnreachable, "backend unreachable"},
		{"canceled", ErrCanceled, "canceled"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.msg, tt.err.Error())
		})
	}
}

func TestAPIError_StatusMapsToSentinels(t *testing.T) {
	tests := []struct {
		status   int
		sentinel error
	}{
		{401, ErrUnauthorized},
		{403, ErrUnauthorized},
		{404, ErrNotFound},
		{409, ErrConflict},
		{400, ErrInvalid},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("status %d", tt.status), func(t *testing.T) {
			err := &APIError{Method: "GET", Path: "/api/prompts/", Status: tt.status}
			assert.True(t, stderrors.Is(err, tt.sentinel))
		})
	}

	// 500 maps to nothing
	err := &APIError{Method: "GET", Path: "/api/prompts/", Status: 500}
	assert.False(t, stderrors.Is(err, ErrInvalid))
	assert.False(t, stderrors.Is(err, ErrNotFound))
}

func TestAPIError_Message(t *testing.T) {
	err := &APIError{Method: "POST", Path: "/api/teams/", Status: 400, Detail: "name required"}
	assert.Contains(t, err.Error(), "name required")
	assert.Contains(t, err.Error(), "status 400")

	fieldErr := &APIError{
		Method: "PATCH",
		Path:   "/api/prompts/x/",
		Status: 400,
		Fields: map[string][]string{"visibility": {"invalid choice"}},
	}
	assert.Contains(t, fieldErr.Error(), "visibility: invalid choice")

	bare := &APIError{Method: "GET", Path: "/api/users/", Status: 502}
	assert.Contains(t, bare.Error(), "request failed")
}

func TestValidationError(t *testing.T) {
	err := Invalid("name", "cannot be empty")
	require.True(t, IsInvalid(err))

	ve, ok := AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, "name", ve.Field)
	assert.Contains(t, ve.Error(), "name: cannot be empty")
}

func TestWrap(t *testing.T) {
	err := Wrap(ErrNotFound, "getPrompt")
	assert.Equal(t, "getPrompt: not found", err.Error())
	assert.True(t, IsNotFound(err))

	// Double wrapping still unwraps cleanly
	outer := Wrap(err, "viewPrompt")
	assert.True(t, IsNotFound(outer))
}

func TestAsAPIError(t *testing.T) {
	inner := &APIError{Method: "DELETE", Path: "/api/folders/x/", Status: 404}
	wrapped := Wrap(inner, "deleteFolder")

	ae, ok := AsAPIError(wrapped)
	require.True(t, ok)
	assert.Equal(t, 404, ae.Status)

	_, ok = AsAPIError(stderrors.New("plain"))
	assert.False(t, ok)
}

func TestAsConfigError(t *testing.T) {
	inner := &ConfigError{Path: "/tmp/config.toml", Err: ErrInvalid}
	ce, ok := AsConfigError(Wrap(inner, "load"))
	require.True(t, ok)
	assert.Contains(t, ce.Error(), "/tmp/config.toml")
}
