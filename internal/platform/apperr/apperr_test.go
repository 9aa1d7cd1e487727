// Copyright (c) 2026 Ambutrack. All rights reserved.

package apperr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emsgrid/ambutrack/internal/platform/apperr"
)

/*
TestAppError_Is verifies code-based sentinel matching through wrap chains.
*/
func TestAppError_Is(t *testing.T) {
	sentinel := apperr.New("USER_NOT_FOUND", "User not found")

	tests := []struct {
		name    string
		err     error
		matches bool
	}{
		{"same_value", sentinel, true},
		{"same_code_new_value", apperr.New("USER_NOT_FOUND", "different text"), true},
		{"wrapped_sentinel", fmt.Errorf("resetting password: %w", sentinel), true},
		{"different_code", apperr.New("OWNER_NOT_FOUND", "Owner not found"), false},
		{"plain_error", errors.New("USER_NOT_FOUND"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.matches, errors.Is(tt.err, sentinel))
		})
	}
}

/*
TestInternal verifies that infrastructure causes stay attached but opaque.
*/
func TestInternal(t *testing.T) {
	cause := errors.New("connection refused")
	err := apperr.Internal(cause)

	require.True(t, apperr.IsInternal(err))
	assert.ErrorIs(t, err, cause, "cause must remain reachable for logging")
	assert.NotContains(t, err.Error(), "connection refused", "client-safe message must not leak the cause")
}

/*
TestAs extracts the AppError from a wrapped chain.
*/
func TestAs(t *testing.T) {
	sentinel := apperr.New("INVALID_TOKEN", "Session token is not valid or does not exist")
	wrapped := fmt.Errorf("retrieve account: %w", sentinel)

	ae := apperr.As(wrapped)
	require.NotNil(t, ae)
	assert.Equal(t, "INVALID_TOKEN", ae.Code)

	assert.Nil(t, apperr.As(errors.New("plain")))
	assert.Nil(t, apperr.As(nil))
}
