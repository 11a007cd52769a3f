package handlers

import (
	"context"
	"fmt"
	"testing"

	"kgraph-api/core/errors"

	"github.com/danielgtaylor/huma/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToHumaError(t *testing.T) {
	tests := []struct {
		name           string
		input          error
		expectedStatus int
		expectedInMsg  string
	}{
		{
			name:           "NotFoundError returns 404",
			input:          &errors.NotFoundError{Resource: "user feed", ID: "ghost"},
			expectedStatus: 404,
			expectedInMsg:  "user feed not found",
		},
		{
			name:           "ValidationError returns 400",
			input:          &errors.ValidationError{Field: "username", Message: "cannot be empty"},
			expectedStatus: 400,
			expectedInMsg:  "'username': cannot be empty",
		},
		{
			name:           "ParseError returns 502",
			input:          &errors.ParseError{Source: "feed", Format: "rss", Err: fmt.Errorf("eof")},
			expectedStatus: 502,
			expectedInMsg:  "could not be parsed",
		},
		{
			name:           "ExternalAPIError with 500 returns 503",
			input:          &errors.ExternalAPIError{StatusCode: 500, Message: "server error"},
			expectedStatus: 503,
			expectedInMsg:  "External service error",
		},
		{
			name:           "ExternalAPIError with 429 returns 429",
			input:          &errors.ExternalAPIError{StatusCode: 429, Message: "rate limited"},
			expectedStatus: 429,
			expectedInMsg:  "Rate limited by external service",
		},
		{
			name:           "ExternalAPIError with 403 returns 400",
			input:          &errors.ExternalAPIError{StatusCode: 403, Message: "forbidden"},
			expectedStatus: 400,
			expectedInMsg:  "External service request error",
		},
		{
			name:           "ExternalAPIError with unexpected status returns 500",
			input:          &errors.ExternalAPIError{StatusCode: 200, Message: "ok but error"},
			expectedStatus: 500,
			expectedInMsg:  "Unexpected external service response",
		},
		{
			name:           "wrapped ExternalAPIError keeps mapping",
			input:          fmt.Errorf("load: %w", &errors.ExternalAPIError{StatusCode: 502}),
			expectedStatus: 503,
			expectedInMsg:  "External service error",
		},
		{
			name:           "wrapped NotFoundError returns 404",
			input:          fmt.Errorf("wrapped: %w", &errors.NotFoundError{Resource: "user feed"}),
			expectedStatus: 404,
			expectedInMsg:  "user feed not found",
		},
		{
			name:           "deadline returns 504",
			input:          fmt.Errorf("fetch: %w", context.DeadlineExceeded),
			expectedStatus: 504,
			expectedInMsg:  "timed out",
		},
		{
			name:           "unknown error returns 500",
			input:          fmt.Errorf("some unknown error"),
			expectedStatus: 500,
			expectedInMsg:  "Internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := toHumaError(tt.input)

			humaErr, ok := result.(*huma.ErrorModel)
			require.True(t, ok, "Expected huma.ErrorModel")
			assert.Equal(t, tt.expectedStatus, humaErr.Status)
			assert.Contains(t, humaErr.Detail, tt.expectedInMsg)
		})
	}
}

func TestToHumaError_Nil(t *testing.T) {
	assert.Nil(t, toHumaError(nil))
}
