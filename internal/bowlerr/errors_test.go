package bowlerr

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestKindsAreDistinguishable makes sure errors.As picks the right kind through wrapping.
func TestKindsAreDistinguishable(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("upload: %w", NewProcessingError(http.StatusUnprocessableEntity))

	var (
		processingErr *ProcessingError
		uploadErr     *UploadError
	)

	require.ErrorAs(t, err, &processingErr)
	require.Equal(t, http.StatusUnprocessableEntity, processingErr.StatusCode)
	require.False(t, errors.As(err, &uploadErr))
}

// TestUploadError_Message checks that the status and raw body are part of the message.
func TestUploadError_Message(t *testing.T) {
	t.Parallel()

	err := NewUploadError(http.StatusInternalServerError, `{"error":"boom"}`)
	require.Equal(t, `Error when trying to upload file(s) to BOWL: 500 - {"error":"boom"}`, err.Error())
}

// TestBaseError_Unwrap verifies the underlying cause stays reachable.
func TestBaseError_Unwrap(t *testing.T) {
	t.Parallel()

	err := NewFileIOError("read build.gradle", io.ErrUnexpectedEOF)
	require.ErrorIs(t, err, io.ErrUnexpectedEOF)
	require.Contains(t, err.Error(), "read build.gradle")

	clientErr := NewAPIClientError(io.EOF)
	require.ErrorIs(t, clientErr, io.EOF)
}

// TestUserMessage checks the single line printed for every kind.
func TestUserMessage(t *testing.T) {
	t.Parallel()

	require.Empty(t, UserMessage(nil))
	require.Equal(t, "no version given", UserMessage(fmt.Errorf("wrapped: %w", NewValidationError("no version given"))))
	require.Equal(t, "BOWL has an issue processing this app.", UserMessage(NewProcessingError(http.StatusBadRequest)))
	require.Equal(t, "Error when trying to upload file(s) to BOWL: 404 - not found", UserMessage(NewUploadError(http.StatusNotFound, "not found")))
}
