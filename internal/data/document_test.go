package data

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConcatenate(t *testing.T) {
	testCases := []struct {
		name     string
		input    []string
		expected string
	}{
		{name: "empty", input: nil, expected: ""},
		{name: "single", input: []string{"A"}, expected: "A"},
		{name: "no separator", input: []string{"A", "B"}, expected: "AB"},
		{name: "keeps engine whitespace", input: []string{"one\n\f", "two\n\f"}, expected: "one\n\ftwo\n\f"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Concatenate(tc.input))
		})
	}
}

func TestTexts_PreservesOrder(t *testing.T) {
	pages := []PageText{{Number: 1, Text: "a"}, {Number: 2, Text: "b"}, {Number: 3, Text: "c"}}

	assert.Equal(t, []string{"a", "b", "c"}, Texts(pages))
}

func TestError_KindMatching(t *testing.T) {
	// Arrange
	cause := errors.New("exit status 1")
	err := fmt.Errorf("page 2: %w", NewError(OCRInvocationFailure, "tesseract failed", cause))

	// Act / Assert
	assert.Equal(t, OCRInvocationFailure, KindOf(err))
	assert.True(t, errors.Is(err, &Error{Kind: OCRInvocationFailure}))
	assert.False(t, errors.Is(err, &Error{Kind: FileWriteFailure}))
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "ocr invocation failure")
	assert.False(t, IsValidation(err))
	assert.True(t, IsValidation(NewError(MissingRequiredPath, "no output", nil)))
	assert.Equal(t, ErrorKind(""), KindOf(cause))
}
