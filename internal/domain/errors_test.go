package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotFoundError(t *testing.T) {
	err := NewNotFoundError("job", "abc")
	assert.Equal(t, `job with id "abc" not found`, err.Error())
	assert.True(t, IsNotFound(err))
	assert.False(t, IsValidation(err))

	assert.Equal(t, "job not found", NewNotFoundError("job", "").Error())
}

func TestValidationError(t *testing.T) {
	err := NewValidationErrorWithValue("chunk_size", "must be positive", 0)
	assert.Equal(t, "validation failed for chunk_size: must be positive", err.Error())
	assert.True(t, IsValidation(err))

	var ve *ValidationError
	assert.True(t, errors.As(err, &ve))
	assert.Equal(t, 0, ve.Value)

	assert.Equal(t, "validation failed: bad", NewValidationError("", "bad").Error())
}

func TestWrappedSentinels(t *testing.T) {
	err := fmt.Errorf("loading 2020: %w", ErrNoYearFiles)
	assert.ErrorIs(t, err, ErrNoYearFiles)
	assert.NotErrorIs(t, err, ErrNoSpeakerFiles)
}
