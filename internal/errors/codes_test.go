package errors

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodedError(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := Connectivity(cause)

	assert.Contains(t, err.Error(), "CONNECTIVITY")
	assert.Contains(t, err.Error(), "connection refused")
	assert.ErrorIs(t, err, cause)
}

func TestIsCode(t *testing.T) {
	assert.True(t, IsCode(BadStatus(500, nil), ErrCodeBadStatus))
	assert.False(t, IsCode(BadStatus(500, nil), ErrCodeConnectivity))
	assert.False(t, IsCode(stderrors.New("plain"), ErrCodeConnectivity))
}

func TestGetCodeFromError(t *testing.T) {
	assert.Equal(t, ErrCodeBadPayload, GetCodeFromError(BadPayload(nil), ErrCodeInternal))
	assert.Equal(t, ErrCodeInternal, GetCodeFromError(stderrors.New("plain"), ErrCodeInternal))
}

func TestStatusFromError(t *testing.T) {
	assert.Equal(t, 503, StatusFromError(BadStatus(503, nil)))
	assert.Zero(t, StatusFromError(EmptyCompletion()))
	assert.Zero(t, StatusFromError(stderrors.New("plain")))
}
