package util

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError(t *testing.T) {
	ass := assert.New(t)

	err := NewError(EC_Internal, "test message")
	ass.EqualError(err, "test message")
	ass.Equal(EC_Internal, err.Code)
	ass.Nil(err.Unwrap())

	cause := fmt.Errorf("underlying")
	err = NewAccessDeniedError("/dev/gpiomem", cause)
	ass.EqualError(err, "could not open /dev/gpiomem: underlying")
	ass.Equal(EC_AccessDenied, err.Code)
	ass.Equal("/dev/gpiomem", err.Name)
	ass.True(errors.Is(err, cause))
}

func TestErrorConstructors(t *testing.T) {
	ass := assert.New(t)

	err := NewUnavailableLineError("road A green", "pin 99 out of range")
	ass.Equal(EC_UnavailableLine, err.Code)
	ass.EqualError(err, "line road A green unavailable: pin 99 out of range")

	cause := fmt.Errorf("bus fault")
	err = NewWriteFailureError("road B red", cause)
	ass.Equal(EC_WriteFailure, err.Code)
	ass.EqualError(err, "could not write road B red: bus fault")

	err = NewInternalError(cause)
	ass.Equal(EC_Internal, err.Code)
}

func TestErrorCodeOf(t *testing.T) {
	ass := assert.New(t)

	ass.Equal(EC_AccessDenied, ErrorCodeOf(NewAccessDeniedError("/dev/mem", nil)))
	ass.Equal(EC_Internal, ErrorCodeOf(fmt.Errorf("some other error")))
}
