package fault

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatError_Message(t *testing.T) {
	err := &FormatError{Input: "1/1/2023", Expected: "dd/MM/yyyy", Reason: "unable to parse date"}
	assert.Equal(t, `unable to parse date: "1/1/2023" (expected format: dd/MM/yyyy)`, err.Error())

	bare := &FormatError{Input: "XYZ", Reason: "unknown currency code"}
	assert.Equal(t, `unknown currency code: "XYZ"`, bare.Error())
}

func TestNotFoundError_IsNotExist(t *testing.T) {
	err := fmt.Errorf("reading export: %w", &NotFoundError{Path: "missing.csv"})
	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.Contains(t, err.Error(), "missing.csv")

	var nf *NotFoundError
	assert.True(t, errors.As(err, &nf))
	assert.Equal(t, "missing.csv", nf.Path)
}

func TestValidationError_Message(t *testing.T) {
	err := &ValidationError{Field: "path", Reason: "must not be empty"}
	assert.Equal(t, "invalid path: must not be empty", err.Error())
}
