package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type window struct {
	Open  string `json:"open" validate:"required,datetime=15:04"`
	Close string `json:"close,omitempty" validate:"omitempty,datetime=15:04"`
	Skip  string `json:"-" validate:"omitempty,email"`
}

func TestStruct(t *testing.T) {
	require.NoError(t, Struct(window{Open: "09:00", Close: "18:30"}))

	err := Struct(window{Open: "9am", Close: "25:00"})
	require.Error(t, err)
	assert.Equal(t, "open failed datetime; close failed datetime", Message(err))
}

func TestValidatorIsShared(t *testing.T) {
	assert.Same(t, Validator(), Validator())
}
