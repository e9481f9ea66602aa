package errors

import (
	stderrors "errors"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_DerivesCategoryFromCode(t *testing.T) {
	tests := []struct {
		name     string
		code     string
		category Category
	}{
		{name: "config code", code: ErrCodeConfigInvalid, category: CategoryConfig},
		{name: "io code", code: ErrCodeDirRead, category: CategoryIO},
		{name: "pattern code", code: ErrCodePatternSyntax, category: CategoryPattern},
		{name: "validation code", code: ErrCodeInvalidRoot, category: CategoryValidation},
		{name: "file read code", code: ErrCodeFileRead, category: CategoryValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code, "boom", nil)
			assert.Equal(t, tt.category, err.Category)
		})
	}
}

func TestError_FormatsCodeAndMessage(t *testing.T) {
	err := New(ErrCodeInvalidRoot, "no such path: /tmp/nope", nil)
	assert.Equal(t, "[ERR_401_INVALID_ROOT] no such path: /tmp/nope", err.Error())
}

func TestWrap_PreservesCause(t *testing.T) {
	cause := os.ErrNotExist
	err := Wrap(ErrCodeInvalidRoot, cause)
	require.NotNil(t, err)

	assert.True(t, stderrors.Is(err, os.ErrNotExist))
	assert.Equal(t, cause.Error(), err.Message)
}

func TestWrap_NilReturnsNil(t *testing.T) {
	assert.Nil(t, Wrap(ErrCodeFileRead, nil))
}

func TestIsCode_MatchesThroughChain(t *testing.T) {
	inner := New(ErrCodeFileRead, "binary file", nil)
	wrapped := fmt.Errorf("while searching: %w", inner)

	assert.True(t, IsCode(wrapped, ErrCodeFileRead))
	assert.False(t, IsCode(wrapped, ErrCodeInvalidRoot))
	assert.False(t, IsCode(stderrors.New("plain"), ErrCodeFileRead))
}

func TestCodeOf(t *testing.T) {
	assert.Equal(t, ErrCodeDirRead, CodeOf(New(ErrCodeDirRead, "denied", nil)))
	assert.Equal(t, "", CodeOf(stderrors.New("plain")))
}

func TestWithDetail_Chains(t *testing.T) {
	err := New(ErrCodePatternSyntax, "unterminated character class", nil).
		WithDetail("line", "7").
		WithDetail("pattern", "foo[bar")

	assert.Equal(t, "7", err.Details["line"])
	assert.Equal(t, "foo[bar", err.Details["pattern"])
}

func TestIs_ComparesByCode(t *testing.T) {
	a := New(ErrCodeFileRead, "one", nil)
	b := New(ErrCodeFileRead, "two", nil)
	c := New(ErrCodeDirRead, "three", nil)

	assert.True(t, stderrors.Is(a, b))
	assert.False(t, stderrors.Is(a, c))
}
