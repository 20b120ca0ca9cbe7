package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSentinelErrors_AreDistinct(t *testing.T) {
	sentinels := []error{ErrNotFound, ErrInvalidInput, ErrInternal}

	for i := 0; i < len(sentinels); i++ {
		for j := i + 1; j < len(sentinels); j++ {
			assert.NotEqual(t, sentinels[i], sentinels[j])
		}
	}
}

func TestAppError_ErrorString(t *testing.T) {
	inner := fmt.Errorf("snapshot swap failed")
	withInner := &AppError{Code: "INTERNAL_ERROR", Message: "something broke", Err: inner}
	assert.Equal(t, "INTERNAL_ERROR: something broke: snapshot swap failed", withInner.Error())

	bare := &AppError{Code: "NOT_FOUND", Message: "product not found"}
	assert.Equal(t, "NOT_FOUND: product not found", bare.Error())
}

func TestNotFound(t *testing.T) {
	err := NotFound("product", "product-7")
	require.NotNil(t, err)

	assert.Equal(t, "NOT_FOUND", err.Code)
	assert.Equal(t, "product with id product-7 not found", err.Message)
	assert.Equal(t, http.StatusNotFound, err.Status)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestInvalidInput(t *testing.T) {
	err := InvalidInput("comment is required")

	assert.Equal(t, "INVALID_INPUT", err.Code)
	assert.Equal(t, http.StatusBadRequest, err.Status)
	assert.True(t, errors.Is(err, ErrInvalidInput))
}

func TestInternal(t *testing.T) {
	inner := errors.New("boom")
	err := Internal(inner)

	assert.Equal(t, http.StatusInternalServerError, err.Status)
	assert.True(t, errors.Is(err, inner))
}

func TestWrap_PreservesChain(t *testing.T) {
	err := Wrap(NotFound("cart line", "product-1"), "set quantity")

	assert.Contains(t, err.Error(), "set quantity")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"app error", InvalidInput("bad"), http.StatusBadRequest},
		{"wrapped app error", fmt.Errorf("fetch: %w", NotFound("product", "x")), http.StatusNotFound},
		{"bare not found sentinel", fmt.Errorf("lookup: %w", ErrNotFound), http.StatusNotFound},
		{"bare invalid sentinel", ErrInvalidInput, http.StatusBadRequest},
		{"unknown", errors.New("mystery"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}
