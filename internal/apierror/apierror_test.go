package apierror

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAPIError_Error(t *testing.T) {
	err := NewAPIError(ErrNotFound, "subscriber not found", nil)
	assert.Equal(t, "NOT_FOUND: subscriber not found", err.Error())
}

func TestMapErrorToHTTPStatus(t *testing.T) {
	cases := []struct {
		code ErrorCode
		want int
	}{
		{ErrNotFound, http.StatusNotFound},
		{ErrConflict, http.StatusConflict},
		{ErrBadRequest, http.StatusBadRequest},
		{ErrInvalidInput, http.StatusBadRequest},
		{ErrPreconditionFailed, http.StatusPreconditionFailed},
		{ErrInternalServer, http.StatusInternalServerError},
	}

	for _, c := range cases {
		got := MapErrorToHTTPStatus(NewAPIError(c.code, "msg", nil))
		assert.Equal(t, c.want, got, string(c.code))
	}

	assert.Equal(t, http.StatusInternalServerError, MapErrorToHTTPStatus(errors.New("plain")))
}
