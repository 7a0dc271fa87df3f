package apierror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAPIErrorMessage(t *testing.T) {
	t.Parallel()

	require.Equal(t, "NOT_FOUND: favorite not found", New(CodeNotFound, "favorite not found", "", http.StatusNotFound).Error())
	require.Equal(t, "BAD_REQUEST: invalid JSON body (body)", BadRequest("invalid JSON body", "body").Error())

	var nilErr *APIError
	require.Equal(t, "", nilErr.Error())
}

func TestWrapKeepsCause(t *testing.T) {
	t.Parallel()

	sentinel := errors.New("username already registered")
	err := Conflict(sentinel, "Username already registered", "alice")

	require.ErrorIs(t, err, sentinel)
	require.Equal(t, http.StatusConflict, err.HTTPStatus)
	require.Equal(t, CodeConflict, err.Code)

	var apiErr *APIError
	require.True(t, errors.As(error(err), &apiErr))
	require.Equal(t, "alice", apiErr.Details)
}

func TestAsFindsWrappedAPIError(t *testing.T) {
	t.Parallel()

	inner := NotFound(errors.New("gone"), "favorite not found", "")
	wrapped := fmt.Errorf("delete favorite: %w", inner)

	got, ok := As(wrapped)
	require.True(t, ok)
	require.Same(t, inner, got)

	_, ok = As(errors.New("plain"))
	require.False(t, ok)
}
