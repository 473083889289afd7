package errs

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewErrorKnownCode(t *testing.T) {
	err := NewError(ErrInvalidToken)
	require.Equal(t, ErrInvalidToken, err.Code)
	require.Equal(t, http.StatusUnauthorized, err.Status)
	require.NotEmpty(t, err.Message)
}

func TestNewErrorStatusDefaultsToOK(t *testing.T) {
	err := NewError(ErrInvalidParams)
	require.Equal(t, http.StatusOK, err.Status)
}

func TestNewErrorUnknownCodeFallsBack(t *testing.T) {
	err := NewError(-42)
	require.Equal(t, ErrUnknown, err.Code)
	require.Equal(t, http.StatusInternalServerError, err.Status)
}

func TestNewErrorHTTPMappings(t *testing.T) {
	cases := map[int]int{
		ErrUpgradeRequired:   http.StatusUpgradeRequired,
		ErrNotFound:          http.StatusNotFound,
		ErrRoomNotFound:      http.StatusNotFound,
		ErrInvalidToken:      http.StatusUnauthorized,
		ErrRateLimitExceeded: http.StatusTooManyRequests,
		ErrUnknown:           http.StatusInternalServerError,
	}

	for code, status := range cases {
		require.Equal(t, status, NewError(code).Status, "code %d", code)
	}
}

func TestCustomErrorImplementsError(t *testing.T) {
	var err error = NewError(ErrRoomIsFull)
	require.Contains(t, err.Error(), "2002")
}
