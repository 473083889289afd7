package req

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"wsrelay/internal/pkg/errs"
)

type testInput struct {
	Name string `json:"name"`
}

func jsonRequest(body string, contentType string) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	r.Header.Set("Content-Type", contentType)
	return r
}

func TestBindJSONSuccess(t *testing.T) {
	var dst testInput
	customErr := BindJSON(jsonRequest(`{"name":"alice"}`, "application/json"), &dst)
	require.Nil(t, customErr)
	require.Equal(t, "alice", dst.Name)
}

func TestBindJSONWrongContentType(t *testing.T) {
	var dst testInput
	customErr := BindJSON(jsonRequest(`{"name":"alice"}`, "text/plain"), &dst)
	require.NotNil(t, customErr)
	require.Equal(t, errs.ErrUnsupportedMediaType, customErr.Code)
}

func TestBindJSONUnknownField(t *testing.T) {
	var dst testInput
	customErr := BindJSON(jsonRequest(`{"name":"alice","extra":1}`, "application/json"), &dst)
	require.NotNil(t, customErr)
	require.Equal(t, errs.ErrInvalidJSONFormat, customErr.Code)
}

func TestBindJSONTrailingContent(t *testing.T) {
	var dst testInput
	customErr := BindJSON(jsonRequest(`{"name":"alice"}{"name":"bob"}`, "application/json"), &dst)
	require.NotNil(t, customErr)
	require.Equal(t, errs.ErrExtraContentInBody, customErr.Code)
}

func TestBindJSONMalformed(t *testing.T) {
	var dst testInput
	customErr := BindJSON(jsonRequest(`{"name":`, "application/json"), &dst)
	require.NotNil(t, customErr)
	require.Equal(t, errs.ErrInvalidJSONFormat, customErr.Code)
}
