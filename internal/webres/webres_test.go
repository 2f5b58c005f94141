package webres_test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mkarlsson/webdemo/internal/webres"
)

func TestWithHeaderAppendsCaseInsensitively(t *testing.T) {
	resp := webres.Text("hi").
		WithHeader("X-A", "1").
		WithHeader("x-a", "2")

	headers := resp.NormalizedHeaders()
	require.Equal(t, []string{"1", "2"}, headers["x-a"])
}

func TestWithHeaderDoesNotMutateOriginal(t *testing.T) {
	base := webres.JSON(map[string]string{"foo": "bar"}).WithHeader("X-A", "1")
	derived := base.WithHeader("X-A", "2").WithHeader("X-B", "3")

	require.Equal(t, []string{"1"}, base.NormalizedHeaders()["x-a"])
	require.NotContains(t, base.NormalizedHeaders(), "x-b")
	require.Equal(t, []string{"1", "2"}, derived.NormalizedHeaders()["x-a"])
}

func TestDefaultStatusAndOverride(t *testing.T) {
	require.Equal(t, 200, webres.Text("ok").Status())
	require.Equal(t, 422, webres.JSON(map[string]string{"error": "nope"}).WithStatus(422).Status())
}

func TestWriteHTTPJSON(t *testing.T) {
	resp := webres.JSON(map[string]bool{"success": true}).WithHeader("X-Test-Header", "Just a test!")

	rec := httptest.NewRecorder()
	require.NoError(t, webres.WriteHTTP(rec, resp))

	require.Equal(t, 200, rec.Code)
	require.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
	require.Equal(t, "Just a test!", rec.Header().Get("X-Test-Header"))
	require.JSONEq(t, `{"success":true}`, rec.Body.String())
}

func TestToLambdaText(t *testing.T) {
	out, err := webres.ToLambda(webres.Text("Hello, World!").WithHeader("X-A", "1"))
	require.NoError(t, err)

	require.Equal(t, 200, out.StatusCode)
	require.Equal(t, "Hello, World!", out.Body)
	require.Equal(t, []string{"1"}, out.MultiValueHeaders["x-a"])
	require.Equal(t, []string{"text/plain; charset=utf-8"}, out.MultiValueHeaders["content-type"])
}

func TestToLambdaUnserializableBodyFails(t *testing.T) {
	_, err := webres.ToLambda(webres.JSON(make(chan int)))
	require.Error(t, err)
}
