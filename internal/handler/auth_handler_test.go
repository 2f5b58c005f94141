package handler_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mkarlsson/webdemo/internal/testutil"
)

func postForm(router http.Handler, path string, form url.Values, cookies []*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestCookieLoginFlow(t *testing.T) {
	conn, cleanup := testutil.OpenTestDB(t)
	defer cleanup()

	router, _ := newTestRouter(t, conn)
	email := fmt.Sprintf("flow-%d@example.com", time.Now().UnixNano())

	// Sign up.
	rec := doJSON(router, http.MethodPost, "/signup",
		fmt.Sprintf(`{"email":%q,"name":"Flow","password":"goodpass","tos_accepted":true}`, email))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"id"`)

	// Wrong password bounces back to the login page without a cookie.
	rec = postForm(router, "/login", url.Values{
		"username": {email},
		"password": {"incorrect"},
	}, nil)
	require.Equal(t, http.StatusFound, rec.Code)
	require.Equal(t, "/login", rec.Header().Get("Location"))
	require.Empty(t, rec.Result().Cookies())

	// Unknown user looks exactly the same.
	rec = postForm(router, "/login", url.Values{
		"username": {"does@not.exist"},
		"password": {"goodpass"},
	}, nil)
	require.Equal(t, http.StatusFound, rec.Code)
	require.Equal(t, "/login", rec.Header().Get("Location"))

	// Correct credentials establish a session and land on /secret.
	rec = postForm(router, "/login", url.Values{
		"username": {email},
		"password": {"goodpass"},
	}, nil)
	require.Equal(t, http.StatusFound, rec.Code)
	require.Equal(t, "/secret", rec.Header().Get("Location"))
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)

	req := httptest.NewRequest(http.MethodGet, "/secret", nil)
	req.AddCookie(cookies[0])
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), email)

	// Logout clears the cookie and redirects to the login page.
	req = httptest.NewRequest(http.MethodGet, "/logout", nil)
	req.AddCookie(cookies[0])
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusFound, rec.Code)
	require.Equal(t, "/login", rec.Header().Get("Location"))
	cleared := rec.Result().Cookies()
	require.Len(t, cleared, 1)
	require.Empty(t, cleared[0].Value)
}

func TestSignupDuplicateEmailHitsGenericErrorPath(t *testing.T) {
	conn, cleanup := testutil.OpenTestDB(t)
	defer cleanup()

	router, _ := newTestRouter(t, conn)
	email := fmt.Sprintf("dup-%d@example.com", time.Now().UnixNano())
	body := fmt.Sprintf(`{"email":%q,"password":"goodpass"}`, email)

	rec := doJSON(router, http.MethodPost, "/signup", body)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(router, http.MethodPost, "/signup", body)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Contains(t, rec.Body.String(), "500:")
}

func TestSignupValidation(t *testing.T) {
	conn, cleanup := testutil.OpenTestDB(t)
	defer cleanup()

	router, _ := newTestRouter(t, conn)

	rec := doJSON(router, http.MethodPost, "/signup", `{"email":"nope","password":"goodpass"}`)
	require.Equal(t, 422, rec.Code)
	require.Contains(t, rec.Body.String(), "Invalid e-mail")

	rec = doJSON(router, http.MethodPost, "/signup", `{"email":"a@b.com","password":"1234"}`)
	require.Equal(t, 422, rec.Code)
	require.Contains(t, rec.Body.String(), "Insecure password")
}
