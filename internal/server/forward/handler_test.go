package forward

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/yeshlogin/internal/logging"
)

// ---- helpers ----

func newRemote(t *testing.T, h http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return srv
}

func newRouter(baseURL string) http.Handler {
	r := chi.NewRouter()
	NewHandler(baseURL, http.DefaultClient, logging.Discard(), logging.Redactor{}).Routes(r)
	return r
}

func post(t *testing.T, h http.Handler, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/userInfo", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var out map[string]any
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	}
	return rec, out
}

// ---- tests ----

func TestUserInfo_NonPostIsRejected(t *testing.T) {
	h := newRouter("http://unused.invalid")

	for _, m := range []string{http.MethodGet, http.MethodPut, http.MethodDelete} {
		req := httptest.NewRequest(m, "/api/userInfo", nil)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code, m)
		assert.JSONEq(t, `{"error":"Method not allowed"}`, rec.Body.String())
		assert.Equal(t, "POST", rec.Header().Get("Allow"))
	}
}

func TestUserInfo_MissingToken(t *testing.T) {
	h := newRouter("http://unused.invalid")

	for _, body := range []string{`{}`, `{"token":""}`, `{"token":"   "}`, ``, `not json`} {
		rec, out := post(t, h, body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
		assert.Equal(t, "Missing token", out["error"], body)
	}
}

func TestUserInfo_InvalidEndpoint(t *testing.T) {
	h := newRouter("http://unused.invalid")

	for _, ep := range []string{"user/info", "//evil.example/x", "http://evil.example/x"} {
		rec, out := post(t, h, `{"token":"abc","endpoint":"`+ep+`"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code, ep)
		assert.Equal(t, "Invalid endpoint", out["error"], ep)
	}
}

func TestUserInfo_SuccessRelaysBodyVerbatim(t *testing.T) {
	remote := newRemote(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/v1/user/info", r.URL.Path)
		assert.Equal(t, "Bearer abc", r.Header.Get("Authorization"))
		_, _ = io.WriteString(w, `{"id":7,"name":"Bob"}`)
	})

	rec, out := post(t, newRouter(remote.URL+"/v1"), `{"token":"abc"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `{"id":7,"name":"Bob"}`, rec.Body.String())
	assert.Equal(t, "Bob", out["name"])
}

func TestUserInfo_BodyWithoutContentType(t *testing.T) {
	remote := newRemote(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"id":"1"}`)
	})

	req := httptest.NewRequest(http.MethodPost, "/api/userInfo", strings.NewReader(`{"token":"abc"}`))
	rec := httptest.NewRecorder()
	newRouter(remote.URL).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":"1"}`, rec.Body.String())
}

func TestUserInfo_BlankSuccessBodyBecomesEmptyObject(t *testing.T) {
	remote := newRemote(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	rec, out := post(t, newRouter(remote.URL), `{"token":"abc"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{}`, rec.Body.String())
	assert.Empty(t, out)
}

func TestUserInfo_EndpointOverride(t *testing.T) {
	var path string
	remote := newRemote(t, func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		_, _ = io.WriteString(w, `{"id":"u"}`)
	})

	rec, _ := post(t, newRouter(remote.URL), `{"token":"abc","endpoint":"/users/me"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "/users/me", path)
}

func TestUserInfo_RemoteForbidden(t *testing.T) {
	remote := newRemote(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = io.WriteString(w, `{"message":"nope"}`)
	})

	rec, out := post(t, newRouter(remote.URL), `{"token":"abc"}`)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, out["error"], "forbidden")
	assert.Equal(t, map[string]any{"message": "nope"}, out["details"])
	assert.EqualValues(t, 403, out["status"])
	assert.Equal(t, "/user/info", out["endpoint"])
}

func TestUserInfo_RemoteUnauthorized(t *testing.T) {
	remote := newRemote(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	rec, out := post(t, newRouter(remote.URL), `{"token":"abc"}`)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, out["error"], "unauthorized")
	assert.Equal(t, map[string]any{}, out["details"])
}

func TestUserInfo_RemoteOtherFailure(t *testing.T) {
	remote := newRemote(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = io.WriteString(w, `{"error":"upstream"}`)
	})

	rec, out := post(t, newRouter(remote.URL), `{"token":"abc"}`)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, "API request failed", out["error"])
}

func TestUserInfo_NonJSONRemoteBody(t *testing.T) {
	long := strings.Repeat("x", 500)
	remote := newRemote(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "<html>"+long)
	})

	rec, out := post(t, newRouter(remote.URL), `{"token":"abc"}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Invalid JSON response from API", out["error"])
	raw, _ := out["raw"].(string)
	assert.Len(t, raw, 200)
	assert.True(t, strings.HasPrefix(raw, "<html>"))
}

func TestUserInfo_TransportFailure(t *testing.T) {
	remote := httptest.NewServer(http.NotFoundHandler())
	url := remote.URL
	remote.Close()

	rec, out := post(t, newRouter(url), `{"token":"abc"}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Proxy failed to fetch user info", out["error"])
	assert.NotEmpty(t, out["message"])
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "ab", truncate("abc", 2))
	assert.Equal(t, "äö", truncate("äöü", 2))
	assert.Equal(t, "", truncate("", 3))
}
