package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"serwer-tabel/internal/config"
	"serwer-tabel/internal/database/sqlite"
	"serwer-tabel/internal/files"
	"serwer-tabel/internal/logging"
	"serwer-tabel/internal/storage"
	"serwer-tabel/internal/websocket"

	"github.com/stretchr/testify/require"
)

const testPassword = "tajne-haslo"

type testAPI struct {
	srv     *Server
	handler http.Handler
	store   *sqlite.Store
}

const testMaxBodyBytes = 4 << 10

func newTestAPI(t *testing.T, maxBytes int64) *testAPI {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	dir := t.TempDir()

	store, err := sqlite.Open(ctx, filepath.Join(dir, "index.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	fs, err := storage.NewLocalStorage(filepath.Join(dir, "files"))
	require.NoError(t, err)

	cfg := &config.Config{
		JWT:    config.JWTConfig{Secret: "test-secret", AccessTTL: time.Hour, RefreshTTL: time.Hour},
		Upload: config.UploadConfig{MaxBytes: maxBytes, AllowedExtensions: []string{"csv"}},
		API:    config.APIConfig{MaxBodyBytes: testMaxBodyBytes},
		CORS:   config.CORSConfig{AllowedOrigins: []string{"*"}},
	}

	hub := websocket.NewHub(logging.Nop())
	go hub.Run(ctx)

	svc := files.NewService(store, fs, hub, logging.Nop(), files.Options{
		AllowedExtensions: cfg.Upload.AllowedExtensions,
		MaxUploadBytes:    cfg.Upload.MaxBytes,
	})
	srv := NewServer(cfg, store, svc, hub, logging.Nop())
	return &testAPI{srv: srv, handler: srv.Routes(), store: store}
}

func (a *testAPI) do(t *testing.T, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	a.handler.ServeHTTP(rr, req)
	return rr
}

func (a *testAPI) register(t *testing.T, username string) {
	t.Helper()
	body, _ := json.Marshal(RegisterRequest{Username: username, Password: testPassword})
	rr := a.do(t, httptest.NewRequest(http.MethodPost, "/api/v1/users", bytes.NewReader(body)))
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
}

// asUser authenticates req with basic credentials of a registered user.
func asUser(req *http.Request, username string) *http.Request {
	req.SetBasicAuth(username, testPassword)
	return req
}

func jsonRequest(t *testing.T, method, target string, v any) *http.Request {
	t.Helper()
	var body io.Reader = http.NoBody
	if v != nil {
		b, err := json.Marshal(v)
		require.NoError(t, err)
		body = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, target, body)
	req.Header.Set("Content-Type", "application/json")
	return req
}

// uploadRequest builds a multipart upload. With opts set, the options travel
// in a "json" file part; otherwise fields are sent as plain form values.
func uploadRequest(t *testing.T, filename, content string, opts *UploadOptions, fields map[string]string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if filename != "" {
		fw, err := mw.CreateFormFile("file", filename)
		require.NoError(t, err)
		_, err = fw.Write([]byte(content))
		require.NoError(t, err)
	}
	if opts != nil {
		jw, err := mw.CreateFormFile("json", "blob")
		require.NoError(t, err)
		require.NoError(t, json.NewEncoder(jw).Encode(opts))
	}
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/files", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v), rr.Body.String())
	return v
}

func requireError(t *testing.T, rr *httptest.ResponseRecorder, code int, status string) ErrorResponse {
	t.Helper()
	require.Equal(t, code, rr.Code, rr.Body.String())
	resp := decode[ErrorResponse](t, rr)
	require.Equal(t, status, resp.Status)
	return resp
}
