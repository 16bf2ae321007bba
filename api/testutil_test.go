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
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/aesthetic-webworks/agency-site-backend/database"
	"github.com/aesthetic-webworks/agency-site-backend/models"
	"github.com/aesthetic-webworks/agency-site-backend/storage"
)

const testSecret = "test-secret"

// queryCounter counts executed SQL statements so tests can assert query
// budgets (the no-N+1 contract on project listing).
type queryCounter struct {
	count atomic.Int64
}

func (c *queryCounter) LogMode(gormlogger.LogLevel) gormlogger.Interface { return c }
func (c *queryCounter) Info(context.Context, string, ...any)             {}
func (c *queryCounter) Warn(context.Context, string, ...any)             {}
func (c *queryCounter) Error(context.Context, string, ...any)            {}
func (c *queryCounter) Trace(context.Context, time.Time, func() (string, int64), error) {
	c.count.Add(1)
}

type testEnv struct {
	router  *chi.Mux
	db      database.Database
	gdb     *gorm.DB
	images  *storage.ImageStore
	queries *queryCounter
}

// newTestEnv spins up the full router over an on-disk sqlite database (with
// foreign keys enforced) and a throwaway upload directory.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	counter := &queryCounter{}
	dbPath := filepath.Join(t.TempDir(), "test.db")
	gdb, err := gorm.Open(sqlite.Open(dbPath+"?_pragma=foreign_keys(1)"), &gorm.Config{
		TranslateError: true,
		Logger:         counter,
	})
	require.NoError(t, err)
	require.NoError(t, models.Migrate(gdb))

	images, err := storage.NewImageStore(t.TempDir())
	require.NoError(t, err)

	db := database.New(gdb)
	router := newRouter(db, images, withConfig(map[string]string{
		"JWT_SECRET":       testSecret,
		"ACCEPTED_ORIGINS": "*",
	}))

	return &testEnv{router: router, db: db, gdb: gdb, images: images, queries: counter}
}

func (e *testEnv) do(t *testing.T, method, path, token, contentType string, body io.Reader) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) doJSON(t *testing.T, method, path, token string, payload any) *httptest.ResponseRecorder {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)
	return e.do(t, method, path, token, "application/json", bytes.NewReader(body))
}

// signup registers a user through the API and returns its bearer token.
func (e *testEnv) signup(t *testing.T, username, password string) string {
	t.Helper()

	rec := e.doJSON(t, http.MethodPost, "/api/auth/signup", "", map[string]string{
		"username": username,
		"password": password,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func decodeJSON[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var value T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &value), rec.Body.String())
	return value
}

// multipartBody builds a multipart form with the given value fields and an
// optional single file part.
func multipartBody(t *testing.T, fields map[string]string, fileField, fileName string, fileBytes []byte) (io.Reader, string) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for key, value := range fields {
		require.NoError(t, w.WriteField(key, value))
	}
	if fileField != "" {
		fw, err := w.CreateFormFile(fileField, fileName)
		require.NoError(t, err)
		_, err = fw.Write(fileBytes)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func pngBytes() []byte {
	return append([]byte("\x89PNG\r\n\x1a\n"), bytes.Repeat([]byte{0}, 64)...)
}

func jpegBytes() []byte {
	return append([]byte{0xFF, 0xD8, 0xFF, 0xE0}, bytes.Repeat([]byte{0}, 64)...)
}

func oversizedPNGBytes() []byte {
	return append(pngBytes(), make([]byte, storage.MaxImageSize)...)
}

// uploadedFiles lists the filenames currently present in the upload dir.
func (e *testEnv) uploadedFiles(t *testing.T) []string {
	t.Helper()

	matches, err := filepath.Glob(filepath.Join(e.images.Dir(), "*"))
	require.NoError(t, err)

	names := make([]string, len(matches))
	for i, match := range matches {
		names[i] = filepath.Base(match)
	}
	return names
}

// fileExists reports whether the web path's file is present on disk.
func (e *testEnv) fileExists(t *testing.T, webPath string) bool {
	t.Helper()

	name := strings.TrimPrefix(webPath, storage.URLPrefix+"/")
	for _, existing := range e.uploadedFiles(t) {
		if existing == name {
			return true
		}
	}
	return false
}
