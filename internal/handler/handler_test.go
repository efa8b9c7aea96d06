package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Spyyy004/designbuddy/internal/config"
	"github.com/Spyyy004/designbuddy/internal/domain"
	"github.com/Spyyy004/designbuddy/internal/handler"
	"github.com/Spyyy004/designbuddy/internal/server"
)

type fakeService struct {
	calls  int
	lastIn *domain.UploadRequest
	result *domain.CaseStudyResult
	err    error
}

func (f *fakeService) Generate(ctx context.Context, req *domain.UploadRequest) (*domain.CaseStudyResult, error) {
	f.calls++
	f.lastIn = req
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func newTestRouter(svc *fakeService) http.Handler {
	cfg := &config.Config{
		App: config.AppConfig{
			AllowedOrigin: "http://localhost:3000",
			MaxFiles:      3,
			MaxFileSize:   10 * 1024 * 1024,
		},
	}
	h := handler.NewHandler(svc, &cfg.App, zap.NewNop())
	return server.NewRouter(h, cfg, zap.NewNop())
}

// multipartBody builds an /upload request body with the given file sizes and
// both text fields populated.
func multipartBody(t *testing.T, fileSizes map[string]int) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for name, size := range fileSizes {
		part, err := w.CreateFormFile("images", name)
		require.NoError(t, err)
		_, err = part.Write(bytes.Repeat([]byte("x"), size))
		require.NoError(t, err)
	}
	require.NoError(t, w.WriteField("thoughtProcess", "Explored three layouts"))
	require.NoError(t, w.WriteField("resultAchieved", "Conversion up 12%"))
	require.NoError(t, w.Close())
	return body, w.FormDataContentType()
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var out domain.ErrorResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out.Error
}

func TestUploadSuccess(t *testing.T) {
	svc := &fakeService{result: &domain.CaseStudyResult{
		ImageURLs:     []string{"https://blobs.test/1_a.png", "https://blobs.test/2_b.jpg"},
		CaseStudyText: "A case study.",
	}}
	router := newTestRouter(svc)

	body, contentType := multipartBody(t, map[string]int{"a.png": 500 * 1024, "b.jpg": 2 * 1024 * 1024})
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var out domain.CaseStudyResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Len(t, out.ImageURLs, 2)
	assert.NotEmpty(t, out.CaseStudyText)

	require.NotNil(t, svc.lastIn)
	assert.Equal(t, "Explored three layouts", svc.lastIn.ThoughtProcess)
	assert.Equal(t, "Conversion up 12%", svc.lastIn.ResultAchieved)
	assert.Len(t, svc.lastIn.Files, 2)
}

func TestUploadNoFiles(t *testing.T) {
	svc := &fakeService{}
	router := newTestRouter(svc)

	body, contentType := multipartBody(t, nil)
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "No files uploaded.", decodeError(t, rec))
	assert.Equal(t, 0, svc.calls)
}

func TestUploadTooManyFiles(t *testing.T) {
	svc := &fakeService{}
	router := newTestRouter(svc)

	files := map[string]int{}
	for i := 0; i < 4; i++ {
		files[fmt.Sprintf("file%d.png", i)] = 16
	}
	body, contentType := multipartBody(t, files)
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Too many files uploaded.", decodeError(t, rec))
	assert.Equal(t, 0, svc.calls)
}

func TestUploadOversizedFile(t *testing.T) {
	svc := &fakeService{}
	router := newTestRouter(svc)

	body, contentType := multipartBody(t, map[string]int{"big.png": 11 * 1024 * 1024})
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "File too large.", decodeError(t, rec))
	assert.Equal(t, 0, svc.calls)
}

func TestUploadStorageFailure(t *testing.T) {
	svc := &fakeService{err: fmt.Errorf("%w: bucket unavailable", domain.ErrStorage)}
	router := newTestRouter(svc)

	body, contentType := multipartBody(t, map[string]int{"a.png": 16})
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Failed to upload file.", decodeError(t, rec))
}

func TestUploadCompletionFailure(t *testing.T) {
	svc := &fakeService{err: fmt.Errorf("%w: api down", domain.ErrCompletion)}
	router := newTestRouter(svc)

	body, contentType := multipartBody(t, map[string]int{"a.png": 16})
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Failed to generate case study.", decodeError(t, rec))
	assert.NotContains(t, rec.Body.String(), "imageUrls")
}

func TestUploadUnclassifiedError(t *testing.T) {
	svc := &fakeService{err: errors.New("something odd")}
	router := newTestRouter(svc)

	body, contentType := multipartBody(t, map[string]int{"a.png": 16})
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Internal server error.", decodeError(t, rec))
}

func TestUnknownRoute(t *testing.T) {
	router := newTestRouter(&fakeService{})

	req := httptest.NewRequest(http.MethodGet, "/status", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Route not found.", decodeError(t, rec))
}

func TestHealthCheck(t *testing.T) {
	router := newTestRouter(&fakeService{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "OK")
}

func TestPreflightAllowedOrigin(t *testing.T) {
	router := newTestRouter(&fakeService{})

	req := httptest.NewRequest(http.MethodOptions, "/upload", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
}
