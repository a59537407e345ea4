package http

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/world-server/internal/auth"
	"github.com/MKhiriev/world-server/internal/hashing"
)

// newUploadRequest builds a multipart request with an optional file part and
// extra form fields.
func newUploadRequest(t *testing.T, filename string, content []byte, fields map[string]string) *http.Request {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if filename != "" {
		part, err := mw.CreateFormFile("file", filename)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/upload", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestUpload_StoresContentAddressedFile(t *testing.T) {
	// Arrange
	h := newTestHandler(t, map[string]string{"PUBLIC_ASSETS_URL": "https://cdn.example.com/assets/"})
	content := []byte("glTF-binary-model")
	want := hashing.Sum(content)

	// Act
	rec := httptest.NewRecorder()
	h.upload(rec, newUploadRequest(t, "Tree.GLB", content, nil))

	// Assert
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp uploadResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, want, resp.Hash)
	assert.Equal(t, want+".glb", resp.Filename)
	assert.Equal(t, "https://cdn.example.com/assets/"+want+".glb", resp.URL)

	stored, err := os.ReadFile(filepath.Join(h.cfg.World().AssetsDir(), want+".glb"))
	require.NoError(t, err)
	assert.Equal(t, content, stored)
}

func TestUpload_IsIdempotent(t *testing.T) {
	h := newTestHandler(t, nil)
	content := []byte("same bytes")

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		h.upload(rec, newUploadRequest(t, "a.png", content, nil))
		require.Equal(t, http.StatusOK, rec.Code)
	}

	entries, err := os.ReadDir(h.cfg.World().AssetsDir())
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestUpload_DeclaredHash(t *testing.T) {
	h := newTestHandler(t, nil)
	content := []byte("texture")

	rec := httptest.NewRecorder()
	h.upload(rec, newUploadRequest(t, "t.jpg", content, map[string]string{"hash": hashing.Sum(content)}))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	h.upload(rec, newUploadRequest(t, "t.jpg", content, map[string]string{"hash": hashing.Sum([]byte("other"))}))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpload_TooLarge(t *testing.T) {
	h := newTestHandler(t, map[string]string{"PUBLIC_MAX_UPLOAD_SIZE": "1"})
	content := bytes.Repeat([]byte{'x'}, 1024*1024+1)

	rec := httptest.NewRecorder()
	h.upload(rec, newUploadRequest(t, "big.bin", content, nil))

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	entries, err := os.ReadDir(h.cfg.World().AssetsDir())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestUpload_NoFile(t *testing.T) {
	h := newTestHandler(t, nil)

	rec := httptest.NewRecorder()
	h.upload(rec, newUploadRequest(t, "", nil, map[string]string{"note": "empty"}))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), ErrNoFile.Error())
}

func TestAssetExtension(t *testing.T) {
	tests := map[string]string{
		"model.glb":       ".glb",
		"PHOTO.JPG":       ".jpg",
		"../../etc/x.vrm": ".vrm",
		"noext":           "",
		"weird.ex t":      "",
		"archive.tar.gz":  ".gz",
	}
	for name, want := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, want, assetExtension(name))
		})
	}
}

func TestUpload_ClaimsAvailableAfterAuth(t *testing.T) {
	h := newTestHandler(t, nil)
	token, err := h.tokens.Sign(context.Background(), auth.Claims{"userId": "u-7"})
	require.NoError(t, err)

	var got auth.Claims
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = ClaimsFromContext(r.Context())
	})

	req := newUploadRequest(t, "a.png", []byte("x"), nil)
	req.Header.Set("Authorization", "Bearer "+token)
	h.auth(next).ServeHTTP(httptest.NewRecorder(), req)

	require.NotNil(t, got)
	assert.Equal(t, "u-7", got["userId"])
}
