package googlebooks

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, width, height int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestDownloadThumbnailResizesWideImages(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(pngBytes(t, 200, 100))
	}))
	defer server.Close()

	client := NewClient()
	savePath := filepath.Join(t.TempDir(), "covers", "book - cover.jpg")

	err := client.DownloadThumbnail(context.Background(), server.URL, savePath, 50)
	require.NoError(t, err)

	saved, err := imaging.Open(savePath)
	require.NoError(t, err)
	assert.Equal(t, 50, saved.Bounds().Dx())
}

func TestDownloadThumbnailKeepsSmallImages(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(pngBytes(t, 30, 45))
	}))
	defer server.Close()

	client := NewClient()
	savePath := filepath.Join(t.TempDir(), "book - cover.jpg")

	err := client.DownloadThumbnail(context.Background(), server.URL, savePath, 50)
	require.NoError(t, err)

	saved, err := imaging.Open(savePath)
	require.NoError(t, err)
	assert.Equal(t, 30, saved.Bounds().Dx())
}

func TestDownloadThumbnailRejectsErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient()
	savePath := filepath.Join(t.TempDir(), "book - cover.jpg")

	err := client.DownloadThumbnail(context.Background(), server.URL, savePath, 50)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status 404")
}

func TestDownloadThumbnailRejectsNonImageBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("definitely not an image"))
	}))
	defer server.Close()

	client := NewClient()
	savePath := filepath.Join(t.TempDir(), "book - cover.jpg")

	err := client.DownloadThumbnail(context.Background(), server.URL, savePath, 50)
	assert.Error(t, err)
}
