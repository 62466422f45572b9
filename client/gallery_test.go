package client_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/inkdex/inkdex/client"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_DownloadPortfolio(t *testing.T) {
	images := map[string]string{
		"/images/one.jpg": "first image bytes",
		"/images/two.jpg": "second image bytes",
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := images[r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		assert.Equal(t, "Bearer test-credential", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(body))
	}))
	defer server.Close()

	dir := t.TempDir()
	studio := &client.Studio{
		ID:   "s1",
		Name: "Iron Rose Tattoo",
		PortfolioURLs: []string{
			server.URL + "/images/one.jpg",
			server.URL + "/images/two.jpg",
		},
	}

	err := newTestClient(server.URL).DownloadPortfolio(context.Background(), studio, dir, 2)

	require.NoError(t, err)
	one, err := os.ReadFile(filepath.Join(dir, "iron-rose-tattoo", "one.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "first image bytes", string(one))
	two, err := os.ReadFile(filepath.Join(dir, "iron-rose-tattoo", "two.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "second image bytes", string(two))
}

func TestClient_DownloadPortfolioReportsFailedImages(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/images/good.jpg" {
			_, _ = w.Write([]byte("ok"))
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	dir := t.TempDir()
	studio := &client.Studio{
		ID:   "s1",
		Name: "Iron Rose",
		PortfolioURLs: []string{
			server.URL + "/images/good.jpg",
			server.URL + "/images/broken.jpg",
		},
	}

	err := newTestClient(server.URL).DownloadPortfolio(context.Background(), studio, dir, 1)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken.jpg")
	// The good image still lands on disk.
	_, statErr := os.Stat(filepath.Join(dir, "iron-rose", "good.jpg"))
	assert.NoError(t, statErr)
}

func TestClient_DownloadPortfolioHonorsRateLimit(t *testing.T) {
	client.SetGalleryRateLimit(1 << 20)
	defer client.SetGalleryRateLimit(0)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("limited image bytes"))
	}))
	defer server.Close()

	dir := t.TempDir()
	studio := &client.Studio{
		ID:            "s1",
		Name:          "Iron Rose",
		PortfolioURLs: []string{server.URL + "/images/one.jpg"},
	}

	err := newTestClient(server.URL).DownloadPortfolio(context.Background(), studio, dir, 1)

	require.NoError(t, err)
	data, err := os.ReadFile(filepath.Join(dir, "iron-rose", "one.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "limited image bytes", string(data))
}

func TestClient_DownloadPortfolioNoImagesIsANoOp(t *testing.T) {
	dir := t.TempDir()
	studio := &client.Studio{ID: "s1", Name: "Empty"}

	err := newTestClient("http://unused.invalid").DownloadPortfolio(context.Background(), studio, dir, 2)

	require.NoError(t, err)
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
