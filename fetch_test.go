package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchServiceRead(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/book.txt" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte("ABABABA"))
	}))
	defer srv.Close()

	fetcher := NewFetchService(DefaultConfig())
	ctx := context.Background()

	data, err := fetcher.Read(ctx, srv.URL+"/book.txt")
	require.NoError(t, err)
	assert.Equal(t, "ABABABA", string(data))

	_, err = fetcher.Read(ctx, srv.URL+"/missing.txt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP error: 404")

	path := filepath.Join(t.TempDir(), "local.txt")
	require.NoError(t, os.WriteFile(path, []byte("local"), 0o644))
	data, err = fetcher.Read(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, "local", string(data))

	_, err = fetcher.Read(ctx, filepath.Join(t.TempDir(), "absent"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestIsURL(t *testing.T) {
	assert.True(t, IsURL("http://example.com/a"))
	assert.True(t, IsURL("https://example.com/a"))
	assert.False(t, IsURL("ftp://example.com/a"))
	assert.False(t, IsURL("notes.txt"))
}
