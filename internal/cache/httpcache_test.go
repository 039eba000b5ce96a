package cache

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPCache_SaveLoad(t *testing.T) {
	t.Parallel()
	c := &HTTPCache{Dir: t.TempDir()}
	ctx := context.Background()
	url := "https://example.com/page"

	require.NoError(t, c.Save(ctx, url, "text/html", `"v1"`, "Mon, 02 Jan 2006 15:04:05 GMT", []byte("<p>hi</p>")))

	meta, err := c.LoadMeta(ctx, url)
	require.NoError(t, err)
	assert.Equal(t, url, meta.URL)
	assert.Equal(t, "text/html", meta.ContentType)
	assert.Equal(t, `"v1"`, meta.ETag)
	assert.Equal(t, "Mon, 02 Jan 2006 15:04:05 GMT", meta.LastModified)
	assert.WithinDuration(t, time.Now(), meta.SavedAt, time.Minute)

	body, err := c.LoadBody(ctx, url)
	require.NoError(t, err)
	assert.Equal(t, "<p>hi</p>", string(body))

	_, err = c.LoadBody(ctx, "https://example.com/other")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestHTTPCache_Unconfigured(t *testing.T) {
	var c *HTTPCache
	_, err := c.LoadMeta(context.Background(), "https://example.com")
	assert.Error(t, err)
	assert.Error(t, (&HTTPCache{}).Save(context.Background(), "u", "", "", "", nil))
}

func TestHTTPCache_StrictPerms(t *testing.T) {
	t.Parallel()
	dir := filepath.Join(t.TempDir(), "http")
	c := &HTTPCache{Dir: dir, StrictPerms: true}
	url := "https://example.com/x"
	require.NoError(t, c.Save(context.Background(), url, "text/html", "etag", "", []byte("hello")))

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o700), info.Mode()&0o777)

	for _, name := range []string{Key(url) + ".body", Key(url) + ".meta.json"} {
		finfo, err := os.Stat(filepath.Join(dir, name))
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), finfo.Mode()&0o777, name)
	}
}

func TestKey_Stable(t *testing.T) {
	assert.Equal(t, Key("https://example.com"), Key("https://example.com"))
	assert.NotEqual(t, Key("https://example.com/a"), Key("https://example.com/b"))
}

func TestPurgeByAge(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	c := &HTTPCache{Dir: dir}
	ctx := context.Background()
	require.NoError(t, c.Save(ctx, "https://old.example", "text/html", "", "", []byte("old")))
	require.NoError(t, c.Save(ctx, "https://new.example", "text/html", "", "", []byte("new")))

	// age the first entry
	metaPath := filepath.Join(dir, Key("https://old.example")+".meta.json")
	old := HTTPEntry{URL: "https://old.example", SavedAt: time.Now().Add(-48 * time.Hour).UTC()}
	b, err := json.Marshal(old)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(metaPath, b, 0o644))

	removed, err := PurgeByAge(dir, 24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	_, err = c.LoadBody(ctx, "https://old.example")
	assert.Error(t, err)
	body, err := c.LoadBody(ctx, "https://new.example")
	require.NoError(t, err)
	assert.Equal(t, "new", string(body))

	removed, err = PurgeByAge(dir, 0)
	require.NoError(t, err)
	assert.Zero(t, removed)
}

func TestPurgeByAge_MissingDir(t *testing.T) {
	removed, err := PurgeByAge(filepath.Join(t.TempDir(), "absent"), time.Hour)
	require.NoError(t, err)
	assert.Zero(t, removed)
}

func TestClearDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "x.body"), []byte("x"), 0o644))
	require.NoError(t, ClearDir(dir))
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.Error(t, ClearDir("  "))
}
