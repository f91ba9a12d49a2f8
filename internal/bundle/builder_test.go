package bundle

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pagelift/pagelift-cli/internal/core/domain"
)

// writeTree creates files under dir, with keys as relative paths.
func writeTree(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

func TestHashContent(t *testing.T) {
	sum := sha256.Sum256([]byte("hello"))
	assert.Equal(t, sum[:], HashContent([]byte("hello")))
	assert.Len(t, HashContent(nil), domain.HashSize)
}

func TestBuild_HashesTree(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"index.html":     "<h1>home</h1>",
		"css/style.css":  "body { margin: 0 }",
		"blog/post.html": "<p>first</p>",
	})

	b, err := Build(dir)
	require.NoError(t, err)

	assert.Equal(t, 3, b.Root.FileCount())
	assert.Len(t, b.Table, 3)

	index := b.Root.Children["index.html"]
	require.NotNil(t, index)
	assert.False(t, index.IsDir())
	assert.Equal(t, HashContent([]byte("<h1>home</h1>")), index.Hash)

	css := b.Root.Children["css"]
	require.NotNil(t, css)
	assert.True(t, css.IsDir())
	require.NotNil(t, css.Children["style.css"])
}

func TestBuild_DeduplicatesIdenticalContent(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"a.txt":     "same bytes",
		"sub/b.txt": "same bytes",
		"c.txt":     "different",
	})

	b, err := Build(dir)
	require.NoError(t, err)

	assert.Equal(t, 3, b.Root.FileCount())
	assert.Len(t, b.Table, 2, "identical content stored once")

	hash := hex.EncodeToString(HashContent([]byte("same bytes")))
	content, ok := b.Table.Get(hash)
	require.True(t, ok)
	assert.Equal(t, []byte("same bytes"), content)
}

func TestBuild_SkipsVCSDir(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"index.html":       "<h1>home</h1>",
		".git/config":      "[core]",
		".git/HEAD":        "ref: refs/heads/main",
		"assets/.git/blob": "nested",
	})

	b, err := Build(dir)
	require.NoError(t, err)

	assert.Nil(t, b.Root.Children[".git"])
	assert.NotNil(t, b.Root.Children["assets"])
	assert.Nil(t, b.Root.Children["assets"].Children[".git"])
	assert.Equal(t, 1, b.Root.FileCount())
}

func TestBuild_EmptyDir(t *testing.T) {
	b, err := Build(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, 0, b.Root.FileCount())
	assert.True(t, b.Root.IsDir())
	assert.Empty(t, b.Table)
}

func TestResolveRoot_DefaultsToProjectPath(t *testing.T) {
	dir := t.TempDir()
	project := &domain.Project{Name: "demo", Path: dir}

	root, err := ResolveRoot(project)
	require.NoError(t, err)
	assert.Equal(t, dir, root)
}

func TestResolveRoot_PublishDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "dist"), 0o755))
	project := &domain.Project{Name: "demo", Path: dir, PublishDir: "dist"}

	root, err := ResolveRoot(project)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "dist"), root)
}

func TestResolveRoot_MissingPublishDir(t *testing.T) {
	project := &domain.Project{Name: "demo", Path: t.TempDir(), PublishDir: "dist"}

	_, err := ResolveRoot(project)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidConfig)
}

func TestEncode_Deterministic(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"index.html":    "<h1>home</h1>",
		"css/style.css": "body { margin: 0 }",
		"js/app.js":     "console.log(1)",
	})

	first, err := Build(dir)
	require.NoError(t, err)
	second, err := Build(dir)
	require.NoError(t, err)

	a, err := Encode(first.Root)
	require.NoError(t, err)
	b, err := Encode(second.Root)
	require.NoError(t, err)

	assert.Equal(t, a, b, "identical trees must serialize identically")
	assert.Equal(t, Identifier(a), Identifier(b))
}

func TestEncode_ContentChangesIdentifier(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"index.html": "v1"})
	first, err := Build(dir)
	require.NoError(t, err)
	a, err := Encode(first.Root)
	require.NoError(t, err)

	writeTree(t, dir, map[string]string{"index.html": "v2"})
	second, err := Build(dir)
	require.NoError(t, err)
	b, err := Encode(second.Root)
	require.NoError(t, err)

	assert.NotEqual(t, Identifier(a), Identifier(b))
}

func TestIdentifier_IsContentHash(t *testing.T) {
	encoded := []byte{0xa0} // empty CBOR map
	assert.Equal(t, HashContent(encoded), Identifier(encoded))
}
