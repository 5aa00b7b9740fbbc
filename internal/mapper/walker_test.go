package mapper

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codemap/internal/model"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func entryPaths(cm *model.CodeMap) []string {
	paths := make([]string, 0, len(cm.Entries))
	for _, e := range cm.Entries {
		paths = append(paths, e.Path)
	}
	return paths
}

func TestBuild_DirThenFilesThenSubdirs(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "b.txt"), "b")
	writeFile(t, filepath.Join(root, "z.txt"), "z")
	writeFile(t, filepath.Join(root, "a", "c.js"), "class C {}")

	cm, err := New(DefaultConfig()).Build(root)
	require.NoError(t, err)

	// The root block lists its files before any subdirectory, even
	// though "a" sorts ahead of "b.txt".
	assert.Equal(t, []string{"", "b.txt", "z.txt", "a", "a/c.js"}, entryPaths(cm))

	assert.True(t, cm.Entries[0].IsDir)
	assert.Equal(t, 0, cm.Entries[0].Depth)
	assert.Equal(t, 1, cm.Entries[1].Depth)
	assert.True(t, cm.Entries[3].IsDir)
	assert.Equal(t, 2, cm.Entries[4].Depth)
	assert.Equal(t, []string{"Class: C"}, cm.Entries[4].Sigs)
}

func TestBuild_Deterministic(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "gamma.js"), "function g() {}")
	writeFile(t, filepath.Join(root, "alpha.js"), "function a() {}")
	writeFile(t, filepath.Join(root, "beta", "inner.ts"), "interface I {}")

	first, err := New(DefaultConfig()).Build(root)
	require.NoError(t, err)
	second, err := New(DefaultConfig()).Build(root)
	require.NoError(t, err)

	assert.Equal(t, Render(first), Render(second))
}

func TestBuild_PrunesIgnoredDirs(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "node_modules", "lib", "x.js"), "class X {}")
	writeFile(t, filepath.Join(root, ".git", "HEAD"), "ref: refs/heads/main")
	writeFile(t, filepath.Join(root, "src", "app.js"), "class App {}")

	cm, err := New(DefaultConfig()).Build(root)
	require.NoError(t, err)

	paths := entryPaths(cm)
	assert.Equal(t, []string{"", "src", "src/app.js"}, paths)
	assert.Contains(t, cm.Ignored, "node_modules/")
	assert.Contains(t, cm.Ignored, ".git/")
}

func TestBuild_SkipsIgnoredFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "package-lock.json"), "{}")
	writeFile(t, filepath.Join(root, "app.js"), "class App {}")

	cm, err := New(DefaultConfig()).Build(root)
	require.NoError(t, err)

	assert.Equal(t, []string{"", "app.js"}, entryPaths(cm))
	assert.Contains(t, cm.Ignored, "package-lock.json")
}

func TestBuild_SignaturesOnlyOnCodeExtensions(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "app.js"), "class App {}")
	writeFile(t, filepath.Join(root, "notes.txt"), "class Fake {}")

	cm, err := New(DefaultConfig()).Build(root)
	require.NoError(t, err)

	byPath := make(map[string]model.MapEntry)
	for _, e := range cm.Entries {
		byPath[e.Path] = e
	}
	assert.Equal(t, []string{"Class: App"}, byPath["app.js"].Sigs)
	assert.Nil(t, byPath["notes.txt"].Sigs)
}

func TestBuild_EmptyDirStillListed(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "empty"), 0755))

	cm, err := New(DefaultConfig()).Build(root)
	require.NoError(t, err)

	assert.Equal(t, []string{"", "empty"}, entryPaths(cm))
}

func TestBuild_RootErrors(t *testing.T) {
	t.Run("missing root", func(t *testing.T) {
		_, err := New(DefaultConfig()).Build(filepath.Join(t.TempDir(), "nope"))
		assert.Error(t, err)
	})

	t.Run("root is a file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "file.txt")
		require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
		_, err := New(DefaultConfig()).Build(path)
		assert.Error(t, err)
	})
}

func TestBuild_SymlinkDirListedNotEntered(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need privileges on windows")
	}
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "real", "deep.js"), "class Deep {}")
	require.NoError(t, os.Symlink(filepath.Join(root, "real"), filepath.Join(root, "zlink")))

	cm, err := New(DefaultConfig()).Build(root)
	require.NoError(t, err)

	byPath := make(map[string]model.MapEntry)
	for _, e := range cm.Entries {
		byPath[e.Path] = e
	}
	require.Contains(t, byPath, "zlink")
	assert.True(t, byPath["zlink"].IsDir)
	// The link target is walked once, under its real name only.
	assert.Contains(t, byPath, "real/deep.js")
	assert.NotContains(t, byPath, "zlink/deep.js")
}

func TestBuild_BrokenSymlinkListedAsFile(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need privileges on windows")
	}
	root := t.TempDir()
	require.NoError(t, os.Symlink(filepath.Join(root, "gone"), filepath.Join(root, "dangling")))

	cm, err := New(DefaultConfig()).Build(root)
	require.NoError(t, err)

	byPath := make(map[string]model.MapEntry)
	for _, e := range cm.Entries {
		byPath[e.Path] = e
	}
	require.Contains(t, byPath, "dangling")
	assert.False(t, byPath["dangling"].IsDir)
}

func TestBuild_UnreadableDirWarns(t *testing.T) {
	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("needs unix permissions and a non-root user")
	}
	root := t.TempDir()
	locked := filepath.Join(root, "locked")
	writeFile(t, filepath.Join(locked, "hidden.js"), "class Hidden {}")
	require.NoError(t, os.Chmod(locked, 0000))
	t.Cleanup(func() { os.Chmod(locked, 0755) })

	cm, err := New(DefaultConfig()).Build(root)
	require.NoError(t, err)

	paths := entryPaths(cm)
	assert.Contains(t, paths, "locked")
	assert.NotContains(t, paths, "locked/hidden.js")
	require.Len(t, cm.Warnings, 1)
	assert.Contains(t, cm.Warnings[0], "locked")
}
