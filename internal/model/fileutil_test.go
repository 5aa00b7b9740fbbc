package model

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetFilePreview(t *testing.T) {
	t.Run("keeps the head and counts the rest", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "big.txt")
		var b strings.Builder
		for i := 1; i <= 30; i++ {
			fmt.Fprintf(&b, "line %d\n", i)
		}
		require.NoError(t, os.WriteFile(path, []byte(b.String()), 0644))

		p := GetFilePreview(path, 10)
		assert.Empty(t, p.ErrorMsg)
		require.Len(t, p.Lines, 10)
		assert.Equal(t, "line 1", p.Lines[0])
		assert.Equal(t, "line 10", p.Lines[9])
		assert.Equal(t, 30, p.Total)
		assert.True(t, p.Truncated)
	})

	t.Run("short file is not truncated", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "small.txt")
		require.NoError(t, os.WriteFile(path, []byte("only\ntwo\n"), 0644))

		p := GetFilePreview(path, 10)
		assert.Empty(t, p.ErrorMsg)
		assert.Equal(t, []string{"only", "two"}, p.Lines)
		assert.Equal(t, 2, p.Total)
		assert.False(t, p.Truncated)
	})

	t.Run("missing file reports the error", func(t *testing.T) {
		p := GetFilePreview(filepath.Join(t.TempDir(), "gone.txt"), 10)
		assert.NotEmpty(t, p.ErrorMsg)
		assert.Empty(t, p.Lines)
	})
}
