package uploads

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRead(t *testing.T) {
	t.Run("should load the file with its base name", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "demo.png")
		require.NoError(t, os.WriteFile(path, []byte{0x89, 0x50, 0x4e, 0x47}, 0644))

		upload, err := Read(path)
		require.NoError(t, err)
		require.NotNil(t, upload)
		assert.Equal(t, "demo.png", upload.Name)
		assert.Equal(t, []byte{0x89, 0x50, 0x4e, 0x47}, upload.Data)
	})

	t.Run("should treat an empty path as no upload", func(t *testing.T) {
		upload, err := Read("")
		require.NoError(t, err)
		assert.Nil(t, upload)
	})

	t.Run("should fail when the file does not exist", func(t *testing.T) {
		_, err := Read(filepath.Join(t.TempDir(), "missing.png"))
		assert.Error(t, err)
	})
}
