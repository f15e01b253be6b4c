package secrets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorePassword_RejectsEmpty(t *testing.T) {
	err := StorePassword("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "password cannot be empty")
}

func TestFileFallback(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	t.Run("stores with restrictive permissions", func(t *testing.T) {
		require.NoError(t, storePasswordInFile("s3cret"))

		path, err := passwordFilePath()
		require.NoError(t, err)
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.True(t, info.Mode()&0077 == 0, "file should not be readable by group or others")

		loaded, err := loadPasswordFromFile()
		require.NoError(t, err)
		assert.Equal(t, "s3cret", loaded)
	})

	t.Run("trims trailing whitespace on load", func(t *testing.T) {
		path, err := passwordFilePath()
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(path, []byte("s3cret\n"), 0600))

		loaded, err := loadPasswordFromFile()
		require.NoError(t, err)
		assert.Equal(t, "s3cret", loaded)
	})

	t.Run("missing file is a clear error", func(t *testing.T) {
		require.NoError(t, deletePasswordFile())

		_, err := loadPasswordFromFile()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no hub password found")
	})

	t.Run("delete is idempotent", func(t *testing.T) {
		require.NoError(t, storePasswordInFile("s3cret"))
		require.NoError(t, deletePasswordFile())
		require.NoError(t, deletePasswordFile())
	})

	t.Run("creates the config directory", func(t *testing.T) {
		path, err := passwordFilePath()
		require.NoError(t, err)
		require.NoError(t, os.RemoveAll(filepath.Dir(path)))

		require.NoError(t, storePasswordInFile("s3cret"))

		info, err := os.Stat(filepath.Dir(path))
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	})
}
