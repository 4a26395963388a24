package defaults

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/sahib/config"
	"github.com/stretchr/testify/require"
)

func TestDefaultValues(t *testing.T) {
	cfg, err := config.Open(nil, Defaults, config.StrictnessPanic)
	require.Nil(t, err)

	require.Equal(t, "text", cfg.String("cipher.format"))
	require.Equal(t, int64(0), cfg.Int("cipher.workers"))
	require.Equal(t, int64(4096), cfg.Int("cipher.chunk_blocks"))
	require.Equal(t, "_encoded", cfg.String("files.encrypt_suffix"))
	require.Equal(t, "_decoded", cfg.String("files.decrypt_suffix"))
	require.Equal(t, "", cfg.String("files.key_path"))
	require.Equal(t, "info", cfg.String("log.level"))
	require.True(t, cfg.Bool("log.colors"))
}

func TestValidation(t *testing.T) {
	cfg, err := config.Open(nil, Defaults, config.StrictnessPanic)
	require.Nil(t, err)

	require.NotNil(t, cfg.Set("cipher.format", "hex"))
	require.Nil(t, cfg.Set("cipher.format", "binary"))
	require.Equal(t, "binary", cfg.String("cipher.format"))

	require.NotNil(t, cfg.Set("cipher.workers", int64(2000)))
	require.Nil(t, cfg.Set("cipher.workers", int64(4)))
	require.Equal(t, int64(4), cfg.Int("cipher.workers"))

	require.NotNil(t, cfg.Set("cipher.chunk_blocks", int64(0)))
}

func TestSaveAndOpen(t *testing.T) {
	dir, err := ioutil.TempDir("", "desfile-defaults-test")
	require.Nil(t, err)
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "nested", "config.yml")

	cfg, err := OpenConfig(path)
	require.Nil(t, err)
	require.Equal(t, "text", cfg.String("cipher.format"))

	require.Nil(t, cfg.Set("files.encrypt_suffix", "_enc"))
	require.Nil(t, SaveConfig(cfg, path))

	loaded, err := OpenMigratedConfig(path)
	require.Nil(t, err)
	require.Equal(t, "_enc", loaded.String("files.encrypt_suffix"))
	require.Equal(t, "_decoded", loaded.String("files.decrypt_suffix"))
}

func TestOpenBrokenConfig(t *testing.T) {
	dir, err := ioutil.TempDir("", "desfile-defaults-test")
	require.Nil(t, err)
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "config.yml")
	require.Nil(t, ioutil.WriteFile(path, []byte("cipher: [this is not: valid"), 0600))

	_, err = OpenConfig(path)
	require.NotNil(t, err)
}
