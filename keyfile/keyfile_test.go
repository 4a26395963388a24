package keyfile

import (
	"bytes"
	"crypto/rand"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/sahib/desfile/des"
	"github.com/stretchr/testify/require"
)

const testKeyBits = "0001001100110100010101110111100110011011101111001101111111110001"

func withTempDir(t *testing.T, fn func(dir string)) {
	dir, err := ioutil.TempDir("", "desfile-keyfile-test")
	require.Nil(t, err)

	defer os.RemoveAll(dir)
	fn(dir)
}

func TestLoadTrimsWhitespace(t *testing.T) {
	withTempDir(t, func(dir string) {
		path := filepath.Join(dir, "key.txt")
		require.Nil(t, ioutil.WriteFile(path, []byte("  "+testKeyBits+"\r\n"), 0600))

		key, err := Load(path)
		require.Nil(t, err)
		require.Equal(t, uint64(0x133457799BBCDFF1), key.Uint64())
	})
}

func TestSaveLoad(t *testing.T) {
	withTempDir(t, func(dir string) {
		path := filepath.Join(dir, "sub", "key.txt")
		key := des.KeyFromUint64(0x0E329232EA6D0D73)
		require.Nil(t, Save(path, key))

		data, err := ioutil.ReadFile(path)
		require.Nil(t, err)
		require.Len(t, data, des.KeyBits)

		loaded, err := Load(path)
		require.Nil(t, err)
		require.Equal(t, key, loaded)

		info, err := os.Stat(path)
		require.Nil(t, err)
		require.Equal(t, os.FileMode(0600), info.Mode().Perm())
	})
}

func TestLoadMissing(t *testing.T) {
	_, err := Load("/this/path/should/really/not/exist/key.txt")
	require.NotNil(t, err)
	require.True(t, os.IsNotExist(errors.Cause(err)))
}

func TestParseBadKey(t *testing.T) {
	_, err := Parse([]byte("0101 0101"))
	require.True(t, des.IsFormatError(err))

	_, err = Parse([]byte("\n\n"))
	require.NotNil(t, err)
	require.False(t, des.IsFormatError(err))
}

func TestParseShortKey(t *testing.T) {
	key, err := Parse([]byte("101"))
	require.Nil(t, err)
	require.Equal(t, uint64(5), key.Uint64())
}

func TestGenerate(t *testing.T) {
	seen := make(map[uint64]bool)
	for idx := 0; idx < 100; idx++ {
		key, err := Generate(rand.Reader)
		require.Nil(t, err)
		require.True(t, key.HasOddParity())

		require.False(t, seen[key.Uint64()])
		seen[key.Uint64()] = true
	}
}

func TestGenerateDeterministicSource(t *testing.T) {
	key, err := Generate(bytes.NewReader([]byte{0x13, 0x34, 0x57, 0x79, 0x9B, 0xBC, 0xDF, 0xF0}))
	require.Nil(t, err)
	require.Equal(t, uint64(0x133457799BBCDFF1), key.Uint64())
}

func TestGenerateShortSource(t *testing.T) {
	_, err := Generate(bytes.NewReader([]byte{1, 2, 3}))
	require.NotNil(t, err)
}
