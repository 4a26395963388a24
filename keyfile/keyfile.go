// Package keyfile reads and writes DES keys stored as text files.
//
// A key file holds the 64 character '0'/'1' form of the key. Surrounding
// whitespace (like a trailing newline added by an editor) is ignored when
// loading. Shorter or longer bit strings are accepted and handled like
// des.ParseKey does.
package keyfile

import (
	"bytes"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/sahib/desfile/des"
)

// Load reads the key stored at `path`.
func Load(path string) (des.Key, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return des.Key{}, errors.Wrap(err, "failed to read key file")
	}

	return Parse(data)
}

// Parse parses the contents of a key file.
func Parse(data []byte) (des.Key, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return des.Key{}, errors.New("key file is empty")
	}

	key, err := des.ParseKey(string(data))
	if err != nil {
		return des.Key{}, errors.Wrap(err, "failed to parse key")
	}

	return key, nil
}

// Generate reads a random key from `r` (normally crypto/rand.Reader)
// and fixes up the parity bits so every byte has odd parity.
func Generate(r io.Reader) (des.Key, error) {
	buf := make([]byte, des.KeySize)
	if _, err := io.ReadFull(r, buf); err != nil {
		return des.Key{}, errors.Wrap(err, "failed to read random key material")
	}

	key, err := des.KeyFromBytes(buf)
	if err != nil {
		return des.Key{}, err
	}

	return key.WithOddParity(), nil
}

// Save writes `key` to `path`. Missing parent directories are created.
// The file is only readable by the owner.
func Save(path string, key des.Key) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return errors.Wrap(err, "failed to create key directory")
		}
	}

	if err := ioutil.WriteFile(path, []byte(key.String()), 0600); err != nil {
		return errors.Wrapf(err, "failed to write key file %s", path)
	}

	return nil
}
