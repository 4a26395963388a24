package testutil

import (
	"io"
	"io/ioutil"
	"math/rand"
	"os"
	"testing"
)

// CreateDummyBuf creates a byte slice that is `size` big.
// It's filled with the repeating numbers [0...254].
func CreateDummyBuf(size int64) []byte {
	buf := make([]byte, size)

	for i := int64(0); i < size; i++ {
		// Be evil and stripe the data:
		buf[i] = byte(i % 255)
	}

	return buf
}

// CreateNonZeroBuf is like CreateDummyBuf, but never contains a zero byte.
// Data like this survives the zero-dropping decryption unchanged.
func CreateNonZeroBuf(size int64) []byte {
	buf := make([]byte, size)

	for i := int64(0); i < size; i++ {
		buf[i] = byte(i%255) + 1
	}

	return buf
}

// CreateRandomDummyBuf creates data that is hard to predict,
// but the same for every `seed`.
func CreateRandomDummyBuf(size, seed int64) []byte {
	buf := make([]byte, size)
	rand.New(rand.NewSource(seed)).Read(buf)
	return buf
}

// CreateFile creates a temporary file in the systems tmp-folder.
// The file will be `size` bytes big, filled with content from CreateNonZeroBuf.
func CreateFile(size int64) string {
	fd, err := ioutil.TempFile("", "desfile_test")
	if err != nil {
		panic("Cannot create temp file")
	}

	if _, err := fd.Write(CreateNonZeroBuf(size)); err != nil {
		panic(err)
	}

	if err := fd.Close(); err != nil {
		return ""
	}

	return fd.Name()
}

// Remover removes all files in paths recursively and errors when it fails.
// It is no error if there's nothing to delete. It's useful in defer statements.
func Remover(t *testing.T, paths ...string) {
	for _, path := range paths {
		if err := os.RemoveAll(path); err != nil {
			t.Errorf("removing temp directory failed: %v", err)
		}
	}
}

// DumbCopy copies src to dst in small, odd sized steps without using
// io.ReaderFrom or io.WriterTo. It exercises the Read/Write paths of streams.
func DumbCopy(dst io.Writer, src io.Reader) (int64, error) {
	buf := make([]byte, 13)
	total := int64(0)

	for {
		n, rerr := src.Read(buf)
		if n > 0 {
			wn, werr := dst.Write(buf[:n])
			total += int64(wn)

			if werr != nil {
				return total, werr
			}
		}

		if rerr == io.EOF {
			return total, nil
		}

		if rerr != nil {
			return total, rerr
		}
	}
}
