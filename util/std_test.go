package util

import (
	"bytes"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClamp(t *testing.T) {
	if Clamp(-1, 0, 1) != 0 {
		t.Errorf("Clamp: -1 is not in [0, 1]")
	}

	if Clamp(+1, 0, 1) != 1 {
		t.Errorf("Clamp: +1 should be [0, 1]")
	}

	if Clamp(0, 0, 1) != 0 {
		t.Errorf("Clamp: 0 should be [0, 1]")
	}

	if Clamp(+2, 0, 1) != 1 {
		t.Errorf("Clamp: 2 was not cut")
	}
}

func TestOmitBytes(t *testing.T) {
	require.Equal(t, "[1 2 3]", OmitBytes([]byte{1, 2, 3}, 10))
	require.Equal(t, "[1 2] ... [5 6]", OmitBytes([]byte{1, 2, 3, 4, 5, 6}, 2))
	require.Equal(t, "[]", OmitBytes(nil, 2))
}

func TestSizeAcc(t *testing.T) {
	N := 20
	data := []byte("Hello World, how are you today?")

	sizeAcc := &SizeAccumulator{}
	buffers := []*bytes.Buffer{}

	for i := 0; i < N; i++ {
		buf := bytes.NewBuffer(data)
		buffers = append(buffers, buf)
	}

	wg := &sync.WaitGroup{}
	wg.Add(N)

	for i := 0; i < N; i++ {
		go func(buf *bytes.Buffer) {
			defer wg.Done()

			for j := 0; j < len(data); j++ {
				miniBuf := []byte{0}
				buf.Read(miniBuf)
				if _, err := sizeAcc.Write(miniBuf); err != nil {
					t.Errorf("write(sizeAcc, miniBuf) failed: %v", err)
				}
			}
		}(buffers[i])
	}

	wg.Wait()
	if int(sizeAcc.Size()) != N*len(data) {
		t.Errorf("SizeAccumulator: Sizes differ: %d - %d", sizeAcc.Size(), N*len(data))
	}
}

func TestSuffixPath(t *testing.T) {
	tcs := []struct {
		path, suffix, expect string
	}{
		{"test.txt", "_encoded", "test_encoded.txt"},
		{"dir/test.txt", "_decoded", "dir/test_decoded.txt"},
		{"archive.tar.gz", "_encoded", "archive.tar_encoded.gz"},
		{"noext", "_encoded", "noext_encoded"},
		{"some.dir/noext", "_encoded", "some.dir/noext_encoded"},
		{".hidden", "_encoded", ".hidden_encoded"},
		{"test_encoded.txt", "_decoded", "test_encoded_decoded.txt"},
	}

	for _, tc := range tcs {
		require.Equal(t, tc.expect, SuffixPath(tc.path, tc.suffix), tc.path)
	}
}
