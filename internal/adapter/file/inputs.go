// Package file reads source extracts and writes built databases on the local
// filesystem. Both directions understand zstd-compressed files.
package file

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/couchcryptid/aero-refdb/internal/domain"
	"github.com/klauspost/compress/zstd"
)

var zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}

// Inputs opens source files. Each file is read fully into memory; a zstd
// frame is recognized by its magic number and decompressed.
type Inputs struct{}

// Open returns the decoded contents of path. A missing file is reported as
// domain.ErrMissingInput.
func (Inputs) Open(path string) (io.ReadCloser, error) {
	contents, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	return io.NopCloser(bytes.NewReader(contents)), nil
}

// ReadFile reads path, decompressing it when it is zstd.
func ReadFile(path string) ([]byte, error) {
	contents, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", domain.ErrMissingInput, path)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if !bytes.HasPrefix(contents, zstdMagic) {
		return contents, nil
	}

	zr, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(0))
	if err != nil {
		return nil, fmt.Errorf("zstd reader: %w", err)
	}
	defer zr.Close()
	decoded, err := zr.DecodeAll(contents, nil)
	if err != nil {
		return nil, fmt.Errorf("decompress %s: %w", path, err)
	}
	return decoded, nil
}
