package serialization

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
)

// Decode fills the parameters of p from a flat binary image.
//
// data must be exactly Size(p) bytes long.
func Decode(data []byte, p Block) error {
	if want := Size(p); int64(len(data)) != want {
		return fmt.Errorf("%w: got %d bytes, want %d", ErrSizeMismatch, len(data), want)
	}
	off := 0
	for _, v := range p.Params() {
		for i := range v {
			v[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[off:]))
			off += 4
		}
	}
	return nil
}

// Read fills the parameters of p with Size(p) bytes from r.
//
// Returns ErrShortRead if r ends before every parameter is filled; p may
// then be partially overwritten.
func Read(r io.Reader, p Block) (int64, error) {
	buf := make([]byte, Size(p))
	n, err := io.ReadFull(r, buf)
	if err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
			return int64(n), fmt.Errorf("%w: read %d of %d bytes", ErrShortRead, n, len(buf))
		}
		return int64(n), fmt.Errorf("failed to read parameters: %w", err)
	}
	return int64(n), Decode(buf, p)
}

// ReadFile loads the flat binary image at path into p.
//
// The file must be exactly Size(p) bytes; otherwise a *SizeError wrapping
// ErrSizeMismatch is returned and p is left untouched.
func ReadFile(path string, p Block) error {
	//nolint:gosec // G304: File path comes from the caller, which is expected for loading
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	info, err := file.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat %q: %w", path, err)
	}
	if want := Size(p); info.Size() != want {
		return &SizeError{Path: path, Got: info.Size(), Want: want}
	}

	if _, err := Read(bufio.NewReader(file), p); err != nil {
		return fmt.Errorf("failed to load %q: %w", path, err)
	}
	return nil
}
