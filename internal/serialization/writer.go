package serialization

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/born-ml/evalnet/internal/tensor"
)

// Block is anything exposing its parameters as ordered flat vectors.
type Block interface {
	Params() []tensor.Vector
}

// Size returns the encoded size of p in bytes.
func Size(p Block) int64 {
	var n int64
	for _, v := range p.Params() {
		n += int64(v.Len()) * 4
	}
	return n
}

// Encode returns the flat binary image of p.
func Encode(p Block) []byte {
	buf := make([]byte, 0, Size(p))
	for _, v := range p.Params() {
		for _, x := range v {
			buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(x))
		}
	}
	return buf
}

// Write writes the flat binary image of p to w.
//
// Returns the number of bytes written.
func Write(w io.Writer, p Block) (int64, error) {
	n, err := w.Write(Encode(p))
	if err != nil {
		return int64(n), fmt.Errorf("failed to write parameters: %w", err)
	}
	return int64(n), nil
}

// WriteFile creates (or truncates) path and writes the flat binary image of
// p to it.
func WriteFile(path string, p Block) (err error) {
	//nolint:gosec // G304: File path comes from the caller, which is expected for exporting
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close file: %w", closeErr)
		}
	}()

	bw := bufio.NewWriter(file)
	if _, err := Write(bw, p); err != nil {
		return err
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to flush %q: %w", path, err)
	}
	return nil
}
