package nn

import (
	"github.com/born-ml/evalnet/internal/serialization"
)

// WriteToBin writes the parameters of p to path as a flat little-endian
// float32 dump in Params order.
//
// The file has no header, so it can only be read back into a network of the
// same definition:
//
//	if err := nn.WriteToBin("net.bin", net); err != nil {
//	    log.Fatalf("export failed: %v", err)
//	}
func WriteToBin(path string, p Parameterized) error {
	return serialization.WriteFile(path, p)
}

// ReadFromBin loads parameters written by WriteToBin into p.
//
// Returns an error wrapping serialization.ErrSizeMismatch if the file does
// not have exactly the size of p's parameters.
func ReadFromBin(path string, p Parameterized) error {
	return serialization.ReadFile(path, p)
}
