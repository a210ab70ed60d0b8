package serialization

import (
	"crypto/sha256"
	"io"
)

// ComputeChecksum computes the SHA-256 checksum of the flat binary image of p.
//
// The checksum is never stored in the file; it identifies an exported
// parameter block in logs and lets two exports be compared.
func ComputeChecksum(p Block) [32]byte {
	return sha256.Sum256(Encode(p))
}

// ComputeChecksumReader computes a SHA-256 checksum from an io.Reader.
// This is useful for computing checksums of exported files without loading
// them entirely into memory.
func ComputeChecksumReader(r io.Reader) ([32]byte, error) {
	h := sha256.New()
	if _, err := io.Copy(h, r); err != nil {
		return [32]byte{}, err
	}
	var sum [32]byte
	copy(sum[:], h.Sum(nil))
	return sum, nil
}
