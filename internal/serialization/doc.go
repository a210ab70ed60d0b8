// Package serialization writes and reads the flat binary image of a
// parameter block.
//
// The format is the raw parameter data and nothing else:
//
//	Format Structure:
//	  [block 0: float32 lanes, little-endian]
//	  [block 1: float32 lanes, little-endian]
//	  ...
//
// Blocks appear in the order returned by Params(), lanes in storage order
// (row-major for matrices). There is no magic, version, length field or
// checksum, so a file is exactly 4 bytes per scalar parameter and a reader
// must be built for the same network definition. Little-endian is the native
// byte order of amd64 and arm64, where a separate inference engine can map
// the file directly onto its own fixed-layout structs.
//
// Example usage:
//
//	// Export trained parameters
//	if err := serialization.WriteFile("net.bin", net); err != nil {
//	    log.Fatal(err)
//	}
//
//	// Load them into a network of the same definition
//	if err := serialization.ReadFile("net.bin", net); err != nil {
//	    log.Fatal(err)
//	}
package serialization
