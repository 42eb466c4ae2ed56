// Copyright 2026 The Tetra Authors
// SPDX-License-Identifier: Apache-2.0

package cache

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/zeebo/blake3"
)

// Hash is a 32-byte BLAKE3 digest. A blob's hash is its identity: the
// cache stores every blob under the hex form of its hash, so key
// collisions are equivalent to content equality.
type Hash [32]byte

// HashBytes computes the BLAKE3 digest of data.
func HashBytes(data []byte) Hash {
	return blake3.Sum256(data)
}

// HashFile computes the BLAKE3 digest of the file at path. The file
// is streamed through the hash function (via io.Copy) to keep memory
// usage constant regardless of file size.
func HashFile(path string) (Hash, error) {
	file, err := os.Open(path)
	if err != nil {
		return Hash{}, fmt.Errorf("opening %s for hashing: %w", path, err)
	}
	defer file.Close()

	hasher := blake3.New()
	if _, err := io.Copy(hasher, file); err != nil {
		return Hash{}, fmt.Errorf("hashing %s: %w", path, err)
	}

	var digest Hash
	copy(digest[:], hasher.Sum(nil))
	return digest, nil
}

// FormatHash returns the hex-encoded string representation of a hash.
// This is the canonical format used in recipes, index records, and
// CLI output.
func FormatHash(hash Hash) string {
	return hex.EncodeToString(hash[:])
}

// ParseHash parses a 64-character hex string into a Hash.
func ParseHash(hexString string) (Hash, error) {
	var hash Hash
	decoded, err := hex.DecodeString(hexString)
	if err != nil {
		return hash, fmt.Errorf("parsing hash digest: %w", err)
	}
	if len(decoded) != 32 {
		return hash, fmt.Errorf("hash digest is %d bytes, want 32", len(decoded))
	}
	copy(hash[:], decoded)
	return hash, nil
}

// String returns the hex form. Identical to [FormatHash].
func (h Hash) String() string { return FormatHash(h) }

// MarshalText implements encoding.TextMarshaler. Hashes serialize as
// their hex form in CBOR index records.
func (h Hash) MarshalText() ([]byte, error) {
	return []byte(FormatHash(h)), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (h *Hash) UnmarshalText(data []byte) error {
	parsed, err := ParseHash(string(data))
	if err != nil {
		return err
	}
	*h = parsed
	return nil
}
