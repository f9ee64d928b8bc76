package hashutil

import (
	"crypto/sha256"
	"encoding/hex"
	"io"

	"github.com/arthur-debert/makecatalogs/pkg/types"
)

// FileChecksum returns the hex-encoded SHA-256 digest of the file at path.
func FileChecksum(s types.Storage, path string) (string, error) {
	file, err := s.Open(path)
	if err != nil {
		return "", err
	}
	defer func() {
		_ = file.Close()
	}()

	return ReaderChecksum(file)
}

// ReaderChecksum returns the hex-encoded SHA-256 digest of everything read from r.
func ReaderChecksum(r io.Reader) (string, error) {
	hash := sha256.New()
	if _, err := io.Copy(hash, r); err != nil {
		return "", err
	}
	return hex.EncodeToString(hash.Sum(nil)), nil
}
