// Package keyfile manages the optional auxiliary key material: a random
// blob that is combined with the password so that neither secret alone is
// enough to derive the master key.
package keyfile

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"

	"golang.org/x/crypto/argon2"
)

const (
	// MinSize is the smallest accepted keyfile, in bytes.
	MinSize = 64
	// MaxSize is the largest accepted keyfile, in bytes. Generated
	// keyfiles are always this size.
	MaxSize = 4 * 1024

	// DigestLen is the length of the digest derived from keyfile content.
	DigestLen = 32

	// Fixed Argon2id cost for digesting and combining. Deliberately lighter
	// than the security-level table: it runs twice per flow on top of the
	// main derivation.
	combineMemory  = 19456
	combineTime    = 2
	combineThreads = 1
)

// derivationSalt is fixed so the same keyfile content always reduces to the
// same digest, which decryption depends on.
var derivationSalt = []byte("ferox-encryptor-keyfile-salt") //nolint:gochecknoglobals

var (
	// ErrNotFound is returned when the keyfile path does not exist.
	ErrNotFound = errors.New("keyfile does not exist")
	// ErrNotAFile is returned when the keyfile path is not a regular file.
	ErrNotAFile = errors.New("keyfile path is not a regular file")
	// ErrInvalidSize is returned when the keyfile size is outside [MinSize, MaxSize].
	ErrInvalidSize = errors.New("invalid keyfile size")
)

// Keyfile holds keyfile content in memory for the duration of a flow.
// Call Destroy when done so the backing buffer is zeroed.
type Keyfile struct {
	data []byte
}

// Generate creates a new keyfile filled with MaxSize cryptographically
// secure random bytes.
func Generate() (*Keyfile, error) {
	data := make([]byte, MaxSize)
	if _, err := io.ReadFull(rand.Reader, data); err != nil {
		return nil, fmt.Errorf("generating keyfile data: %w", err)
	}

	return &Keyfile{data: data}, nil
}

// Load reads a keyfile from disk, enforcing the size bounds.
func Load(path string) (*Keyfile, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is user-supplied by design
	if err != nil {
		return nil, fmt.Errorf("reading keyfile %q: %w", path, err)
	}

	if len(data) < MinSize || len(data) > MaxSize {
		return nil, fmt.Errorf("%w: %d bytes (must be between %d and %d)",
			ErrInvalidSize, len(data), MinSize, MaxSize)
	}

	return &Keyfile{data: data}, nil
}

// Save writes the raw keyfile bytes to path with owner-only permissions.
func (k *Keyfile) Save(path string) error {
	const ownerReadWrite = 0o600

	if err := os.WriteFile(path, k.data, ownerReadWrite); err != nil {
		return fmt.Errorf("writing keyfile %q: %w", path, err)
	}

	return nil
}

// Validate checks that path exists, is a regular file, and has an
// acceptable size, without loading the content.
func Validate(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrNotFound, path)
		}

		return fmt.Errorf("reading keyfile metadata %q: %w", path, err)
	}

	if !info.Mode().IsRegular() {
		return fmt.Errorf("%w: %s", ErrNotAFile, path)
	}

	if info.Size() < MinSize || info.Size() > MaxSize {
		return fmt.Errorf("%w: %d bytes (must be between %d and %d)",
			ErrInvalidSize, info.Size(), MinSize, MaxSize)
	}

	return nil
}

// Digest reduces the keyfile content to a fixed-length value using Argon2id
// under the fixed derivation salt. Deterministic: reloading the same keyfile
// always yields the same digest.
func (k *Keyfile) Digest() []byte {
	return argon2.IDKey(k.data, derivationSalt, combineTime, combineMemory, combineThreads, DigestLen)
}

// Combine hashes the password using the keyfile digest as salt, producing
// the material fed to the main key derivation. An attacker needs both the
// password and the keyfile to reproduce it.
func (k *Keyfile) Combine(password []byte) []byte {
	digest := k.Digest()
	defer wipe(digest)

	return argon2.IDKey(password, digest, combineTime, combineMemory, combineThreads, DigestLen)
}

// Len returns the keyfile content length in bytes.
func (k *Keyfile) Len() int {
	return len(k.data)
}

// Destroy zeroes the backing buffer. The keyfile is unusable afterwards.
func (k *Keyfile) Destroy() {
	wipe(k.data)
	k.data = nil
}

// wipe overwrites b with zeros.
func wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}

	runtime.KeepAlive(b)
}
