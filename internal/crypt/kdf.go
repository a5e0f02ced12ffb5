package crypt

import (
	"fmt"
	"runtime"

	"golang.org/x/crypto/argon2"

	"github.com/feroxlabs/feroxcrypt/internal/keyfile"
)

const (
	// MasterKeyLen is the derived master key length: a 32-byte AES-256 key
	// followed by a 32-byte HMAC key.
	MasterKeyLen = 64

	aesKeyLen = 32

	// Bounds for cost parameters read from a header. Argon2 itself requires
	// memory >= 8*parallelism and at least one iteration; the upper bounds
	// keep a crafted header from asking for gigabytes of memory.
	maxMemoryCost  = 4 * 1024 * 1024 // KiB
	maxTimeCost    = 1 << 24
	maxParallelism = 255
)

// validate rejects parameter triples the derivation primitive would refuse
// or that are too expensive to honor.
func (p Params) validate() error {
	if p.Parallelism < 1 || p.Parallelism > maxParallelism {
		return fmt.Errorf("parallelism %d out of range [1, %d]", p.Parallelism, maxParallelism)
	}

	if p.Time < 1 || p.Time > maxTimeCost {
		return fmt.Errorf("time cost %d out of range [1, %d]", p.Time, maxTimeCost)
	}

	if p.Memory < 8*p.Parallelism || p.Memory > maxMemoryCost {
		return fmt.Errorf("memory cost %d KiB out of range [%d, %d]", p.Memory, 8*p.Parallelism, maxMemoryCost)
	}

	return nil
}

// deriveMasterKey derives the 64-byte master key from the password material
// and salt using Argon2id (version 0x13). Deterministic for identical
// inputs. The caller owns the returned key and must wipe it.
func deriveMasterKey(material, salt []byte, params Params) ([]byte, error) {
	if err := params.validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKeyDerivation, err)
	}

	return argon2.IDKey(material, salt, params.Time, params.Memory, uint8(params.Parallelism), MasterKeyLen), nil
}

// deriveKeyMaterial resolves the password material (combining with the
// keyfile when present) and runs the main derivation.
func deriveKeyMaterial(password []byte, kf *keyfile.Keyfile, salt []byte, params Params) ([]byte, error) {
	material := password

	if kf != nil {
		combined := kf.Combine(password)
		defer wipe(combined)

		material = combined
	}

	return deriveMasterKey(material, salt, params)
}

// wipe overwrites b with zeros.
func wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}

	runtime.KeepAlive(b)
}
