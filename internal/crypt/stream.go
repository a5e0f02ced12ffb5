package crypt

import (
	"crypto/cipher"
	"fmt"
	"hash"
	"io"
	"sync"
)

// chunkSize bounds memory use per flow regardless of file size. Chunk
// boundaries carry no meaning on disk: N chunks and 1 chunk produce
// identical ciphertext.
const chunkSize = 4 * 1024 * 1024

//nolint:gochecknoglobals
var chunkPool = sync.Pool{
	New: func() any {
		return make([]byte, chunkSize)
	},
}

// ProgressFunc observes completed chunks. It receives the number of bytes
// just processed; purely observational, no back-pressure.
type ProgressFunc func(n int)

// encryptStream reads plaintext from r, encrypts it in place, feeds the
// ciphertext to the authenticator, and writes it to w. Encrypt-then-MAC:
// the tag always covers exactly the bytes on disk.
func encryptStream(r io.Reader, w io.Writer, stream cipher.Stream, mac hash.Hash, progress ProgressFunc) error {
	buf := chunkPool.Get().([]byte) //nolint:forcetypeassert
	defer chunkPool.Put(buf)        //nolint:staticcheck

	for {
		n, readErr := r.Read(buf)
		if n > 0 {
			chunk := buf[:n]

			stream.XORKeyStream(chunk, chunk)
			mac.Write(chunk)

			if _, err := w.Write(chunk); err != nil {
				return fmt.Errorf("writing ciphertext: %w", err)
			}

			if progress != nil {
				progress(n)
			}
		}

		if readErr == io.EOF {
			return nil
		}

		if readErr != nil {
			return fmt.Errorf("reading plaintext: %w", readErr)
		}
	}
}

// decryptStream reads ciphertext from r, feeds it to the authenticator
// before decrypting in place, and writes the plaintext to w. The MAC sees
// only ciphertext, in the same order the cipher consumes it, so the caller
// can reproduce and verify the stored tag after the stream ends.
func decryptStream(r io.Reader, w io.Writer, stream cipher.Stream, mac hash.Hash, progress ProgressFunc) error {
	buf := chunkPool.Get().([]byte) //nolint:forcetypeassert
	defer chunkPool.Put(buf)        //nolint:staticcheck

	for {
		n, readErr := r.Read(buf)
		if n > 0 {
			chunk := buf[:n]

			mac.Write(chunk)
			stream.XORKeyStream(chunk, chunk)

			if _, err := w.Write(chunk); err != nil {
				return fmt.Errorf("writing plaintext: %w", err)
			}

			if progress != nil {
				progress(n)
			}
		}

		if readErr == io.EOF {
			return nil
		}

		if readErr != nil {
			return fmt.Errorf("reading ciphertext: %w", readErr)
		}
	}
}
