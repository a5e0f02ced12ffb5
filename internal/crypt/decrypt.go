package crypt

import (
	"bufio"
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/sha256"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/feroxlabs/feroxcrypt/internal/fileutil"
	"github.com/feroxlabs/feroxcrypt/internal/keyfile"
)

// DecryptOptions configures a single decryption flow.
type DecryptOptions struct {
	// Password is the user secret. The caller retains ownership.
	Password []byte

	// Keyfile must match the one used at encryption time, if any.
	Keyfile *keyfile.Keyfile

	// Slot, when set, tracks the output path for interrupt cleanup.
	Slot *fileutil.CleanupSlot

	// Progress, when set, is fed byte counts as chunks complete.
	Progress ProgressFunc
}

// Decrypt restores the original file from the container at sourcePath,
// writing it next to the container under the filename recorded in the
// header. Decryption always refuses to overwrite an existing target. The
// tag is verified in constant time after the whole body has streamed; on
// mismatch the partial plaintext is deleted and ErrAuthentication returned.
func Decrypt(sourcePath string, opts DecryptOptions) (err error) {
	info, err := os.Stat(sourcePath)
	if err != nil {
		return fmt.Errorf("stat source: %w", err)
	}

	if !info.Mode().IsRegular() {
		return fmt.Errorf("%w: %s", ErrNotAFile, sourcePath)
	}

	if !strings.HasSuffix(sourcePath, Extension) {
		return fmt.Errorf("%w: %s", ErrNotEncrypted, sourcePath)
	}

	source, err := os.Open(sourcePath) //nolint:gosec // path is user-supplied by design
	if err != nil {
		return fmt.Errorf("opening source file: %w", err)
	}
	defer source.Close()

	reader := bufio.NewReaderSize(source, chunkSize)

	hdr, err := readHeader(reader)
	if err != nil {
		return err
	}

	bodySize := info.Size() - int64(hdr.size()) - TagLen
	if bodySize < 0 {
		return fmt.Errorf("%w: file too short to hold an authentication tag", ErrCorruptHeader)
	}

	targetPath := filepath.Join(filepath.Dir(sourcePath), hdr.filename)
	if fileutil.Exists(targetPath) {
		return fmt.Errorf("%w: %s", ErrTargetExists, targetPath)
	}

	masterKey, err := deriveKeyMaterial(opts.Password, opts.Keyfile, hdr.salt[:], hdr.params)
	if err != nil {
		return err
	}
	defer wipe(masterKey)

	block, err := aes.NewCipher(masterKey[:aesKeyLen])
	if err != nil {
		return fmt.Errorf("creating cipher: %w", err)
	}

	stream := cipher.NewCTR(block, hdr.iv[:])
	mac := hmac.New(sha256.New, masterKey[aesKeyLen:])

	if opts.Slot != nil {
		opts.Slot.Set(targetPath)
		defer opts.Slot.Clear()
	}

	target, err := os.Create(targetPath) //nolint:gosec // name validated by readHeader
	if err != nil {
		return fmt.Errorf("creating target file: %w", err)
	}

	// The candidate plaintext on disk is untrustworthy until the tag
	// verifies, so any failure from here on removes it.
	defer func() {
		if err != nil {
			target.Close()        //nolint:errcheck,gosec // already failing
			os.Remove(targetPath) //nolint:errcheck,gosec // best-effort cleanup
		}
	}()

	writer := bufio.NewWriterSize(target, chunkSize)

	if err = decryptStream(io.LimitReader(reader, bodySize), writer, stream, mac, opts.Progress); err != nil {
		return err
	}

	storedTag := make([]byte, TagLen)
	if _, err = io.ReadFull(reader, storedTag); err != nil {
		return fmt.Errorf("reading authentication tag: %w", err)
	}

	if !hmac.Equal(mac.Sum(nil), storedTag) {
		return fmt.Errorf("%w: wrong password, wrong keyfile, or corrupted file", ErrAuthentication)
	}

	if err = writer.Flush(); err != nil {
		return fmt.Errorf("flushing target file: %w", err)
	}

	if err = target.Close(); err != nil {
		return fmt.Errorf("closing target file: %w", err)
	}

	return nil
}
