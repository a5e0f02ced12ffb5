package crypt

import (
	"bufio"
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/feroxlabs/feroxcrypt/internal/fileutil"
	"github.com/feroxlabs/feroxcrypt/internal/keyfile"
)

// EncryptOptions configures a single encryption flow.
type EncryptOptions struct {
	// Password is the user secret. The caller retains ownership; it is not
	// wiped here.
	Password []byte

	// Level selects the Argon2id cost persisted in the header.
	Level Level

	// Keyfile, when set, is combined with the password so neither secret
	// alone can derive the master key.
	Keyfile *keyfile.Keyfile

	// Overwrite permits replacing an existing target container.
	Overwrite bool

	// Slot, when set, tracks the output path for interrupt cleanup.
	Slot *fileutil.CleanupSlot

	// Progress, when set, is fed byte counts as chunks complete.
	Progress ProgressFunc
}

// Encrypt transforms the file at sourcePath into an encrypted container at
// sourcePath + Extension. On any failure after the target file was created,
// the partial output is removed.
func Encrypt(sourcePath string, opts EncryptOptions) (err error) {
	info, err := os.Stat(sourcePath)
	if err != nil {
		return fmt.Errorf("stat source: %w", err)
	}

	if !info.Mode().IsRegular() {
		return fmt.Errorf("%w: %s", ErrNotAFile, sourcePath)
	}

	if strings.HasSuffix(sourcePath, Extension) {
		return fmt.Errorf("%w: %s", ErrAlreadyEncrypted, sourcePath)
	}

	targetPath := sourcePath + Extension
	if !opts.Overwrite && fileutil.Exists(targetPath) {
		return fmt.Errorf("%w: %s (use overwrite to replace)", ErrTargetExists, targetPath)
	}

	filename := filepath.Base(sourcePath)
	if len(filename) > maxFilenameLen {
		return fmt.Errorf("%w: %q", ErrFilenameTooLong, filename)
	}

	if !utf8.ValidString(filename) {
		return fmt.Errorf("filename %q is not valid UTF-8", filename)
	}

	hdr := &header{filename: filename, params: opts.Level.Cost()}

	if _, err := io.ReadFull(rand.Reader, hdr.salt[:]); err != nil {
		return fmt.Errorf("generating salt: %w", err)
	}

	if _, err := io.ReadFull(rand.Reader, hdr.iv[:]); err != nil {
		return fmt.Errorf("generating IV: %w", err)
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

	source, err := os.Open(sourcePath) //nolint:gosec // path is user-supplied by design
	if err != nil {
		return fmt.Errorf("opening source file: %w", err)
	}
	defer source.Close()

	// Record the output path before the first byte is written, so an
	// asynchronous interrupt can find and delete it.
	if opts.Slot != nil {
		opts.Slot.Set(targetPath)
		defer opts.Slot.Clear()
	}

	target, err := os.Create(targetPath) //nolint:gosec // derived from the source path
	if err != nil {
		return fmt.Errorf("creating target file: %w", err)
	}

	defer func() {
		if err != nil {
			target.Close()                       //nolint:errcheck,gosec // already failing
			os.Remove(targetPath)                //nolint:errcheck,gosec // best-effort cleanup
		}
	}()

	writer := bufio.NewWriterSize(target, chunkSize)

	if _, err = writer.Write(hdr.marshal()); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	if err = encryptStream(bufio.NewReaderSize(source, chunkSize), writer, stream, mac, opts.Progress); err != nil {
		return err
	}

	if _, err = writer.Write(mac.Sum(nil)); err != nil {
		return fmt.Errorf("writing authentication tag: %w", err)
	}

	if err = writer.Flush(); err != nil {
		return fmt.Errorf("flushing target file: %w", err)
	}

	if err = target.Close(); err != nil {
		return fmt.Errorf("closing target file: %w", err)
	}

	return nil
}
