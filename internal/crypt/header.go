package crypt

import (
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"
	"unicode/utf8"
)

const (
	// Extension is the suffix added to encrypted containers.
	Extension = ".feroxcrypt"

	// SaltLen is the per-file Argon2 salt length.
	SaltLen = 16
	// IVLen is the AES-CTR initialization vector length.
	IVLen = 16
	// TagLen is the HMAC-SHA256 authentication tag length.
	TagLen = sha256.Size

	paramsLen      = 12 // three uint32 cost parameters
	filenameLenLen = 2
	maxFilenameLen = math.MaxUint16
)

// header holds the container metadata written before the ciphertext.
// Fields are produced once and never mutated afterwards.
type header struct {
	filename string
	salt     [SaltLen]byte
	iv       [IVLen]byte
	params   Params
}

// size returns the encoded header length in bytes.
func (h *header) size() int {
	return filenameLenLen + len(h.filename) + SaltLen + IVLen + paramsLen
}

// marshal encodes the header fields in their fixed on-disk order:
// filename length, filename, salt, IV, cost parameters. All integers are
// little-endian; there is no padding or alignment.
func (h *header) marshal() []byte {
	buf := make([]byte, 0, h.size())

	buf = binary.LittleEndian.AppendUint16(buf, uint16(len(h.filename)))
	buf = append(buf, h.filename...)
	buf = append(buf, h.salt[:]...)
	buf = append(buf, h.iv[:]...)
	buf = binary.LittleEndian.AppendUint32(buf, h.params.Memory)
	buf = binary.LittleEndian.AppendUint32(buf, h.params.Time)
	buf = binary.LittleEndian.AppendUint32(buf, h.params.Parallelism)

	return buf
}

// readHeader decodes a header from r, validating the filename on the way.
func readHeader(r io.Reader) (*header, error) {
	var lenBytes [filenameLenLen]byte
	if _, err := io.ReadFull(r, lenBytes[:]); err != nil {
		return nil, corrupt("reading filename length", err)
	}

	filenameLen := int(binary.LittleEndian.Uint16(lenBytes[:]))

	filenameBytes := make([]byte, filenameLen)
	if _, err := io.ReadFull(r, filenameBytes); err != nil {
		return nil, corrupt("reading filename", err)
	}

	if !utf8.Valid(filenameBytes) {
		return nil, fmt.Errorf("%w: filename is not valid UTF-8", ErrCorruptHeader)
	}

	filename := string(filenameBytes)
	if err := checkFilename(filename); err != nil {
		return nil, err
	}

	h := &header{filename: filename}

	if _, err := io.ReadFull(r, h.salt[:]); err != nil {
		return nil, corrupt("reading salt", err)
	}

	if _, err := io.ReadFull(r, h.iv[:]); err != nil {
		return nil, corrupt("reading IV", err)
	}

	var paramBytes [paramsLen]byte
	if _, err := io.ReadFull(r, paramBytes[:]); err != nil {
		return nil, corrupt("reading cost parameters", err)
	}

	h.params = Params{
		Memory:      binary.LittleEndian.Uint32(paramBytes[0:4]),
		Time:        binary.LittleEndian.Uint32(paramBytes[4:8]),
		Parallelism: binary.LittleEndian.Uint32(paramBytes[8:12]),
	}

	return h, nil
}

// checkFilename rejects names that would escape the target directory when
// joined, or that cannot name a file at all.
func checkFilename(name string) error {
	if name == "" || name == "." || name == ".." {
		return fmt.Errorf("%w: unusable filename %q", ErrCorruptHeader, name)
	}

	if strings.ContainsAny(name, `/\`) || strings.ContainsRune(name, 0) {
		return fmt.Errorf("%w: filename %q contains path separators", ErrCorruptHeader, name)
	}

	return nil
}

// corrupt wraps a short read as a header error. Unexpected EOF means the
// file is too small to hold a complete header.
func corrupt(stage string, err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: file too short (%s)", ErrCorruptHeader, stage)
	}

	return fmt.Errorf("%s: %w", stage, err)
}
