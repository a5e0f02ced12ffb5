package crypt

import "errors"

var (
	// ErrNotAFile is returned when a source path is not a regular file.
	ErrNotAFile = errors.New("not a regular file")
	// ErrAlreadyEncrypted is returned when encrypting a file that already
	// carries the container suffix.
	ErrAlreadyEncrypted = errors.New("file is already encrypted")
	// ErrNotEncrypted is returned when decrypting a file without the
	// container suffix.
	ErrNotEncrypted = errors.New("file does not carry the encrypted suffix")
	// ErrTargetExists is returned when the output path already exists and
	// overwriting was not permitted.
	ErrTargetExists = errors.New("target file already exists")
	// ErrCorruptHeader is returned when the container header cannot be decoded.
	ErrCorruptHeader = errors.New("corrupt container header")
	// ErrFilenameTooLong is returned when the original filename exceeds the
	// 2-byte length field.
	ErrFilenameTooLong = errors.New("filename exceeds 65535 bytes")
	// ErrKeyDerivation is returned when the cost parameters are rejected.
	ErrKeyDerivation = errors.New("key derivation failed")
	// ErrAuthentication is returned when the computed tag does not match the
	// stored tag. Wrong password, wrong keyfile, and corrupted ciphertext
	// are indistinguishable here.
	ErrAuthentication = errors.New("authentication failed")
)
