// Package crypt implements the feroxcrypt container format: Argon2id key
// derivation, AES-256-CTR streaming encryption, and HMAC-SHA256
// authentication in Encrypt-then-MAC order. Files are processed in bounded
// chunks, so memory use is independent of file size, and partial outputs
// are removed on every failure path.
package crypt
