package keyfile_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/feroxlabs/feroxcrypt/internal/keyfile"
)

func TestGenerateSaveLoadRoundTrip(t *testing.T) {
	t.Parallel()

	kf, err := keyfile.Generate()
	if err != nil {
		t.Fatalf("Generate() = %v", err)
	}
	defer kf.Destroy()

	if kf.Len() != keyfile.MaxSize {
		t.Fatalf("generated keyfile is %d bytes, want %d", kf.Len(), keyfile.MaxSize)
	}

	path := filepath.Join(t.TempDir(), "test.key")
	if err := kf.Save(path); err != nil {
		t.Fatalf("Save() = %v", err)
	}

	loaded, err := keyfile.Load(path)
	if err != nil {
		t.Fatalf("Load() = %v", err)
	}
	defer loaded.Destroy()

	if !bytes.Equal(kf.Digest(), loaded.Digest()) {
		t.Error("digest of saved and reloaded keyfile differ")
	}
}

func TestLoadSizeBounds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		size    int
		wantErr bool
	}{
		{name: "too small", size: keyfile.MinSize - 1, wantErr: true},
		{name: "minimum", size: keyfile.MinSize},
		{name: "maximum", size: keyfile.MaxSize},
		{name: "too large", size: keyfile.MaxSize + 1, wantErr: true},
		{name: "empty", size: 0, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), "kf")
			if err := os.WriteFile(path, bytes.Repeat([]byte{0xAB}, tc.size), 0o600); err != nil {
				t.Fatalf("writing fixture: %v", err)
			}

			kf, err := keyfile.Load(path)

			if tc.wantErr {
				if !errors.Is(err, keyfile.ErrInvalidSize) {
					t.Fatalf("Load() = %v, want ErrInvalidSize", err)
				}

				return
			}

			if err != nil {
				t.Fatalf("Load() = %v", err)
			}

			kf.Destroy()
		})
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	valid := filepath.Join(dir, "valid.key")
	if err := os.WriteFile(valid, bytes.Repeat([]byte{1}, keyfile.MinSize), 0o600); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	small := filepath.Join(dir, "small.key")
	if err := os.WriteFile(small, []byte("tiny"), 0o600); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	tests := []struct {
		name    string
		path    string
		wantErr error
	}{
		{name: "valid", path: valid},
		{name: "missing", path: filepath.Join(dir, "nope.key"), wantErr: keyfile.ErrNotFound},
		{name: "directory", path: dir, wantErr: keyfile.ErrNotAFile},
		{name: "too small", path: small, wantErr: keyfile.ErrInvalidSize},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			err := keyfile.Validate(tc.path)

			if tc.wantErr == nil {
				if err != nil {
					t.Fatalf("Validate() = %v", err)
				}

				return
			}

			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("Validate() = %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestDigestDeterministic(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "kf")
	if err := os.WriteFile(path, bytes.Repeat([]byte{0x42}, 128), 0o600); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	first, err := keyfile.Load(path)
	if err != nil {
		t.Fatalf("Load() = %v", err)
	}
	defer first.Destroy()

	second, err := keyfile.Load(path)
	if err != nil {
		t.Fatalf("Load() = %v", err)
	}
	defer second.Destroy()

	if !bytes.Equal(first.Digest(), second.Digest()) {
		t.Error("same content must produce the same digest")
	}

	if len(first.Digest()) != keyfile.DigestLen {
		t.Errorf("digest length = %d, want %d", len(first.Digest()), keyfile.DigestLen)
	}
}

func TestCombineDependsOnBothInputs(t *testing.T) {
	t.Parallel()

	kfA, err := keyfile.Generate()
	if err != nil {
		t.Fatalf("Generate() = %v", err)
	}
	defer kfA.Destroy()

	kfB, err := keyfile.Generate()
	if err != nil {
		t.Fatalf("Generate() = %v", err)
	}
	defer kfB.Destroy()

	base := kfA.Combine([]byte("password"))

	if bytes.Equal(base, kfA.Combine([]byte("different"))) {
		t.Error("combine must depend on the password")
	}

	if bytes.Equal(base, kfB.Combine([]byte("password"))) {
		t.Error("combine must depend on the keyfile")
	}

	if !bytes.Equal(base, kfA.Combine([]byte("password"))) {
		t.Error("combine must be deterministic")
	}
}
