package crypt

import (
	"bytes"
	"errors"
	"testing"
)

func TestHeaderMarshalReadRoundTrip(t *testing.T) {
	t.Parallel()

	in := &header{
		filename: "résumé (final).txt",
		params:   Moderate.Cost(),
	}

	copy(in.salt[:], bytes.Repeat([]byte{0x11}, SaltLen))
	copy(in.iv[:], bytes.Repeat([]byte{0x22}, IVLen))

	encoded := in.marshal()
	if len(encoded) != in.size() {
		t.Fatalf("marshal produced %d bytes, size() says %d", len(encoded), in.size())
	}

	out, err := readHeader(bytes.NewReader(encoded))
	if err != nil {
		t.Fatalf("readHeader() = %v", err)
	}

	if out.filename != in.filename {
		t.Errorf("filename = %q, want %q", out.filename, in.filename)
	}

	if out.salt != in.salt || out.iv != in.iv {
		t.Error("salt or IV not preserved")
	}

	if out.params != in.params {
		t.Errorf("params = %+v, want %+v", out.params, in.params)
	}
}

func TestReadHeaderRejectsInvalidUTF8(t *testing.T) {
	t.Parallel()

	h := &header{filename: "ab", params: Interactive.Cost()}
	encoded := h.marshal()

	// Corrupt the filename bytes with an invalid UTF-8 sequence.
	encoded[2] = 0xFF
	encoded[3] = 0xFE

	_, err := readHeader(bytes.NewReader(encoded))
	if !errors.Is(err, ErrCorruptHeader) {
		t.Fatalf("readHeader() = %v, want ErrCorruptHeader", err)
	}
}

func TestReadHeaderRejectsTruncation(t *testing.T) {
	t.Parallel()

	h := &header{filename: "document.txt", params: Interactive.Cost()}
	encoded := h.marshal()

	for _, keep := range []int{0, 1, 3, len(encoded) - 1} {
		if _, err := readHeader(bytes.NewReader(encoded[:keep])); !errors.Is(err, ErrCorruptHeader) {
			t.Errorf("readHeader() with %d bytes = %v, want ErrCorruptHeader", keep, err)
		}
	}
}

func TestCheckFilename(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		filename string
		wantErr  bool
	}{
		{name: "plain", filename: "notes.txt"},
		{name: "unicode with spaces", filename: "résumé (final).txt"},
		{name: "empty", filename: "", wantErr: true},
		{name: "dot", filename: ".", wantErr: true},
		{name: "dotdot", filename: "..", wantErr: true},
		{name: "forward slash", filename: "a/b.txt", wantErr: true},
		{name: "backslash", filename: `a\b.txt`, wantErr: true},
		{name: "traversal", filename: "../../etc/passwd", wantErr: true},
		{name: "nul byte", filename: "a\x00b", wantErr: true},
		{name: "leading dot ok", filename: ".hidden"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			err := checkFilename(tc.filename)
			if tc.wantErr && !errors.Is(err, ErrCorruptHeader) {
				t.Errorf("checkFilename(%q) = %v, want ErrCorruptHeader", tc.filename, err)
			}

			if !tc.wantErr && err != nil {
				t.Errorf("checkFilename(%q) = %v", tc.filename, err)
			}
		})
	}
}
