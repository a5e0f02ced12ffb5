package crypt

import (
	"bytes"
	"errors"
	"testing"
)

func TestDeriveMasterKeyDeterministic(t *testing.T) {
	t.Parallel()

	params := Interactive.Cost()
	salt := bytes.Repeat([]byte{0x5A}, SaltLen)

	first, err := deriveMasterKey([]byte("password"), salt, params)
	if err != nil {
		t.Fatalf("deriveMasterKey() = %v", err)
	}

	second, err := deriveMasterKey([]byte("password"), salt, params)
	if err != nil {
		t.Fatalf("deriveMasterKey() = %v", err)
	}

	if !bytes.Equal(first, second) {
		t.Error("identical inputs must derive identical keys")
	}

	if len(first) != MasterKeyLen {
		t.Errorf("key length = %d, want %d", len(first), MasterKeyLen)
	}

	otherSalt := bytes.Repeat([]byte{0x5B}, SaltLen)

	third, err := deriveMasterKey([]byte("password"), otherSalt, params)
	if err != nil {
		t.Fatalf("deriveMasterKey() = %v", err)
	}

	if bytes.Equal(first, third) {
		t.Error("different salts must derive different keys")
	}
}

func TestParamsValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		params  Params
		wantErr bool
	}{
		{name: "interactive table entry", params: Params{Memory: 19456, Time: 2, Parallelism: 1}},
		{name: "moderate table entry", params: Params{Memory: 65536, Time: 3, Parallelism: 1}},
		{name: "paranoid table entry", params: Params{Memory: 262144, Time: 4, Parallelism: 1}},
		{name: "zero memory", params: Params{Memory: 0, Time: 2, Parallelism: 1}, wantErr: true},
		{name: "memory below minimum", params: Params{Memory: 7, Time: 2, Parallelism: 1}, wantErr: true},
		{name: "memory below lane minimum", params: Params{Memory: 16, Time: 2, Parallelism: 4}, wantErr: true},
		{name: "zero time", params: Params{Memory: 19456, Time: 0, Parallelism: 1}, wantErr: true},
		{name: "zero parallelism", params: Params{Memory: 19456, Time: 2, Parallelism: 0}, wantErr: true},
		{name: "parallelism too wide", params: Params{Memory: 19456, Time: 2, Parallelism: 300}, wantErr: true},
		{name: "absurd memory", params: Params{Memory: 1 << 31, Time: 2, Parallelism: 1}, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			err := tc.params.validate()
			if tc.wantErr && err == nil {
				t.Errorf("validate(%+v) = nil, want error", tc.params)
			}

			if !tc.wantErr && err != nil {
				t.Errorf("validate(%+v) = %v", tc.params, err)
			}
		})
	}
}

func TestDeriveMasterKeyRejectsBadParams(t *testing.T) {
	t.Parallel()

	_, err := deriveMasterKey([]byte("pw"), bytes.Repeat([]byte{1}, SaltLen), Params{Memory: 1, Time: 0, Parallelism: 0})
	if !errors.Is(err, ErrKeyDerivation) {
		t.Fatalf("deriveMasterKey() = %v, want ErrKeyDerivation", err)
	}
}
