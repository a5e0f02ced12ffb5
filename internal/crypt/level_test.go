package crypt_test

import (
	"testing"

	"github.com/feroxlabs/feroxcrypt/internal/crypt"
)

func TestLevelCostTable(t *testing.T) {
	t.Parallel()

	tests := []struct {
		level crypt.Level
		want  crypt.Params
	}{
		{level: crypt.Interactive, want: crypt.Params{Memory: 19456, Time: 2, Parallelism: 1}},
		{level: crypt.Moderate, want: crypt.Params{Memory: 65536, Time: 3, Parallelism: 1}},
		{level: crypt.Paranoid, want: crypt.Params{Memory: 262144, Time: 4, Parallelism: 1}},
	}

	for _, tc := range tests {
		t.Run(tc.level.String(), func(t *testing.T) {
			t.Parallel()

			if got := tc.level.Cost(); got != tc.want {
				t.Errorf("Cost() = %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	for _, level := range []crypt.Level{crypt.Interactive, crypt.Moderate, crypt.Paranoid} {
		parsed, err := crypt.ParseLevel(level.String())
		if err != nil {
			t.Fatalf("ParseLevel(%q) = %v", level.String(), err)
		}

		if parsed != level {
			t.Errorf("ParseLevel(%q) = %v, want %v", level.String(), parsed, level)
		}
	}

	if _, err := crypt.ParseLevel("extreme"); err == nil {
		t.Error("ParseLevel with unknown name must fail")
	}
}
