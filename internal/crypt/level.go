package crypt

import "fmt"

// Level selects the Argon2id cost used when encrypting. The chosen cost is
// persisted in the container header, so decryption never needs the level.
type Level int

const (
	// Interactive is the fastest level, for frequently accessed files.
	Interactive Level = iota
	// Moderate is the recommended default.
	Moderate
	// Paranoid trades significant derivation time for maximum resistance
	// against brute force.
	Paranoid
)

// Params holds Argon2id cost parameters exactly as stored in the header.
type Params struct {
	// Memory cost in KiB.
	Memory uint32
	// Time cost in iterations.
	Time uint32
	// Parallelism in lanes.
	Parallelism uint32
}

// Cost returns the Argon2id parameters for the level.
func (l Level) Cost() Params {
	switch l {
	case Paranoid:
		return Params{Memory: 256 * 1024, Time: 4, Parallelism: 1}
	case Moderate:
		return Params{Memory: 64 * 1024, Time: 3, Parallelism: 1}
	case Interactive:
		fallthrough
	default:
		return Params{Memory: 19 * 1024, Time: 2, Parallelism: 1}
	}
}

// String returns the level name as accepted by ParseLevel.
func (l Level) String() string {
	switch l {
	case Paranoid:
		return "paranoid"
	case Moderate:
		return "moderate"
	case Interactive:
		return "interactive"
	default:
		return fmt.Sprintf("level(%d)", int(l))
	}
}

// ParseLevel converts a level name to a Level.
func ParseLevel(name string) (Level, error) {
	switch name {
	case "interactive":
		return Interactive, nil
	case "moderate":
		return Moderate, nil
	case "paranoid":
		return Paranoid, nil
	default:
		return 0, fmt.Errorf("unknown security level %q", name)
	}
}
