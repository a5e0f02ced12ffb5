package logic

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"runtime"

	"golang.org/x/term"
)

// PasswordEnvVar names the environment variable consulted before prompting,
// for scripted use.
const PasswordEnvVar = "FEROXCRYPT_PASSWORD"

// readPassword obtains the password from the environment or the terminal.
// confirm asks for the password twice; encryption flows use it so a typo
// cannot lock data behind an unknown password.
func readPassword(confirm bool) ([]byte, error) {
	if env := os.Getenv(PasswordEnvVar); env != "" {
		return []byte(env), nil
	}

	password, err := promptPassword("Enter password: ")
	if err != nil {
		return nil, err
	}

	if len(password) == 0 {
		return nil, errors.New("password must not be empty")
	}

	if !confirm {
		return password, nil
	}

	again, err := promptPassword("Confirm password: ")
	if err != nil {
		wipe(password)

		return nil, err
	}

	defer wipe(again)

	if !bytes.Equal(password, again) {
		wipe(password)

		return nil, errors.New("passwords do not match")
	}

	return password, nil
}

func promptPassword(prompt string) ([]byte, error) {
	stdin := int(os.Stdin.Fd())

	if !term.IsTerminal(stdin) {
		return nil, fmt.Errorf("stdin is not a terminal; set %s instead", PasswordEnvVar)
	}

	fmt.Fprint(os.Stderr, prompt)

	password, err := term.ReadPassword(stdin)

	fmt.Fprintln(os.Stderr)

	if err != nil {
		return nil, fmt.Errorf("reading password: %w", err)
	}

	return password, nil
}

// wipe overwrites b with zeros.
func wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}

	runtime.KeepAlive(b)
}
