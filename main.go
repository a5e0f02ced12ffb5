// feroxcrypt is a command-line utility for password-based file encryption.
package main

import (
	"fmt"
	"os"

	"github.com/feroxlabs/feroxcrypt/internal/commands"
)

// version is set at build time.
var version = "dev"

func main() {
	if err := commands.Execute(version); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
