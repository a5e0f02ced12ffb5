package commands

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewRootCommand creates the root command with common configuration.
// It sets up environment variable binding and flag handling.
func NewRootCommand(version string) *cobra.Command {
	root := &cobra.Command{
		Use:   "feroxcrypt [flags] command [flags]",
		Short: "Password-based file encryption utility",
		Long: `A password-based file encryption utility built on Argon2id, AES-256-CTR
and HMAC-SHA256. Provides commands for encryption, decryption, and
keyfile management.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().IntP("parallel", "j", runtime.NumCPU(), "Number of parallel workers, defaults to number of CPUs")
	root.PersistentFlags().BoolP("quiet", "q", false, "Suppress non-error output")
	root.PersistentFlags().Bool("stats", false, "Print processing statistics")
	root.PersistentFlags().StringP("keyfile", "k", "", "Path to a keyfile mixed into the derived key")

	root.AddCommand(NewEncryptCommand(), NewDecryptCommand(), NewKeyfileCommand())

	return root
}

// bindFlags wires the command's flags and environment variables into viper.
// Environment variables use the FEROXCRYPT_ prefix with dashes mapped to
// underscores, e.g. FEROXCRYPT_EXCLUDE_FROM.
func bindFlags(cmd *cobra.Command) error {
	viper.SetEnvPrefix("feroxcrypt")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("binding flags: %w", err)
	}

	if err := viper.BindPFlags(cmd.InheritedFlags()); err != nil {
		return fmt.Errorf("binding inherited flags: %w", err)
	}

	return nil
}

// Execute runs the root command and returns any error encountered.
func Execute(version string) error {
	return NewRootCommand(version).Execute()
}
