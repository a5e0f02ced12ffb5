package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/feroxlabs/feroxcrypt/internal/fileutil"
	"github.com/feroxlabs/feroxcrypt/internal/keyfile"
)

// NewKeyfileCommand creates the keyfile command group with its generate and
// check subcommands.
func NewKeyfileCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keyfile",
		Short: "Manage keyfiles",
	}

	cmd.AddCommand(newKeyfileGenerateCommand(), newKeyfileCheckCommand())

	return cmd
}

func newKeyfileGenerateCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:     "generate <path>",
		Aliases: []string{"gen"},
		Short:   "Generate a new random keyfile",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]

			if fileutil.Exists(path) && !force {
				return fmt.Errorf("keyfile %q already exists, use --force to overwrite", path)
			}

			kf, err := keyfile.Generate()
			if err != nil {
				return fmt.Errorf("generating keyfile: %w", err)
			}
			defer kf.Destroy()

			if err := kf.Save(path); err != nil {
				return fmt.Errorf("saving keyfile: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Generated keyfile %q (%d bytes)\n", path, kf.Len())

			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing keyfile")

	return cmd
}

func newKeyfileCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check <path>",
		Short: "Validate that a file is usable as a keyfile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]

			if err := keyfile.Validate(path); err != nil {
				return fmt.Errorf("checking keyfile %q: %w", path, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Keyfile %q is valid\n", path)

			return nil
		},
	}
}
