package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/feroxlabs/feroxcrypt/internal/config"
	"github.com/feroxlabs/feroxcrypt/internal/logic"
)

// NewEncryptCommand creates a new cobra command for the encrypt subcommand.
func NewEncryptCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "encrypt [flags] paths...",
		Aliases: []string{"enc"},
		Short:   "Encrypt files or directories",
		Args:    cobra.MinimumNArgs(1),
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			return bindFlags(cmd)
		},
		RunE: func(_ *cobra.Command, args []string) error {
			// Unmarshal all config (from env vars and flags) into struct
			var cfg config.Config
			if err := viper.Unmarshal(&cfg); err != nil {
				return fmt.Errorf("parsing config: %w", err)
			}

			cfg.Paths = args

			if err := cfg.Validate(); err != nil {
				return err
			}

			return logic.Run(&cfg)
		},
	}

	cmd.Flags().StringP("level", "l", "moderate", "Security level: interactive, moderate or paranoid")
	cmd.Flags().BoolP("force", "f", false, "Overwrite existing encrypted files")
	cmd.Flags().BoolP("recursive", "r", false, "Recurse into subdirectories")
	cmd.Flags().StringSliceP("include", "i", nil, "Glob patterns of files to include")
	cmd.Flags().StringSliceP("exclude", "e", nil, "Glob patterns of files to exclude")
	cmd.Flags().String("include-from", "", "File with include patterns, one JSON array")
	cmd.Flags().String("exclude-from", "", "File with exclude patterns, one JSON array")

	return cmd
}
