// Package commands provides the command-line interface for the feroxcrypt
// tool.
//
// It implements commands for:
//   - encryption
//   - decryption
//   - keyfile management
//
// The package handles command-line parsing, configuration validation,
// and environment variable binding through cobra and viper.
package commands
