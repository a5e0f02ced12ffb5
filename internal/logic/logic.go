// Package logic wires configuration, credentials, and the batch layer into
// complete encrypt/decrypt runs.
package logic

import (
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/feroxlabs/feroxcrypt/internal/batch"
	"github.com/feroxlabs/feroxcrypt/internal/config"
	"github.com/feroxlabs/feroxcrypt/internal/fileutil"
	"github.com/feroxlabs/feroxcrypt/internal/keyfile"
)

// Run is the main logic of the application: it resolves credentials and
// patterns, installs the interrupt cleanup handler, and drives one batch
// over the configured paths.
func Run(cfg *config.Config) error {
	start := time.Now()

	level, err := cfg.SecurityLevel()
	if err != nil {
		return err
	}

	batchCfg := batch.Config{
		Level:     level,
		Overwrite: cfg.Force,
		Recursive: cfg.Recursive,
		Parallel:  cfg.Parallel,
	}

	if batchCfg.Include, batchCfg.Exclude, err = loadPatterns(cfg); err != nil {
		return err
	}

	kf, err := loadKeyfile(cfg.Keyfile)
	if err != nil {
		return err
	}

	if kf != nil {
		defer kf.Destroy()
	}

	password, err := readPassword(!cfg.Decrypt)
	if err != nil {
		return err
	}
	defer wipe(password)

	slots := fileutil.NewSlotGroup()

	stop := notifyCleanup(slots, cfg.Quiet)
	defer stop()

	total := &batch.Result{}

	for _, path := range cfg.Paths {
		info, err := os.Stat(path)
		if err != nil {
			return fmt.Errorf("stat %q: %w", path, err)
		}

		var result *batch.Result

		switch {
		case info.IsDir() && cfg.Decrypt:
			result, err = batch.DecryptDir(path, password, kf, batchCfg, slots)
		case info.IsDir():
			result, err = batch.EncryptDir(path, password, kf, batchCfg, slots)
		case cfg.Decrypt:
			result = batch.DecryptFiles([]string{path}, password, kf, batchCfg, slots)
		default:
			result = batch.EncryptFiles([]string{path}, password, kf, batchCfg, slots)
		}

		if err != nil {
			return err
		}

		total.Merge(result)
	}

	report(total, cfg, time.Since(start))

	if total.Failed > 0 {
		return fmt.Errorf("%d of %d files failed", total.Failed, total.Failed+total.Succeeded)
	}

	return nil
}

// loadPatterns merges CLI patterns with pattern-list files.
func loadPatterns(cfg *config.Config) (includes, excludes []string, err error) {
	includes = append(includes, cfg.Include...)
	excludes = append(excludes, cfg.Exclude...)

	if cfg.IncludeFrom != "" {
		patterns, err := batch.LoadPatterns(cfg.IncludeFrom)
		if err != nil {
			return nil, nil, fmt.Errorf("loading include patterns: %w", err)
		}

		includes = append(includes, patterns...)
	}

	if cfg.ExcludeFrom != "" {
		patterns, err := batch.LoadPatterns(cfg.ExcludeFrom)
		if err != nil {
			return nil, nil, fmt.Errorf("loading exclude patterns: %w", err)
		}

		excludes = append(excludes, patterns...)
	}

	return includes, excludes, nil
}

// loadKeyfile validates and loads the keyfile when a path was given.
func loadKeyfile(path string) (*keyfile.Keyfile, error) {
	if path == "" {
		return nil, nil //nolint:nilnil // absent keyfile is a valid state
	}

	if err := keyfile.Validate(path); err != nil {
		return nil, err
	}

	return keyfile.Load(path)
}

// report prints failures, and stats when requested.
func report(total *batch.Result, cfg *config.Config, duration time.Duration) {
	for _, failure := range total.Failures {
		fmt.Fprintf(os.Stderr, "Error processing %q: %v\n", failure.Path, failure.Err)
	}

	if !cfg.Quiet {
		fmt.Printf("Processed %d file(s)\n", total.Succeeded) //nolint:forbidigo
	}

	if cfg.Stats {
		printStats(total, duration)
	}
}

func printStats(total *batch.Result, duration time.Duration) {
	fmt.Fprintf(os.Stderr, "\nStats\n")
	fmt.Fprintf(os.Stderr, "  Processed: %d\n", total.Succeeded)
	fmt.Fprintf(os.Stderr, "  Errors:    %d\n", total.Failed)
	//nolint:gosec // TotalBytes is a sum of file sizes, never negative
	fmt.Fprintf(os.Stderr, "  Size:      %s\n", humanize.IBytes(uint64(max(0, total.TotalBytes))))
	fmt.Fprintf(os.Stderr, "  Duration:  %s\n", duration.Round(time.Millisecond))
}
