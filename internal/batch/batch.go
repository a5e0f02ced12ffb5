// Package batch applies encryption or decryption flows to many files,
// with directory walking, glob filtering, and bounded parallelism. Per-file
// failures accumulate in the result instead of aborting the batch.
package batch

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/feroxlabs/feroxcrypt/internal/crypt"
	"github.com/feroxlabs/feroxcrypt/internal/fileutil"
	"github.com/feroxlabs/feroxcrypt/internal/keyfile"
)

// Config holds the parameters of one batch run.
type Config struct {
	// Level is the security level used when encrypting.
	Level crypt.Level

	// Overwrite permits replacing existing encryption targets.
	Overwrite bool

	// Recursive walks subdirectories; otherwise only the directory's
	// immediate files are considered.
	Recursive bool

	// Include holds glob patterns; when non-empty, only matching files are
	// processed. Patterns match the file's base name or its slash-separated
	// path relative to the walked directory.
	Include []string

	// Exclude holds glob patterns; matching files are always skipped.
	Exclude []string

	// Parallel bounds the number of concurrently running flows.
	Parallel int
}

// Failure records one file the batch could not process.
type Failure struct {
	Path string
	Err  error
}

// Result accumulates the outcome of a batch run.
type Result struct {
	// Succeeded counts files processed without error.
	Succeeded int

	// Failed counts files that reported an error.
	Failed int

	// TotalBytes sums the source sizes of successfully processed files.
	TotalBytes int64

	// Failures lists each failed path with its error.
	Failures []Failure
}

// Merge folds another result into r.
func (r *Result) Merge(other *Result) {
	r.Succeeded += other.Succeeded
	r.Failed += other.Failed
	r.TotalBytes += other.TotalBytes
	r.Failures = append(r.Failures, other.Failures...)
}

// EncryptFiles encrypts every listed file, each under its own flow and
// cleanup slot.
func EncryptFiles(files []string, password []byte, kf *keyfile.Keyfile, cfg Config, slots *fileutil.SlotGroup) *Result {
	return run(files, cfg.Parallel, func(path string, slot *fileutil.CleanupSlot) error {
		return crypt.Encrypt(path, crypt.EncryptOptions{
			Password:  password,
			Level:     cfg.Level,
			Keyfile:   kf,
			Overwrite: cfg.Overwrite,
			Slot:      slot,
		})
	}, slots)
}

// DecryptFiles decrypts every listed container.
func DecryptFiles(files []string, password []byte, kf *keyfile.Keyfile, cfg Config, slots *fileutil.SlotGroup) *Result {
	return run(files, cfg.Parallel, func(path string, slot *fileutil.CleanupSlot) error {
		return crypt.Decrypt(path, crypt.DecryptOptions{
			Password: password,
			Keyfile:  kf,
			Slot:     slot,
		})
	}, slots)
}

// EncryptDir collects the not-yet-encrypted files under dir that pass the
// filters and encrypts them.
func EncryptDir(dir string, password []byte, kf *keyfile.Keyfile, cfg Config, slots *fileutil.SlotGroup) (*Result, error) {
	files, err := Collect(dir, cfg, false)
	if err != nil {
		return nil, err
	}

	return EncryptFiles(files, password, kf, cfg, slots), nil
}

// DecryptDir collects the encrypted containers under dir that pass the
// filters and decrypts them.
func DecryptDir(dir string, password []byte, kf *keyfile.Keyfile, cfg Config, slots *fileutil.SlotGroup) (*Result, error) {
	files, err := Collect(dir, cfg, true)
	if err != nil {
		return nil, err
	}

	return DecryptFiles(files, password, kf, cfg, slots), nil
}

// run drives flows over the files with an errgroup bounded by parallel,
// collecting outcomes through a channel into the result. Flow errors never
// propagate to the group: the batch always visits every file.
func run(files []string, parallel int, flow func(string, *fileutil.CleanupSlot) error, slots *fileutil.SlotGroup) *Result {
	if parallel < 1 {
		parallel = 1
	}

	if slots == nil {
		slots = fileutil.NewSlotGroup()
	}

	type outcome struct {
		path string
		size int64
		err  error
	}

	results := make(chan outcome, len(files))
	done := make(chan struct{})
	result := &Result{}

	go func() {
		defer close(done)

		for res := range results {
			if res.err != nil {
				result.Failed++
				result.Failures = append(result.Failures, Failure{Path: res.path, Err: res.err})

				continue
			}

			result.Succeeded++
			result.TotalBytes += res.size
		}
	}()

	group := errgroup.Group{}
	group.SetLimit(parallel)

	for _, file := range files {
		group.Go(func() error {
			var size int64
			if info, err := os.Stat(file); err == nil {
				size = info.Size()
			}

			err := flow(file, slots.NewSlot())
			results <- outcome{path: file, size: size, err: err}

			return nil
		})
	}

	group.Wait() //nolint:errcheck,gosec // flows never return errors to the group

	close(results)
	<-done

	return result
}

// Collect walks dir and returns the files a batch run would process.
// encrypted selects containers (decrypt runs) versus plain files (encrypt
// runs); the container suffix decides which side a file is on.
func Collect(dir string, cfg Config, encrypted bool) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("stat %q: %w", dir, err)
	}

	if !info.IsDir() {
		return nil, fmt.Errorf("%q is not a directory", dir)
	}

	var files []string

	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			if !cfg.Recursive && path != dir {
				return fs.SkipDir
			}

			return nil
		}

		if !d.Type().IsRegular() {
			return nil
		}

		if strings.HasSuffix(path, crypt.Extension) != encrypted {
			return nil
		}

		rel, err := filepath.Rel(dir, path)
		if err != nil {
			rel = filepath.Base(path)
		}

		ok, err := matches(filepath.ToSlash(rel), cfg.Include, cfg.Exclude)
		if err != nil {
			return err
		}

		if ok {
			files = append(files, path)
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %q: %w", dir, err)
	}

	return files, nil
}
