package logic

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/feroxlabs/feroxcrypt/internal/fileutil"
)

// notifyCleanup installs a handler that removes every in-flight output file
// when the process is interrupted, then exits non-zero. The returned stop
// function uninstalls the handler once the run completes normally.
func notifyCleanup(slots *fileutil.SlotGroup, quiet bool) (stop func()) {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, os.Interrupt, syscall.SIGTERM)

	go func() {
		if _, ok := <-ch; !ok {
			return
		}

		if !quiet {
			fmt.Fprintln(os.Stderr, "\nInterrupted, removing partial output files")
		}

		slots.RemoveAll()
		os.Exit(1)
	}()

	return func() {
		signal.Stop(ch)
		close(ch)
	}
}
