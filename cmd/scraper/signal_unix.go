//go:build unix

package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"webnovel-scraper/internal/scraper"
)

// watchSignals maps SIGINT/SIGTERM to Cancel and SIGUSR1 to Toggle. A second
// interrupt exits immediately. The returned func stops watching.
func watchSignals(control *scraper.Control, out io.Writer) func() {
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM, syscall.SIGUSR1)
	done := make(chan struct{})

	go func() {
		for {
			select {
			case <-done:
				return
			case sig := <-signals:
				if sig == syscall.SIGUSR1 {
					if control.Toggle() {
						fmt.Fprintln(out, "⏸  Paused after the current chapter (send SIGUSR1 again to resume)")
					} else {
						fmt.Fprintln(out, "▶  Resumed")
					}
					continue
				}
				if control.Cancelled() {
					os.Exit(130)
				}
				fmt.Fprintln(out, "\n⏹  Stopping after the current chapter (Ctrl-C again to quit now)")
				control.Cancel()
			}
		}
	}()

	return func() {
		signal.Stop(signals)
		close(done)
	}
}
