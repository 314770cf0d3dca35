//go:build !unix

package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"

	"webnovel-scraper/internal/scraper"
)

// watchSignals maps an interrupt to Cancel. A second interrupt exits
// immediately. The returned func stops watching.
func watchSignals(control *scraper.Control, out io.Writer) func() {
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt)
	done := make(chan struct{})

	go func() {
		for {
			select {
			case <-done:
				return
			case <-signals:
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
