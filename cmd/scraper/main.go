// Webnovel Scraper
// Downloads web novels from supported fiction sites chapter by chapter and
// exports them as EPUB, PDF or plain text books.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"webnovel-scraper/internal/sites"
)

const (
	AppName    = "webnovel-scraper"
	AppVersion = "1.0.0"
)

func main() {
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	if err := newRootCmd(sites.DefaultRegistry()).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}
}
