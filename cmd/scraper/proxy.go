package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

const defaultProbeURL = "https://www.google.com"

func (a *app) proxyTestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "proxy-test [url]",
		Short: "Check that the configured proxy can reach a URL",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target := defaultProbeURL
			if len(args) == 1 {
				target = args[0]
			}

			out := cmd.OutOrStdout()
			if !a.cfg.Scraping.Proxy.Enabled() {
				fmt.Fprintln(out, "ℹ No proxy configured; testing a direct connection")
			}

			_, requester, err := a.client()
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
			defer cancel()
			if err := requester.Probe(ctx, target); err != nil {
				return fmt.Errorf("proxy test failed: %w", err)
			}
			fmt.Fprintf(out, "✓ Reached %s\n", target)
			return nil
		},
	}
}
