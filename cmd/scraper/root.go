package main

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"webnovel-scraper/internal/config"
	"webnovel-scraper/internal/project"
	"webnovel-scraper/internal/scraper"
	"webnovel-scraper/internal/sites"
)

// app holds what every command shares once flags are parsed.
type app struct {
	registry   *sites.Registry
	configPath string
	workdir    string
	verbose    bool
	cfg        *config.Config
}

func newRootCmd(registry *sites.Registry) *cobra.Command {
	a := &app{registry: registry}

	root := &cobra.Command{
		Use:   AppName,
		Short: "Download web novels and export them as books",
		Long: `Downloads web novels from RoyalRoad, MVLEmpyr, Novatls and Ellotl
chapter by chapter into a project folder, then exports them as EPUB, PDF
or plain text.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "config.yaml", "path to configuration file (YAML or JSON); missing means defaults")
	root.PersistentFlags().StringVar(&a.workdir, "workdir", "", "projects directory (overrides config)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		a.resolveCmd(),
		a.chaptersCmd(),
		a.chapterCmd(),
		a.downloadCmd(),
		a.exportCmd(),
		a.projectCmd(),
		a.proxyTestCmd(),
		a.configCmd(),
		versionCmd(),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadOrDefault(a.configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if a.workdir != "" {
		cfg.Workdir = a.workdir
	}
	a.cfg = cfg

	level, err := zerolog.ParseLevel(cfg.Logging.Level)
	if err != nil || cfg.Logging.Level == "" {
		level = zerolog.InfoLevel
	}
	if a.verbose {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	return nil
}

// client builds a sites client over a polite requester from the config.
func (a *app) client() (*sites.Client, *scraper.Requester, error) {
	requester, err := scraper.NewRequester(a.cfg.Scraping)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create requester: %w", err)
	}
	return sites.NewClient(requester), requester, nil
}

func (a *app) archive() (*project.Archive, error) {
	return project.NewArchive(a.cfg.Workdir)
}

func (a *app) supportedSites() string {
	var names []string
	for _, p := range a.registry.Profiles() {
		names = append(names, p.Name())
	}
	return strings.Join(names, ", ")
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s v%s\n", AppName, AppVersion)
		},
	}
}
