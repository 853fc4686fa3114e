package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/dgallion1/bluebook/internal/bluebook"
	"github.com/dgallion1/bluebook/internal/config"
	"github.com/dgallion1/bluebook/internal/fetch"
	"github.com/dgallion1/bluebook/internal/pdfdoc"
	"github.com/spf13/cobra"
)

var version = "0.1.0"

func main() {
	rootCmd := &cobra.Command{
		Use:   "bluebook",
		Short: "Browse the structure of RIDOT Bluebook PDFs",
		Long: `bluebook recovers the Part / Section / Subtopic outline of monthly
RIDOT Bluebook PDFs and extracts cleanly formatted subtopic text.

Documents are read from BLUEBOOK_PDF_DIR (default ./bluebook_pdfs) and
named YYYY_MM.pdf. Use "bluebook fetch" to download published editions.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(partsCmd())
	rootCmd.AddCommand(sectionsCmd())
	rootCmd.AddCommand(subtopicsCmd())
	rootCmd.AddCommand(contentCmd())
	rootCmd.AddCommand(exportCmd())
	rootCmd.AddCommand(outlineCmd())
	rootCmd.AddCommand(fetchCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// env is the state shared by every subcommand.
type env struct {
	cfg     config.Config
	log     *slog.Logger
	sources []config.Source
	lib     *fetch.Library
	svc     *bluebook.Service
}

// loadEnv reads configuration and wires the library and service. Logs go
// to logOut so command output on stdout stays clean.
func loadEnv(logOut io.Writer) (*env, error) {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	level, _ := cfg.SlogLevel()
	log := slog.New(slog.NewJSONHandler(logOut, &slog.HandlerOptions{Level: level}))

	sources, err := config.LoadSources(cfg.SourcesFile)
	if err != nil {
		return nil, err
	}

	return &env{
		cfg:     cfg,
		log:     log,
		sources: sources,
		lib:     fetch.NewLibrary(cfg.PDFDir, config.SourceURLs(sources)),
		svc: bluebook.NewService(bluebook.Config{
			Open:        pdfdoc.NewOpener(cfg.PDFFallbackPdftotext),
			Logger:      log,
			StatsWindow: cfg.StatsWindow,
		}),
	}, nil
}

// resolve accepts either a path to a PDF or a file name in the library.
func (e *env) resolve(arg string) (string, error) {
	if info, err := os.Stat(arg); err == nil && !info.IsDir() {
		return arg, nil
	}
	return e.lib.Path(arg)
}
