package main

import (
	"fmt"
	"os"

	"github.com/dgallion1/bluebook/internal/fetch"
	"github.com/spf13/cobra"
)

func fetchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fetch [url...]",
		Short: "Download published Bluebooks into the library",
		Long: `Download published Bluebook PDFs and store them as YYYY_MM.pdf in
BLUEBOOK_PDF_DIR. The date is taken from the published file name
(Blue_Book_02_2024.pdf, Blue-Book-02-2024.pdf or Blue_Book_02_24.pdf).

With no arguments, every URL in BLUEBOOK_SOURCES_FILE is fetched.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(os.Stderr)
			if err != nil {
				return err
			}
			urls := args
			if len(urls) == 0 {
				for _, s := range e.sources {
					urls = append(urls, s.URL)
				}
			}
			if len(urls) == 0 {
				return fmt.Errorf("no urls given and no sources configured")
			}

			client := fetch.NewClient(e.cfg.PDFDir, e.cfg.FetchTimeout, e.log)
			defer client.Close()

			failed := 0
			for _, u := range urls {
				name, err := client.Download(cmd.Context(), u)
				if err != nil {
					failed++
					fmt.Fprintf(cmd.ErrOrStderr(), "failed: %s: %v\n", u, err)
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Downloaded Bluebook: %s\n", name)
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d downloads failed", failed, len(urls))
			}
			return nil
		},
	}
}
