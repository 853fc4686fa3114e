package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dgallion1/bluebook/internal/bluebook"
	"github.com/dgallion1/bluebook/internal/export"
	"github.com/dgallion1/bluebook/internal/fetch"
	"github.com/spf13/cobra"
)

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func partsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parts <file>",
		Short: "List the Parts of a Bluebook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			asJSON, _ := cmd.Flags().GetBool("json")
			e, err := loadEnv(os.Stderr)
			if err != nil {
				return err
			}
			path, err := e.resolve(args[0])
			if err != nil {
				return err
			}
			parts, err := e.svc.ListParts(cmd.Context(), path)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, parts)
			}
			for _, p := range parts {
				fmt.Fprintf(out, "%4d  %s\n", p.Page, p.Title)
			}
			return nil
		},
	}
	cmd.Flags().Bool("json", false, "Print JSON")
	return cmd
}

func sectionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sections <file>",
		Short: "List the Sections of a Part",
		Long: `List the Sections of a Part. Sections whose pages show no numbered
subtopics are marked [No Subsections] and hidden unless --include-empty
is given.

Example:
  bluebook sections 2024_02.pdf --part "Part 100 — General Provisions"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			part, _ := cmd.Flags().GetString("part")
			includeEmpty, _ := cmd.Flags().GetBool("include-empty")
			asJSON, _ := cmd.Flags().GetBool("json")
			if part == "" {
				return fmt.Errorf("--part flag is required")
			}
			e, err := loadEnv(os.Stderr)
			if err != nil {
				return err
			}
			path, err := e.resolve(args[0])
			if err != nil {
				return err
			}
			sections, err := e.svc.ListSections(cmd.Context(), path, part)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, sections)
			}
			for _, s := range sections {
				if !s.HasSubsections && !includeEmpty {
					continue
				}
				fmt.Fprintf(out, "%4d  %s\n", s.Page, s.DisplayTitle())
			}
			return nil
		},
	}
	cmd.Flags().StringP("part", "p", "", "Part title as listed by \"bluebook parts\"")
	cmd.Flags().Bool("include-empty", false, "Include sections without subsections")
	cmd.Flags().Bool("json", false, "Print JSON (always includes empty sections)")
	return cmd
}

func subtopicsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "subtopics <file> <section>",
		Short: "List the numbered subtopics of a Section",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			asJSON, _ := cmd.Flags().GetBool("json")
			e, err := loadEnv(os.Stderr)
			if err != nil {
				return err
			}
			path, err := e.resolve(args[0])
			if err != nil {
				return err
			}
			subtopics, err := e.svc.ListSubtopics(cmd.Context(), path, args[1])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, subtopics)
			}
			for _, s := range subtopics {
				fmt.Fprintf(out, "%4d  %s\n", s.Page, s.Title)
			}
			return nil
		},
	}
	cmd.Flags().Bool("json", false, "Print JSON")
	return cmd
}

func contentCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "content <file> <section> <subtopic>",
		Short: "Print the formatted text of a subtopic",
		Long: `Print the formatted text of a subtopic.

Example:
  bluebook content 2024_02.pdf 101 02`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(os.Stderr)
			if err != nil {
				return err
			}
			path, err := e.resolve(args[0])
			if err != nil {
				return err
			}
			text, err := e.svc.GetContent(cmd.Context(), path, args[1], args[2])
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), text)
			return err
		},
	}
}

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <file> <section> <subtopic>",
		Short: "Export a subtopic as text, Markdown, HTML or DOCX",
		Long: `Export a subtopic with its heading and, when the sources catalog
knows the edition, a link to the page it starts on.

Example:
  bluebook export 2024_02.pdf 101 02 --format docx
  bluebook export 2024_02.pdf 101 02 --format markdown --output -`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, _ := cmd.Flags().GetString("format")
			output, _ := cmd.Flags().GetString("output")

			exporter, err := export.ForFormat(format)
			if err != nil {
				return err
			}
			e, err := loadEnv(os.Stderr)
			if err != nil {
				return err
			}
			path, err := e.resolve(args[0])
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			text, err := e.svc.GetContent(ctx, path, args[1], args[2])
			if err != nil {
				return err
			}
			subtopics, err := e.svc.ListSubtopics(ctx, path, args[1])
			if err != nil {
				return err
			}

			file := filepath.Base(path)
			c := export.Content{File: file, Text: text}
			c.Section, c.Subtopic = subtopicNumber(args[1], args[2])
			for _, s := range subtopics {
				if s.Number == c.Subtopic {
					c.Title = s.Title
					c.PageURL = e.lib.PageURL(file, s.Page)
				}
			}

			if output == "" {
				output = export.Filename(c, exporter)
			}
			if output == "-" {
				return exporter.Export(cmd.OutOrStdout(), c)
			}
			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("create output: %w", err)
			}
			if err := exporter.Export(f, c); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s\n", output)
			return nil
		},
	}
	cmd.Flags().StringP("format", "f", "markdown", "Output format: "+strings.Join(export.Formats, ", "))
	cmd.Flags().StringP("output", "o", "", "Output file (default derived from the document; - for stdout)")
	return cmd
}

func outlineCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "outline <file>",
		Short: "Print the full Part / Section / Subtopic outline",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, _ := cmd.Flags().GetString("format")
			e, err := loadEnv(os.Stderr)
			if err != nil {
				return err
			}
			path, err := e.resolve(args[0])
			if err != nil {
				return err
			}
			file := filepath.Base(path)
			tree, err := e.svc.BuildOutline(cmd.Context(), path, fetch.DisplayName(file))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch format {
			case "markdown", "md":
				return export.OutlineMarkdown(out, tree)
			case "html":
				return export.OutlineHTML(out, tree, func(page int) string {
					return e.lib.PageURL(file, page)
				})
			case "json":
				return writeJSON(out, tree)
			default:
				return fmt.Errorf("unsupported outline format: %s", format)
			}
		},
	}
	cmd.Flags().StringP("format", "f", "markdown", "Output format: markdown, html or json")
	return cmd
}

// subtopicNumber normalizes CLI arguments to ("101", "101.02"). Invalid
// input has already been rejected by the service.
func subtopicNumber(section, subtopic string) (string, string) {
	sec, _ := bluebook.ParseSectionNumber(section)
	sub, _ := bluebook.ParseSubtopicNumber(sec, subtopic)
	return sec, sec + "." + sub
}
