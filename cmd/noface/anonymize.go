package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/gonkalabs/noface/internal/anonymizer"
	"github.com/gonkalabs/noface/internal/intake"
	"github.com/gonkalabs/noface/internal/render"
)

// Output formats of the anonymize command.
const (
	formatText     = "text"
	formatMarkdown = "markdown"
)

// NewAnonymizeCmd creates the anonymize command.
func NewAnonymizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "anonymize FILE",
		Short: "Anonymize a .txt file and print the three panels",
		Long: `Anonymize sends a .txt file to the anonymization service and prints the
original text, the anonymized text with highlighted entity labels, and the
text with replacement values.

Examples:
  noface anonymize notes.txt
  noface anonymize --format markdown -o report.md notes.txt`,
		Args: cobra.ExactArgs(1),
		RunE: runAnonymizeCmd,
	}
	cmd.Flags().StringP("format", "f", formatText, "Output format: text or markdown")
	cmd.Flags().StringP("output", "o", "", "Write the report to a file instead of stdout")
	cmd.Flags().Bool("no-color", false, "Disable colored output")
	return cmd
}

func runAnonymizeCmd(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	if format != formatText && format != formatMarkdown {
		return fmt.Errorf("unknown format %q (want %s or %s)", format, formatText, formatMarkdown)
	}
	outPath, _ := cmd.Flags().GetString("output")
	noColor, _ := cmd.Flags().GetBool("no-color")

	cfg, closer, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	defer closer.Close()

	f, file, err := intake.Open(args[0])
	if err != nil {
		return err
	}
	defer file.Close()

	client := anonymizer.New(cfg.AnonymizerURL)
	var res anonymizer.Result
	err = intake.Accept(cmd.Context(), f, func(ctx context.Context, text string) error {
		r, err := client.Anonymize(ctx, text)
		res = r
		return err
	})
	if err != nil {
		return fmt.Errorf("%s: %w", f.Name, err)
	}

	var w io.Writer = cmd.OutOrStdout()
	if outPath != "" {
		if dir := filepath.Dir(outPath); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("create output directory: %w", err)
			}
		}
		out, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("create output file: %w", err)
		}
		defer out.Close()
		w = out
	}

	if format == formatMarkdown {
		return render.Markdown(w, f.Name, res)
	}

	useColor := !noColor && outPath == "" && !color.NoColor
	term := render.NewTerminal(w, useColor)
	if err := term.Summary(f.Name, f.Size, res); err != nil {
		return err
	}
	return term.Result(res)
}
