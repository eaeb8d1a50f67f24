package main

import (
	"fmt"
	"io"
	"os"

	"github.com/Zuo-Peng/cuedit/internal/parse"
	"github.com/Zuo-Peng/cuedit/internal/render"
	"github.com/spf13/cobra"
)

func exportCmd() *cobra.Command {
	var format, out string

	cmd := &cobra.Command{
		Use:   "export <name>",
		Short: "Write a document as SRT, WebVTT or YAML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, d, err := openStore()
			if err != nil {
				return err
			}
			defer d.Close()

			f, err := exportFormat(format, out, cfg.DefaultFormat)
			if err != nil {
				return err
			}

			rows, ok, err := d.LoadDocument(args[0])
			if err != nil {
				return fmt.Errorf("load %s: %w", args[0], err)
			}
			if !ok {
				return fmt.Errorf("document not found: %s", args[0])
			}

			var w io.Writer = os.Stdout
			if out != "" {
				file, err := os.Create(out)
				if err != nil {
					return err
				}
				defer file.Close()
				w = file
			}

			if err := render.Write(w, rows, f, cfg.TailSeconds); err != nil {
				return fmt.Errorf("export: %w", err)
			}
			if out != "" {
				fmt.Fprintf(os.Stderr, "Wrote %d cues to %s\n", len(rows), out)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "", "Output format (srt/vtt/yaml, default from --out extension or config)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (default stdout)")

	return cmd
}

// exportFormat picks the output format: the explicit flag, else the output
// file's extension, else the configured default.
func exportFormat(flag, out, fallback string) (parse.Format, error) {
	format := flag
	if format == "" && out != "" {
		if f, ok := parse.FormatForPath(out); ok {
			format = string(f)
		}
	}
	if format == "" {
		format = fallback
	}
	switch f := parse.Format(format); f {
	case parse.FormatSRT, parse.FormatVTT, parse.FormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("unknown format %q (want srt, vtt or yaml)", format)
	}
}
