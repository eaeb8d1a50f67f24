package main

import (
	"fmt"
	"os"

	"github.com/Zuo-Peng/cuedit/internal/render"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func previewCmd() *cobra.Command {
	var query string
	var hit, width int

	cmd := &cobra.Command{
		Use:   "preview <name>",
		Short: "Print a document as a time/text listing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, d, err := openStore()
			if err != nil {
				return err
			}
			defer d.Close()

			rows, ok, err := d.LoadDocument(args[0])
			if err != nil {
				return fmt.Errorf("load %s: %w", args[0], err)
			}
			if !ok {
				return fmt.Errorf("document not found: %s", args[0])
			}

			isTTY := term.IsTerminal(int(os.Stdout.Fd()))
			if width == 0 && isTTY {
				if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
					width = w
				}
			}

			out, _ := render.RenderDocument(args[0], rows, render.Options{
				Width: width,
				Query: query,
				Hit:   hit,
				Color: isTTY,
			})
			fmt.Print(out)
			return nil
		},
	}

	cmd.Flags().StringVar(&query, "query", "", "Keywords to highlight")
	cmd.Flags().IntVar(&hit, "hit", -1, "Cue position to mark")
	cmd.Flags().IntVar(&width, "width", 0, "Wrap width (0 = terminal width, or no wrap when piped)")

	return cmd
}
