package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/Zuo-Peng/cuedit/internal/search"
	"github.com/Zuo-Peng/cuedit/internal/timestamp"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func searchCmd() *cobra.Command {
	var doc string
	var limit int

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Full-text search across cue text",
		Long: `Search stored cues using FTS5. Output is TSV when piped:
  document, position, time, snippet`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, d, err := openStore()
			if err != nil {
				return err
			}
			defer d.Close()

			results, err := search.Search(d, search.Options{
				Query:    strings.Join(args, " "),
				Document: doc,
				Limit:    limit,
			})
			if err != nil {
				return err
			}

			if len(results) == 0 {
				fmt.Fprintln(os.Stderr, "No results found.")
				return nil
			}

			color := term.IsTerminal(int(os.Stdout.Fd()))
			for _, r := range results {
				snippet := strings.ReplaceAll(r.Snippet, "\t", " ")
				snippet = strings.ReplaceAll(snippet, "\n", " ")
				if color {
					fmt.Printf("%s%s%s\t%d\t%s\t%s\n",
						sColorBlue, r.Document, sColorReset,
						r.Position,
						timestamp.Format(r.Time),
						colorizeSnippet(snippet),
					)
					continue
				}
				fmt.Printf("%s\t%d\t%s\t%s\n", r.Document, r.Position, timestamp.Format(r.Time), plainSnippet(snippet))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&doc, "doc", "", "Only search this document")
	cmd.Flags().IntVar(&limit, "limit", 100, "Max results")

	return cmd
}
