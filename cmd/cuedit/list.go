package main

import (
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored documents, most recently updated first",
		Long:  `Lists stored documents. Output is TSV (name, cues, created, updated; RFC 3339) when stdout is not a terminal.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, d, err := openStore()
			if err != nil {
				return err
			}
			defer d.Close()

			docs, err := d.ListDocuments()
			if err != nil {
				return fmt.Errorf("list documents: %w", err)
			}

			if !term.IsTerminal(int(os.Stdout.Fd())) {
				for _, doc := range docs {
					fmt.Printf("%s\t%d\t%s\t%s\n", doc.Name, doc.CueCount,
						doc.CreatedAt.Format(time.RFC3339), doc.UpdatedAt.Format(time.RFC3339))
				}
				return nil
			}

			if len(docs) == 0 {
				fmt.Fprintln(os.Stderr, "No documents. Create one with 'cuedit edit <name>' or 'cuedit import'.")
				return nil
			}

			nameW := len("NAME")
			for _, doc := range docs {
				nameW = max(nameW, len(doc.Name))
			}
			fmt.Printf("%s%-*s  %6s  %s%s\n", sColorDim, nameW, "NAME", "CUES", "UPDATED", sColorReset)
			for _, doc := range docs {
				fmt.Printf("%-*s  %6d  %s%s%s\n", nameW, doc.Name, doc.CueCount, sColorDim, humanize.Time(doc.UpdatedAt), sColorReset)
			}
			return nil
		},
	}
}
