package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/Zuo-Peng/cuedit/internal/cue"
	"github.com/Zuo-Peng/cuedit/internal/tui"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func editCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "edit [name]",
		Short: "Edit a cue document in the terminal",
		Long: `Opens the editor on the named document, creating it on first save.
Without a name an unsaved scratch document is edited.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !term.IsTerminal(int(os.Stdout.Fd())) {
				return errors.New("edit needs an interactive terminal")
			}

			if len(args) == 0 {
				return tui.Run(cue.NewStore(nil), tui.Options{})
			}

			_, d, err := openStore()
			if err != nil {
				return err
			}
			defer d.Close()

			name := args[0]
			rows, _, err := d.LoadDocument(name)
			if err != nil {
				return fmt.Errorf("load %s: %w", name, err)
			}

			return tui.Run(cue.NewStore(rows), tui.Options{
				Name: name,
				Save: func(rows []cue.Row) error {
					return d.SaveDocument(name, rows)
				},
			})
		},
	}
}
