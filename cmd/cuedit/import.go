package main

import (
	"fmt"
	"os"

	"github.com/Zuo-Peng/cuedit/internal/index"
	"github.com/spf13/cobra"
)

func importCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "import <name> <path>",
		Short: "Import .srt, .vtt or .yaml files as documents",
		Long: `Imports a subtitle file as document <name>. When <path> is a directory every
importable file below it becomes a document named <name>/<relative path>.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, d, err := openStore()
			if err != nil {
				return err
			}
			defer d.Close()

			fmt.Fprintf(os.Stderr, "Importing %s...\n", args[1])
			stats, err := index.ImportAll(d, args[0], args[1], index.Options{
				Force: force,
				Report: func(format string, a ...any) {
					fmt.Fprintf(os.Stderr, format+"\n", a...)
				},
			})
			if err != nil {
				return fmt.Errorf("import: %w", err)
			}
			fmt.Fprintf(os.Stderr, "Done. %s\n", stats)

			if stats.Scanned == 0 {
				return fmt.Errorf("no .srt, .vtt or .yaml files found at %s", args[1])
			}
			if stats.Imported == 0 && stats.Errors > 0 {
				return fmt.Errorf("nothing imported")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Replace documents that already exist")

	return cmd
}
