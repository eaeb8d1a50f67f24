package main

import (
	"fmt"
	"log"
	"os"

	"github.com/Zuo-Peng/cuedit/internal/config"
	"github.com/Zuo-Peng/cuedit/internal/db"
	"github.com/Zuo-Peng/cuedit/internal/logging"
	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	var debugFile string
	cleanup := func() {}

	rootCmd := &cobra.Command{
		Use:           "cuedit",
		Short:         "cuedit - edit lists of timestamped subtitle cues",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			c, err := logging.Setup(debugFile)
			if err != nil {
				return fmt.Errorf("setup logging: %w", err)
			}
			cleanup = c
			log.Printf("cuedit %s: %s", version, cmd.CommandPath())
			return nil
		},
	}
	rootCmd.PersistentFlags().StringVar(&debugFile, "debug", "", "Write debug logs to file")

	rootCmd.AddCommand(editCmd())
	rootCmd.AddCommand(listCmd())
	rootCmd.AddCommand(importCmd())
	rootCmd.AddCommand(exportCmd())
	rootCmd.AddCommand(previewCmd())
	rootCmd.AddCommand(searchCmd())
	rootCmd.AddCommand(deleteCmd())
	rootCmd.AddCommand(doctorCmd())

	err := rootCmd.Execute()
	cleanup()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// openStore loads the config and opens the document database.
func openStore() (*config.Config, *db.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	d, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open db: %w", err)
	}
	return cfg, d, nil
}
