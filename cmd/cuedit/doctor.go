package main

import (
	"fmt"
	"os"

	"github.com/Zuo-Peng/cuedit/internal/config"
	"github.com/Zuo-Peng/cuedit/internal/db"
	"github.com/spf13/cobra"
)

func doctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Self-check: verify config, DB, FTS5, and show stats",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("config: %w", err)
			}

			fmt.Println("=== Config ===")
			fmt.Printf("  Default format: %s\n", cfg.DefaultFormat)
			fmt.Printf("  Tail seconds:   %.3f\n", cfg.TailSeconds)

			fmt.Println("\n=== Database ===")
			fmt.Printf("  Path: %s\n", cfg.DBPath)
			if _, err := os.Stat(cfg.DBPath); os.IsNotExist(err) {
				fmt.Println("  Status: NOT FOUND (created on first save or import)")
				return nil
			}

			d, err := db.OpenDB(cfg.DBPath)
			if err != nil {
				return fmt.Errorf("open db: %w", err)
			}
			defer d.Close()

			docCount, err := d.DocumentCount()
			if err != nil {
				return fmt.Errorf("count documents: %w", err)
			}
			cueCount, err := d.CueCount()
			if err != nil {
				return fmt.Errorf("count cues: %w", err)
			}
			fmt.Printf("  Documents: %d\n", docCount)
			fmt.Printf("  Cues:      %d\n", cueCount)

			fmt.Println("\n=== FTS5 ===")
			ftsCount, err := d.FTSCount()
			if err != nil {
				fmt.Printf("  FTS5 error: %v\n", err)
			} else {
				fmt.Printf("  FTS5 entries: %d\n", ftsCount)
				if ftsCount == cueCount {
					fmt.Println("  Status: OK (synced)")
				} else {
					fmt.Printf("  Status: MISMATCH (cues=%d, fts=%d)\n", cueCount, ftsCount)
				}
			}

			if info, err := os.Stat(cfg.DBPath); err == nil {
				sizeMB := float64(info.Size()) / 1024 / 1024
				fmt.Printf("\n=== DB Size: %.1f MB ===\n", sizeMB)
			}

			return nil
		},
	}
}
