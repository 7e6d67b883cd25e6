package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/wikirace/wikirace/internal/backingstore"
)

var cacheStatsCmd = &cobra.Command{
	Use:   "cache-stats",
	Short: "Show link cache backing store statistics",
	RunE:  runCacheStats,
}

func init() {
	rootCmd.AddCommand(cacheStatsCmd)
}

func runCacheStats(cmd *cobra.Command, args []string) error {
	if cfg.Cache.BackingStorePath == "" {
		return fmt.Errorf("no backing store configured (set cache.backing_store_path or WIKIRACE_CACHE_BACKING_STORE_PATH)")
	}

	store, err := backingstore.Open(cfg.Cache.BackingStorePath)
	if err != nil {
		return fmt.Errorf("opening backing store: %w", err)
	}
	defer store.Close()

	stats, err := store.Stats()
	if err != nil {
		return fmt.Errorf("getting stats: %w", err)
	}

	fmt.Printf("Backing store: %s\n", cfg.Cache.BackingStorePath)
	fmt.Printf("Entries:       %d\n", stats.Entries)
	fmt.Printf("Size:          %s\n", humanize.Bytes(uint64(stats.SizeBytes)))

	return nil
}
