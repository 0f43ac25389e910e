package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/medblog-engine/internal/cache"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect or clear a session's stored blog posts",
	Long: `Cache operates on the SQLite database backing a session's post cache.
In-memory sessions leave nothing behind; these commands only apply to
sessions run with --db.`,
}

var cacheListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the topics cached for a session",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openCacheStore(cmd)
		if err != nil {
			return err
		}
		defer store.Close()

		topics, err := store.Topics()
		if err != nil {
			return fmt.Errorf("listing topics: %w", err)
		}
		if len(topics) == 0 {
			fmt.Fprintln(os.Stderr, "no cached posts")
			return nil
		}
		for _, t := range topics {
			fmt.Println(t)
		}
		return nil
	},
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete a session's cached posts",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openCacheStore(cmd)
		if err != nil {
			return err
		}
		defer store.Close()

		n, err := store.Clear()
		if err != nil {
			return fmt.Errorf("clearing cache: %w", err)
		}
		fmt.Fprintf(os.Stderr, "deleted %d cached post(s)\n", n)
		return nil
	},
}

var cacheExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a session's cached posts to YAML or JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openCacheStore(cmd)
		if err != nil {
			return err
		}
		defer store.Close()

		format, _ := cmd.Flags().GetString("format")
		output, _ := cmd.Flags().GetString("output")
		if output == "" {
			output = "posts/export." + format
		}

		switch format {
		case "yaml":
			err = store.ExportYAML(output)
		case "json":
			err = store.ExportJSON(output)
		default:
			return fmt.Errorf("unknown format %q: want yaml or json", format)
		}
		if err != nil {
			return fmt.Errorf("exporting cache: %w", err)
		}
		fmt.Fprintf(os.Stderr, "exported to %s\n", output)
		return nil
	},
}

func openCacheStore(cmd *cobra.Command) (*cache.Store, error) {
	dbPath, _ := cmd.Flags().GetString("db")
	session, _ := cmd.Flags().GetString("session")
	if dbPath == "" {
		return nil, fmt.Errorf("--db is required")
	}
	if session == "" {
		return nil, fmt.Errorf("--session is required")
	}
	return cache.NewStore(dbPath, session)
}

func init() {
	cacheCmd.PersistentFlags().String("db", "", "SQLite file backing the session cache")
	cacheCmd.PersistentFlags().String("session", "", "session ID whose cache to operate on")

	cacheExportCmd.Flags().String("format", "yaml", "export format: yaml or json")
	cacheExportCmd.Flags().String("output", "", "export file path (default: posts/export.<format>)")

	cacheCmd.AddCommand(cacheListCmd)
	cacheCmd.AddCommand(cacheClearCmd)
	cacheCmd.AddCommand(cacheExportCmd)
	rootCmd.AddCommand(cacheCmd)
}
