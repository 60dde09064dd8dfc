// root.go defines the root command and CLI execution entry point.
//
// Design: commands open the service lazily in their RunE through
// openService, not in a PersistentPreRun - help, completion and init must
// work without an existing database, and the set of store-needing commands
// is the whole tree anyway.

package cmd

import (
	"fmt"
	"os"
	"slices"

	"github.com/spf13/cobra"
)

var (
	dbPath string
	output string
)

var validOutputFormats = []string{"text", "json"}

var rootCmd = &cobra.Command{
	Use:   "stash",
	Short: "Catalog physical items across a hierarchy of locations",
	Long: `stash keeps a searchable catalog of physical items filed into a tree of
locations (rooms, shelves, bins). Locations nest without cycles, items
carry free-form properties, and everything is findable with a ranked
full-text search.`,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		if output != "" && !slices.Contains(validOutputFormats, output) {
			return fmt.Errorf("invalid output format: %s (valid: %v)", output, validOutputFormats)
		}
		return nil
	},
}

// Execute runs the CLI and exits non-zero on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Database file (overrides config)")
	rootCmd.PersistentFlags().StringVarP(&output, "output", "o", "text", "Output format: text or json")

	rootCmd.AddCommand(newInitCmd())
	rootCmd.AddCommand(newLocationCmd())
	rootCmd.AddCommand(newItemCmd())
	rootCmd.AddCommand(newSearchCmd())
}
