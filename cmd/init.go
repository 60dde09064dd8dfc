// init.go implements "stash init": create the database and schema.

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the catalog database",
		Long:  `Create the catalog database and schema. Safe to run on an existing catalog.`,
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			svc, cfg, err := openService()
			if err != nil {
				return err
			}
			defer svc.Close()

			path := dbPath
			if path == "" {
				path = cfg.DatabasePath()
			}
			if JSON() {
				return PrintJSON(map[string]string{"database": path})
			}
			fmt.Printf("Initialised catalog at %s\n", path)
			return nil
		},
	}
}
