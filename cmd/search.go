// search.go implements "stash search": the ranked full-text search across
// items and locations.

package cmd

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/stashhq/stash/internal/store"
)

func newSearchCmd() *cobra.Command {
	var offset, limit int
	var locationsOnly, itemsOnly bool

	c := &cobra.Command{
		Use:   "search [term...]",
		Short: "Search items and locations",
		Long: `Ranked full-text search across the catalog. Terms match names heaviest,
then descriptions, then item properties; exact phrases rank above scattered
matches. An empty term lists everything ordered by name.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, cfg, err := openService()
			if err != nil {
				return err
			}
			defer svc.Close()

			if limit == 0 {
				limit = cfg.DefaultPageSize()
			}
			term := strings.Join(args, " ")
			ctx := cmd.Context()

			var items *store.ItemPage
			var locs *store.LocationPage

			if !locationsOnly {
				if items, err = svc.SearchItems(ctx, term, offset, limit); err != nil {
					return err
				}
			}
			if !itemsOnly {
				if locs, err = svc.SearchLocations(ctx, term, offset, limit); err != nil {
					return err
				}
			}

			if JSON() {
				out := map[string]any{}
				if items != nil {
					its := make([]store.ItemJSON, len(items.Items))
					for i := range items.Items {
						its[i] = items.Items[i].ToJSON()
					}
					out["items"] = its
					out["item_total"] = items.Total
				}
				if locs != nil {
					ls := make([]store.LocationJSON, len(locs.Locations))
					for i := range locs.Locations {
						ls[i] = locs.Locations[i].ToJSON()
					}
					out["locations"] = ls
					out["location_total"] = locs.Total
				}
				return PrintJSON(out)
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			if locs != nil && len(locs.Locations) > 0 {
				fmt.Fprintf(w, "Locations (%d):\n", locs.Total)
				for _, l := range locs.Locations {
					fmt.Fprintf(w, "  %s\t%s\t%s\n", l.ID, l.Name, l.Description)
				}
			}
			if items != nil && len(items.Items) > 0 {
				fmt.Fprintf(w, "Items (%d):\n", items.Total)
				for _, it := range items.Items {
					fmt.Fprintf(w, "  %s\t%s\t%s\n", it.ID, it.Name, it.LocationID)
				}
			}
			return w.Flush()
		},
	}

	c.Flags().IntVar(&offset, "offset", 0, "Result offset")
	c.Flags().IntVar(&limit, "limit", 0, "Page size (defaults to config page_size)")
	c.Flags().BoolVar(&locationsOnly, "locations", false, "Search locations only")
	c.Flags().BoolVar(&itemsOnly, "items", false, "Search items only")
	return c
}
