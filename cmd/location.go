// location.go implements the "stash location" command group.

package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/stashhq/stash/internal/store"
)

func newLocationCmd() *cobra.Command {
	c := &cobra.Command{
		Use:     "location",
		Aliases: []string{"loc"},
		Short:   "Manage locations",
	}
	c.AddCommand(newLocationAddCmd())
	c.AddCommand(newLocationShowCmd())
	c.AddCommand(newLocationLsCmd())
	c.AddCommand(newLocationMvCmd())
	c.AddCommand(newLocationRmCmd())
	return c
}

func newLocationAddCmd() *cobra.Command {
	var name, desc, parent string
	c := &cobra.Command{
		Use:   "add <id>",
		Short: "Create a location",
		Long: `Create a location with a caller-chosen id. Use --parent to nest it; the
parent must exist and the move may not create a cycle.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, _, err := openService()
			if err != nil {
				return err
			}
			defer svc.Close()

			if name == "" {
				name = args[0]
			}
			loc, err := svc.CreateLocation(cmd.Context(), args[0], name, desc, optional(parent))
			if err != nil {
				return err
			}
			if JSON() {
				return PrintJSON(loc.ToJSON())
			}
			fmt.Printf("Created location %s\n", loc.ID)
			return nil
		},
	}
	c.Flags().StringVarP(&name, "name", "n", "", "Display name (defaults to the id)")
	c.Flags().StringVarP(&desc, "description", "d", "", "Description")
	c.Flags().StringVarP(&parent, "parent", "p", "", "Parent location id")
	return c
}

func newLocationShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a location, its children and its items",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, _, err := openService()
			if err != nil {
				return err
			}
			defer svc.Close()

			ctx := cmd.Context()
			loc, err := svc.Location(ctx, args[0])
			if err != nil {
				return err
			}
			children, err := svc.Children(ctx, loc.ID)
			if err != nil {
				return err
			}
			items, err := svc.ItemsIn(ctx, loc.ID)
			if err != nil {
				return err
			}

			if JSON() {
				kids := make([]store.LocationJSON, len(children))
				for i := range children {
					kids[i] = children[i].ToJSON()
				}
				its := make([]store.ItemJSON, len(items))
				for i := range items {
					its[i] = items[i].ToJSON()
				}
				return PrintJSON(map[string]any{
					"location": loc.ToJSON(),
					"children": kids,
					"items":    its,
				})
			}

			fmt.Printf("%s\t%s\n", loc.ID, loc.Name)
			if loc.Description != "" {
				fmt.Printf("  %s\n", loc.Description)
			}
			if loc.ParentID != nil {
				fmt.Printf("  parent: %s\n", *loc.ParentID)
			}
			if len(children) > 0 {
				fmt.Println("Children:")
				for _, c := range children {
					fmt.Printf("  %s\t%s\n", c.ID, c.Name)
				}
			}
			if len(items) > 0 {
				fmt.Println("Items:")
				for _, it := range items {
					fmt.Printf("  %s\t%s\n", it.ID, it.Name)
				}
			}
			return nil
		},
	}
}

func newLocationLsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ls [parent-id]",
		Short: "List root locations, or the children of one location",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, _, err := openService()
			if err != nil {
				return err
			}
			defer svc.Close()

			parent := ""
			if len(args) == 1 {
				parent = args[0]
			}
			locs, err := svc.Children(cmd.Context(), parent)
			if err != nil {
				return err
			}

			if JSON() {
				out := make([]store.LocationJSON, len(locs))
				for i := range locs {
					out[i] = locs[i].ToJSON()
				}
				return PrintJSON(out)
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			for _, l := range locs {
				fmt.Fprintf(w, "%s\t%s\t%s\n", l.ID, l.Name, l.Description)
			}
			return w.Flush()
		},
	}
}

func newLocationMvCmd() *cobra.Command {
	var root bool
	c := &cobra.Command{
		Use:   "mv <id> [new-parent-id]",
		Short: "Re-parent a location",
		Long: `Move a location under a new parent, or to the top level with --root.
The move is validated first: a location can never become its own ancestor.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !root && len(args) < 2 {
				return fmt.Errorf("specify a new parent id or --root")
			}
			svc, _, err := openService()
			if err != nil {
				return err
			}
			defer svc.Close()

			var parent *string
			if !root {
				parent = &args[1]
			}
			loc, err := svc.MoveLocation(cmd.Context(), args[0], parent)
			if err != nil {
				return err
			}
			if JSON() {
				return PrintJSON(loc.ToJSON())
			}
			if parent == nil {
				fmt.Printf("Moved %s to top level\n", loc.ID)
			} else {
				fmt.Printf("Moved %s under %s\n", loc.ID, *parent)
			}
			return nil
		},
	}
	c.Flags().BoolVar(&root, "root", false, "Move to the top level")
	return c
}

func newLocationRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete an empty location",
		Long: `Delete a location. Locations that still contain child locations or items
are refused; move or delete the contents first.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, _, err := openService()
			if err != nil {
				return err
			}
			defer svc.Close()

			if err := svc.DeleteLocation(cmd.Context(), args[0]); err != nil {
				return err
			}
			if JSON() {
				return PrintJSON(map[string]string{"deleted": args[0]})
			}
			fmt.Printf("Deleted location %s\n", args[0])
			return nil
		},
	}
}
