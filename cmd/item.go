// item.go implements the "stash item" command group.

package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/stashhq/stash/internal/store"
)

func newItemCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "item",
		Short: "Manage cataloged items",
	}
	c.AddCommand(newItemAddCmd())
	c.AddCommand(newItemShowCmd())
	c.AddCommand(newItemLsCmd())
	c.AddCommand(newItemEditCmd())
	c.AddCommand(newItemMvCmd())
	c.AddCommand(newItemRmCmd())
	return c
}

func newItemAddCmd() *cobra.Command {
	var desc, location string
	var props []string
	c := &cobra.Command{
		Use:   "add <name>",
		Short: "Catalog a new item",
		Long: `Catalog an item in a location. Properties are free-form key=value pairs
and are searchable along with the name and description.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, _, err := openService()
			if err != nil {
				return err
			}
			defer svc.Close()

			bag, err := parseProperties(props)
			if err != nil {
				return err
			}

			// Placing items in leaf locations keeps the tree tidy but is a
			// convention, not an invariant: warn and proceed.
			if children, err := svc.Children(cmd.Context(), location); err == nil && len(children) > 0 {
				fmt.Fprintf(os.Stderr, "note: location %s has child locations; consider filing deeper\n", location)
			}

			item, err := svc.CreateItem(cmd.Context(), args[0], desc, location, bag)
			if err != nil {
				return err
			}
			if JSON() {
				return PrintJSON(item.ToJSON())
			}
			fmt.Printf("Cataloged %s as %s in %s\n", item.Name, item.ID, item.LocationID)
			return nil
		},
	}
	c.Flags().StringVarP(&location, "location", "l", "", "Location id (required)")
	c.Flags().StringVarP(&desc, "description", "d", "", "Description")
	c.Flags().StringArrayVarP(&props, "prop", "p", nil, "Property key=value (repeatable)")
	_ = c.MarkFlagRequired("location")
	return c
}

func newItemShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, _, err := openService()
			if err != nil {
				return err
			}
			defer svc.Close()

			item, err := svc.Item(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if JSON() {
				return PrintJSON(item.ToJSON())
			}
			fmt.Printf("%s\t%s\n", item.ID, item.Name)
			if item.Description != "" {
				fmt.Printf("  %s\n", item.Description)
			}
			fmt.Printf("  location: %s\n", item.LocationID)
			for k, v := range item.Properties {
				fmt.Printf("  %s: %s\n", k, v)
			}
			return nil
		},
	}
}

func newItemLsCmd() *cobra.Command {
	var location string
	c := &cobra.Command{
		Use:   "ls",
		Short: "List the items in a location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, _, err := openService()
			if err != nil {
				return err
			}
			defer svc.Close()

			items, err := svc.ItemsIn(cmd.Context(), location)
			if err != nil {
				return err
			}
			if JSON() {
				out := make([]store.ItemJSON, len(items))
				for i := range items {
					out[i] = items[i].ToJSON()
				}
				return PrintJSON(out)
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			for _, it := range items {
				fmt.Fprintf(w, "%s\t%s\t%s\n", it.ID, it.Name, it.Description)
			}
			return w.Flush()
		},
	}
	c.Flags().StringVarP(&location, "location", "l", "", "Location id (required)")
	_ = c.MarkFlagRequired("location")
	return c
}

func newItemEditCmd() *cobra.Command {
	var name, desc string
	var props []string
	c := &cobra.Command{
		Use:   "edit <id>",
		Short: "Update an item's name, description and properties",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, _, err := openService()
			if err != nil {
				return err
			}
			defer svc.Close()

			current, err := svc.Item(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if name == "" {
				name = current.Name
			}
			if desc == "" {
				desc = current.Description
			}
			bag := current.Properties
			if len(props) > 0 {
				if bag, err = parseProperties(props); err != nil {
					return err
				}
			}

			item, err := svc.UpdateItem(cmd.Context(), args[0], name, desc, bag)
			if err != nil {
				return err
			}
			if JSON() {
				return PrintJSON(item.ToJSON())
			}
			fmt.Printf("Updated %s\n", item.ID)
			return nil
		},
	}
	c.Flags().StringVarP(&name, "name", "n", "", "New name")
	c.Flags().StringVarP(&desc, "description", "d", "", "New description")
	c.Flags().StringArrayVarP(&props, "prop", "p", nil, "Replace properties with key=value (repeatable)")
	return c
}

func newItemMvCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mv <id> <location-id>",
		Short: "Move an item to another location",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, _, err := openService()
			if err != nil {
				return err
			}
			defer svc.Close()

			item, err := svc.MoveItem(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			if JSON() {
				return PrintJSON(item.ToJSON())
			}
			fmt.Printf("Moved %s to %s\n", item.ID, item.LocationID)
			return nil
		},
	}
}

func newItemRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, _, err := openService()
			if err != nil {
				return err
			}
			defer svc.Close()

			if err := svc.DeleteItem(cmd.Context(), args[0]); err != nil {
				return err
			}
			if JSON() {
				return PrintJSON(map[string]string{"deleted": args[0]})
			}
			fmt.Printf("Deleted item %s\n", args[0])
			return nil
		},
	}
}
