package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/erazemk/garderoba/internal/desk"
	"github.com/erazemk/garderoba/internal/model"
	"github.com/erazemk/garderoba/internal/sheet"
	"github.com/erazemk/garderoba/internal/store"
)

func (a *app) initCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the standard tables if they are missing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Opening the store already ensured the tables.
			fmt.Fprintf(cmd.OutOrStdout(), "Store ready: %s (%s)\n", a.cfg.Document, a.cfg.Backend)
			return nil
		},
	}
}

func (a *app) intakeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "intake",
		Short: "Register people from unprocessed form responses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := a.desk.Intake(cmd.Context())
			if err != nil {
				return err
			}
			if a.jsonOutput {
				return printJSON(cmd.OutOrStdout(), map[string]int{"registered": n})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Registered %d new people.\n", n)
			return nil
		},
	}
}

func (a *app) responsesCmd() *cobra.Command {
	var pending bool
	cmd := &cobra.Command{
		Use:   "responses",
		Short: "List form responses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			responses, err := store.ListResponses(cmd.Context(), a.store, pending)
			if err != nil {
				return err
			}
			if a.jsonOutput {
				return printJSON(cmd.OutOrStdout(), responses)
			}
			printResponses(cmd.OutOrStdout(), responses)
			return nil
		},
	}
	cmd.Flags().BoolVar(&pending, "pending", false, "only responses not yet registered")
	return cmd
}

func (a *app) depositCmd() *cobra.Command {
	var req desk.DepositRequest
	var ownerName, ownerPhone string

	cmd := &cobra.Command{
		Use:   "deposit",
		Short: "Store an item in a cell",
		Long: `Store an item in the cell at the given coordinates. The owner is given by
ID (--owner) or by name and phone (--owner-name, --owner-phone).

Example:
  garderoba deposit --item backpack --owner-name Alice --owner-phone 555-1234 \
      --receipt R100 --room 1 --row 1 --column 1 --level 1 --description red`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if req.OwnerID == "" {
				id, err := store.FindPersonID(ctx, a.store, ownerName, ownerPhone)
				if err != nil {
					return err
				}
				if id == "" {
					return fmt.Errorf("%w: %s (%s)", desk.ErrPersonNotFound, ownerName, ownerPhone)
				}
				req.OwnerID = id
			}

			item, err := a.desk.Deposit(ctx, req)
			if err != nil {
				return err
			}
			return a.printItem(cmd, item)
		},
	}

	f := cmd.Flags()
	f.StringVar(&req.Name, "item", "", "item name")
	f.StringVar(&req.OwnerID, "owner", "", "owner person ID")
	f.StringVar(&ownerName, "owner-name", "", "owner name")
	f.StringVar(&ownerPhone, "owner-phone", "", "owner phone")
	f.StringVar(&req.ReceiptNumber, "receipt", "", "receipt number")
	f.StringVar(&req.Description, "description", "", "item description")
	coordinateFlags(cmd, &req.Cell)
	_ = cmd.MarkFlagRequired("item")
	cmd.MarkFlagsMutuallyExclusive("owner", "owner-name")
	cmd.MarkFlagsRequiredTogether("owner-name", "owner-phone")
	cmd.MarkFlagsOneRequired("owner", "owner-name")
	return cmd
}

func (a *app) pickupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pickup <item-id>",
		Short: "Hand an item back and free its cell",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			item, err := a.desk.Pickup(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.printItem(cmd, item)
		},
	}
}

func (a *app) itemCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "item <item-id>",
		Short: "Show an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			item, err := store.GetItem(cmd.Context(), a.store, args[0])
			if err != nil {
				return err
			}
			if item == nil {
				return fmt.Errorf("%w: %s", desk.ErrItemNotFound, args[0])
			}
			return a.printItem(cmd, item)
		},
	}
}

func (a *app) itemsCmd() *cobra.Command {
	var ownerID, name, phone, status string

	cmd := &cobra.Command{
		Use:   "items",
		Short: "List items, optionally by owner or status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			switch status {
			case "", model.ItemStatusStored, model.ItemStatusPickedUp:
			default:
				return fmt.Errorf("%w: unknown status %q", desk.ErrInvalidRequest, status)
			}

			var items []model.Item
			var err error
			switch {
			case ownerID != "":
				items, err = store.ListItemsByOwner(ctx, a.store, ownerID)
			case name != "":
				items, err = a.desk.OwnerItems(ctx, name, phone)
			default:
				items, err = store.ListItems(ctx, a.store, "")
			}
			if err != nil {
				return err
			}

			if status != "" {
				filtered := items[:0]
				for _, item := range items {
					if item.Status == status {
						filtered = append(filtered, item)
					}
				}
				items = filtered
			}

			if a.jsonOutput {
				return printJSON(cmd.OutOrStdout(), items)
			}
			printItems(cmd.OutOrStdout(), items)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&ownerID, "owner", "", "owner person ID")
	f.StringVar(&name, "name", "", "owner name")
	f.StringVar(&phone, "phone", "", "owner phone")
	f.StringVar(&status, "status", "", "filter by status (stored, picked_up)")
	cmd.MarkFlagsMutuallyExclusive("owner", "name")
	cmd.MarkFlagsRequiredTogether("name", "phone")
	return cmd
}

func (a *app) personCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "person",
		Short: "Look up registered people",
	}

	var name, phone string
	idCmd := &cobra.Command{
		Use:   "id",
		Short: "Print the ID of a person by name and phone",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := store.FindPersonID(cmd.Context(), a.store, name, phone)
			if err != nil {
				return err
			}
			if id == "" {
				return fmt.Errorf("%w: %s (%s)", desk.ErrPersonNotFound, name, phone)
			}
			fmt.Fprintln(cmd.OutOrStdout(), id)
			return nil
		},
	}
	idCmd.Flags().StringVar(&name, "name", "", "person name")
	idCmd.Flags().StringVar(&phone, "phone", "", "person phone")
	_ = idCmd.MarkFlagRequired("name")
	_ = idCmd.MarkFlagRequired("phone")

	showCmd := &cobra.Command{
		Use:   "show <person-id>",
		Short: "Show a person",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := store.GetPerson(cmd.Context(), a.store, args[0])
			if err != nil {
				return err
			}
			if p == nil {
				return fmt.Errorf("%w: %s", desk.ErrPersonNotFound, args[0])
			}
			if a.jsonOutput {
				return printJSON(cmd.OutOrStdout(), p)
			}
			printPeople(cmd.OutOrStdout(), []model.Person{*p})
			return nil
		},
	}

	cmd.AddCommand(idCmd, showCmd)
	return cmd
}

func (a *app) peopleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "people",
		Short: "List registered people",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			people, err := store.ListPeople(cmd.Context(), a.store)
			if err != nil {
				return err
			}
			if a.jsonOutput {
				return printJSON(cmd.OutOrStdout(), people)
			}
			printPeople(cmd.OutOrStdout(), people)
			return nil
		},
	}
}

func (a *app) cellCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cell",
		Short: "Manage storage cells",
	}

	var findCoords model.Coordinates
	findCmd := &cobra.Command{
		Use:   "find",
		Short: "Print the ID of the cell at the given coordinates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := store.FindCellID(cmd.Context(), a.store, findCoords)
			if err != nil {
				return err
			}
			if id == "" {
				return fmt.Errorf("%w: %s", desk.ErrCellNotFound, findCoords)
			}
			fmt.Fprintln(cmd.OutOrStdout(), id)
			return nil
		},
	}
	coordinateFlags(findCmd, &findCoords)

	showCmd := &cobra.Command{
		Use:   "show <cell-id>",
		Short: "Show a cell",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := store.GetCell(cmd.Context(), a.store, args[0])
			if err != nil {
				return err
			}
			if c == nil {
				return fmt.Errorf("%w: %s", desk.ErrCellNotFound, args[0])
			}
			if a.jsonOutput {
				return printJSON(cmd.OutOrStdout(), c)
			}
			printCells(cmd.OutOrStdout(), []model.Cell{*c})
			return nil
		},
	}

	var occupied bool
	setCmd := &cobra.Command{
		Use:   "set <cell-id>",
		Short: "Set the occupancy flag of a cell by hand",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ok, err := store.SetCellOccupied(cmd.Context(), a.store, args[0], occupied)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("%w: %s", desk.ErrCellNotFound, args[0])
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Cell %s occupied: %t\n", args[0], occupied)
			return nil
		},
	}
	setCmd.Flags().BoolVar(&occupied, "occupied", false, "occupancy flag")
	_ = setCmd.MarkFlagRequired("occupied")

	var addCoords model.Coordinates
	addCmd := &cobra.Command{
		Use:   "add <cell-id>",
		Short: "Add a free cell",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := store.CreateCell(cmd.Context(), a.store, args[0], addCoords)
			if err != nil {
				return err
			}
			if a.jsonOutput {
				return printJSON(cmd.OutOrStdout(), c)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added cell %s at %s\n", c.ID, c.Coordinates)
			return nil
		},
	}
	coordinateFlags(addCmd, &addCoords)

	cmd.AddCommand(findCmd, showCmd, setCmd, addCmd)
	return cmd
}

func (a *app) cellsCmd() *cobra.Command {
	var free bool
	cmd := &cobra.Command{
		Use:   "cells",
		Short: "List storage cells",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cells, err := store.ListCells(cmd.Context(), a.store, free)
			if err != nil {
				return err
			}
			if a.jsonOutput {
				return printJSON(cmd.OutOrStdout(), cells)
			}
			printCells(cmd.OutOrStdout(), cells)
			return nil
		},
	}
	cmd.Flags().BoolVar(&free, "free", false, "only free cells")
	return cmd
}

func (a *app) dumpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dump",
		Short: "Print the raw rows of every table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			tables := make(map[string][]sheet.Row, len(sheet.StandardTables))
			for _, name := range sheet.StandardTables {
				records, err := a.store.ReadAll(ctx, name)
				if err != nil {
					return err
				}
				rows := make([]sheet.Row, 0, len(records))
				for _, r := range records {
					rows = append(rows, r.Values)
				}
				tables[name] = rows
			}

			if a.jsonOutput {
				return printJSON(cmd.OutOrStdout(), tables)
			}
			printDump(cmd.OutOrStdout(), tables)
			return nil
		},
	}
}

func (a *app) printItem(cmd *cobra.Command, item *model.Item) error {
	if a.jsonOutput {
		return printJSON(cmd.OutOrStdout(), item)
	}
	printItems(cmd.OutOrStdout(), []model.Item{*item})
	return nil
}

// coordinateFlags registers the four required cell coordinate flags.
func coordinateFlags(cmd *cobra.Command, c *model.Coordinates) {
	f := cmd.Flags()
	f.StringVar(&c.Room, "room", "", "cell room")
	f.StringVar(&c.Row, "row", "", "cell row")
	f.StringVar(&c.Column, "column", "", "cell column")
	f.StringVar(&c.Level, "level", "", "cell level")
	for _, name := range []string{"room", "row", "column", "level"} {
		_ = cmd.MarkFlagRequired(name)
	}
}

// isNotFound reports whether err is a lookup miss rather than a failure.
func isNotFound(err error) bool {
	return errors.Is(err, desk.ErrItemNotFound) ||
		errors.Is(err, desk.ErrCellNotFound) ||
		errors.Is(err, desk.ErrPersonNotFound)
}
