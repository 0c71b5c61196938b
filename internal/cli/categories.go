package cli

import (
	"errors"
	"strings"

	"lifeline-cli/internal/model"
	"lifeline-cli/internal/store"
	"lifeline-cli/internal/subscription"
	"lifeline-cli/internal/timeline"

	"github.com/spf13/cobra"
)

func newCategoriesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "categories",
		Aliases: []string{"cats"},
		Short:   "Category (lane) commands",
	}
	cmd.AddCommand(newCategoriesListCmd(app))
	cmd.AddCommand(newCategoriesAddCmd(app))
	cmd.AddCommand(newCategoriesUpdateCmd(app))
	cmd.AddCommand(newCategoriesDeleteCmd(app))
	cmd.AddCommand(newCategoriesMoveCmd(app))
	return cmd
}

func newCategoriesListCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List categories in display order",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": db.Categories})
		},
	}
	return cmd
}

func newCategoriesAddCmd(app *App) *cobra.Command {
	var name, slug, color, icon, description string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a category",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if !subscription.CanCreateCategory(db.Plan, len(db.Categories)) {
				return writeErr(cmd, subscription.ErrLimitReached(db.Plan, "categories"))
			}

			c, err := store.CreateCategory(db, name, slug, color, icon, description)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := s.Save(db); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": c})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Category name")
	cmd.Flags().StringVar(&slug, "slug", "", "URL-safe identifier (derived from name when empty)")
	cmd.Flags().StringVar(&color, "color", "gray", "Lane color (blue|green|orange|cyan|pink|red|purple|yellow|gray)")
	cmd.Flags().StringVar(&icon, "icon", "", "Icon name")
	cmd.Flags().StringVar(&description, "description", "", "Description")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newCategoriesUpdateCmd(app *App) *cobra.Command {
	var name, color, icon, description string

	cmd := &cobra.Command{
		Use:   "update <category>",
		Short: "Update category fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			cat, ok := findCategory(db, args[0])
			if !ok {
				return writeErr(cmd, errNotFound("category", args[0]))
			}

			var namep, colorp, iconp, descp *string
			if cmd.Flags().Changed("name") {
				namep = &name
			}
			if cmd.Flags().Changed("color") {
				colorp = &color
			}
			if cmd.Flags().Changed("icon") {
				iconp = &icon
			}
			if cmd.Flags().Changed("description") {
				descp = &description
			}

			updated, err := store.UpdateCategory(db, cat.ID, namep, colorp, iconp, descp)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := s.Save(db); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": updated})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Category name")
	cmd.Flags().StringVar(&color, "color", "", "Lane color")
	cmd.Flags().StringVar(&icon, "icon", "", "Icon name")
	cmd.Flags().StringVar(&description, "description", "", "Description")
	return cmd
}

func newCategoriesDeleteCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <category>",
		Short: "Delete a category (refused while events still reference it)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			cat, ok := findCategory(db, args[0])
			if !ok {
				return writeErr(cmd, errNotFound("category", args[0]))
			}
			if err := store.DeleteCategory(db, cat.ID); err != nil {
				return writeErr(cmd, err)
			}
			if err := s.Save(db); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"deleted": cat.ID}})
		},
	}
	return cmd
}

// newCategoriesMoveCmd reorders a lane the same way the TUI does: the move is
// applied to the in-memory sequence first, then persisted; a failed save rolls
// the sequence (and the working copy) back before reporting the error.
func newCategoriesMoveCmd(app *App) *cobra.Command {
	var up, down bool
	var before string

	cmd := &cobra.Command{
		Use:   "move <category>",
		Short: "Move a lane within the display order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			cat, ok := findCategory(db, args[0])
			if !ok {
				return writeErr(cmd, errNotFound("category", args[0]))
			}

			seq := timeline.NewLaneSequence(categoryLanes(db.Categories))

			var attempt timeline.Attempt
			var moved bool
			switch {
			case up:
				attempt, moved = seq.MoveUp(cat.ID)
			case down:
				attempt, moved = seq.MoveDown(cat.ID)
			case strings.TrimSpace(before) != "":
				dst, ok := findCategory(db, before)
				if !ok {
					return writeErr(cmd, errNotFound("category", before))
				}
				attempt, moved = seq.Move(cat.ID, dst.ID)
			default:
				return writeErr(cmd, errors.New("pass one of --up, --down, --before"))
			}
			if !moved {
				return writeOut(cmd, app, map[string]any{"data": db.Categories, "meta": map[string]any{"moved": false}})
			}

			if err := store.ApplyCategoryOrder(db, attempt.OrderedIDs); err != nil {
				return writeErr(cmd, err)
			}
			if err := s.Save(db); err != nil {
				seq.Complete(attempt.Seq, err)
				_ = store.ApplyCategoryOrder(db, orderedIDs(seq))
				return writeErr(cmd, err)
			}
			seq.Complete(attempt.Seq, nil)

			return writeOut(cmd, app, map[string]any{"data": db.Categories, "meta": map[string]any{"moved": true}})
		},
	}

	cmd.Flags().BoolVar(&up, "up", false, "Move one slot up")
	cmd.Flags().BoolVar(&down, "down", false, "Move one slot down")
	cmd.Flags().StringVar(&before, "before", "", "Move onto another category's slot")
	return cmd
}

func findCategory(db *store.DB, ref string) (model.Category, bool) {
	ref = strings.TrimSpace(ref)
	if c, ok := db.CategoryByID(ref); ok {
		return c, true
	}
	for _, c := range db.Categories {
		if strings.EqualFold(c.Slug, ref) || strings.EqualFold(c.Name, ref) {
			return c, true
		}
	}
	return model.Category{}, false
}

func categoryLanes(cats []model.Category) []timeline.Lane {
	lanes := make([]timeline.Lane, 0, len(cats))
	for _, c := range cats {
		lanes = append(lanes, timeline.Lane{ID: c.ID, Label: c.Name, Color: c.Color, Order: c.DisplayOrder})
	}
	return lanes
}

func orderedIDs(seq *timeline.LaneSequence) []string {
	lanes := seq.Lanes()
	ids := make([]string, 0, len(lanes))
	for _, ln := range lanes {
		ids = append(ids, ln.ID)
	}
	return ids
}
