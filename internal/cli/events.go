package cli

import (
	"strings"
	"time"

	"lifeline-cli/internal/store"
	"lifeline-cli/internal/subscription"
	"lifeline-cli/internal/timeline"

	"github.com/spf13/cobra"
)

func newEventsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "events",
		Short: "Event commands",
	}
	cmd.AddCommand(newEventsListCmd(app))
	cmd.AddCommand(newEventsAddCmd(app))
	cmd.AddCommand(newEventsShowCmd(app))
	cmd.AddCommand(newEventsUpdateCmd(app))
	cmd.AddCommand(newEventsDeleteCmd(app))
	cmd.AddCommand(newEventsLayoutCmd(app))
	return cmd
}

func newEventsListCmd(app *App) *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List events sorted by start date",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}

			events := db.Events
			if strings.TrimSpace(category) != "" {
				cat, ok := findCategory(db, category)
				if !ok {
					return writeErr(cmd, errNotFound("category", category))
				}
				events = db.EventsInCategory(cat.ID)
			}
			return writeOut(cmd, app, map[string]any{"data": events})
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "Only events in this category (id, slug, or name)")
	return cmd
}

// newEventsLayoutCmd exposes the layout engine on the scriptable surface:
// pixel positions, widths, and detail-filter visibility at a given zoom.
func newEventsLayoutCmd(app *App) *cobra.Command {
	var zoom float64

	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Compute timeline geometry for every event at a given zoom",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}

			now := time.Now().UTC()
			events := timelineEventsOf(db)
			fallback := time.Time{}
			if t, ok := db.Profile.BirthdateTime(); ok {
				fallback = t
			}
			scale := timeline.NewScale(timeline.DefaultConfig(), events, fallback, now)
			for scale.Zoom() < zoom && scale.ZoomIn() {
			}
			for scale.Zoom() > zoom && scale.ZoomOut() {
			}

			type row struct {
				ID      string  `json:"id"`
				Title   string  `json:"title"`
				LaneID  string  `json:"laneId"`
				X       float64 `json:"x"`
				Width   float64 `json:"width"`
				Visible bool    `json:"visible"`
			}
			rows := make([]row, 0, len(events))
			for _, ev := range events {
				rows = append(rows, row{
					ID:      ev.ID,
					Title:   ev.Title,
					LaneID:  ev.LaneID,
					X:       scale.PositionOf(ev.Start),
					Width:   scale.WidthOf(ev),
					Visible: scale.Visible(ev),
				})
			}

			return writeOut(cmd, app, map[string]any{
				"data": rows,
				"meta": map[string]any{
					"zoom":        scale.Zoom(),
					"domainStart": scale.DomainStart().Format("2006-01-02"),
					"domainEnd":   scale.DomainEnd().Format("2006-01-02"),
					"totalWidth":  scale.TotalWidth(),
				},
			})
		},
	}

	cmd.Flags().Float64Var(&zoom, "zoom", 1.0, "Zoom factor (clamped to the configured range, stepped like the TUI)")
	return cmd
}

func newEventsAddCmd(app *App) *cobra.Command {
	var title, category, start, end, location, description string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create an event",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if !subscription.CanCreateEvent(db.Plan, len(db.Events)) {
				return writeErr(cmd, subscription.ErrLimitReached(db.Plan, "events"))
			}

			cat, ok := findCategory(db, category)
			if !ok {
				return writeErr(cmd, errNotFound("category", category))
			}

			in := store.EventInput{
				CategoryID:  cat.ID,
				Title:       strings.TrimSpace(title),
				Description: description,
				StartDate:   strings.TrimSpace(start),
				Location:    strings.TrimSpace(location),
			}
			if v := strings.TrimSpace(end); v != "" {
				in.EndDate = &v
			}

			ev, err := store.CreateEvent(db, in)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := s.Save(db); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": ev})
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Event title")
	cmd.Flags().StringVar(&category, "category", "", "Category (id, slug, or name)")
	cmd.Flags().StringVar(&start, "start", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "End date (YYYY-MM-DD); empty = ongoing")
	cmd.Flags().StringVar(&location, "location", "", "Location")
	cmd.Flags().StringVar(&description, "description", "", "Description (markdown)")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("category")
	_ = cmd.MarkFlagRequired("start")
	return cmd
}

func newEventsShowCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <event-id>",
		Short: "Show one event with its photos",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			ev, ok := db.EventByID(strings.TrimSpace(args[0]))
			if !ok {
				return writeErr(cmd, errNotFound("event", args[0]))
			}
			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{
					"event":  ev,
					"photos": db.PhotosForEvent(ev.ID),
				},
			})
		},
	}
	return cmd
}

func newEventsUpdateCmd(app *App) *cobra.Command {
	var title, category, start, end, location, description string

	cmd := &cobra.Command{
		Use:   "update <event-id>",
		Short: "Update event fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			ev, ok := db.EventByID(strings.TrimSpace(args[0]))
			if !ok {
				return writeErr(cmd, errNotFound("event", args[0]))
			}

			in := store.EventInput{
				CategoryID:  ev.CategoryID,
				Title:       ev.Title,
				Description: ev.Description,
				StartDate:   ev.StartDate,
				EndDate:     ev.EndDate,
				Location:    ev.Location,
			}
			if cmd.Flags().Changed("title") {
				in.Title = strings.TrimSpace(title)
			}
			if cmd.Flags().Changed("category") {
				cat, ok := findCategory(db, category)
				if !ok {
					return writeErr(cmd, errNotFound("category", category))
				}
				in.CategoryID = cat.ID
			}
			if cmd.Flags().Changed("start") {
				in.StartDate = strings.TrimSpace(start)
			}
			if cmd.Flags().Changed("end") {
				if v := strings.TrimSpace(end); v == "" {
					in.EndDate = nil
				} else {
					in.EndDate = &v
				}
			}
			if cmd.Flags().Changed("location") {
				in.Location = strings.TrimSpace(location)
			}
			if cmd.Flags().Changed("description") {
				in.Description = description
			}

			updated, err := store.UpdateEvent(db, ev.ID, in)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := s.Save(db); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": updated})
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Event title")
	cmd.Flags().StringVar(&category, "category", "", "Category (id, slug, or name)")
	cmd.Flags().StringVar(&start, "start", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "End date; empty clears it (ongoing)")
	cmd.Flags().StringVar(&location, "location", "", "Location")
	cmd.Flags().StringVar(&description, "description", "", "Description (markdown)")
	return cmd
}

func newEventsDeleteCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <event-id>",
		Short: "Delete an event and its photo records",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			id := strings.TrimSpace(args[0])
			if err := store.DeleteEvent(db, id); err != nil {
				return writeErr(cmd, err)
			}
			if err := s.Save(db); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"deleted": id}})
		},
	}
	return cmd
}

func timelineEventsOf(db *store.DB) []timeline.Event {
	var out []timeline.Event
	for _, e := range db.Events {
		start, err := e.Start()
		if err != nil {
			continue
		}
		tev := timeline.Event{ID: e.ID, LaneID: e.CategoryID, Title: e.Title, Start: start}
		if end, ok := e.End(); ok {
			tev.End = &end
		}
		out = append(out, tev)
	}
	return out
}
