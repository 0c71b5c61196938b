package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

func newPhotosCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "photos",
		Short: "Photo attachments",
	}
	cmd.AddCommand(newPhotosAttachCmd(app))
	cmd.AddCommand(newPhotosRemoveCmd(app))
	return cmd
}

func newPhotosAttachCmd(app *App) *cobra.Command {
	var caption string

	cmd := &cobra.Command{
		Use:   "attach <event-id> <file>",
		Short: "Copy an image into the workspace and attach it to an event",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			eventID := strings.TrimSpace(args[0])
			if _, ok := db.EventByID(eventID); !ok {
				return writeErr(cmd, errNotFound("event", eventID))
			}

			ph, err := s.AttachPhoto(db, eventID, args[1], caption)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := s.Save(db); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": ph})
		},
	}

	cmd.Flags().StringVar(&caption, "caption", "", "Photo caption")
	return cmd
}

func newPhotosRemoveCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove <photo-id>",
		Short: "Detach a photo and delete its file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			id := strings.TrimSpace(args[0])
			if err := s.RemovePhoto(db, id); err != nil {
				return writeErr(cmd, err)
			}
			if err := s.Save(db); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"removed": id}})
		},
	}
	return cmd
}
