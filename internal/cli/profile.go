package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

func newProfileCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Profile commands",
	}
	cmd.AddCommand(newProfileShowCmd(app))
	cmd.AddCommand(newProfileSetCmd(app))
	return cmd
}

func newProfileShowCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": db.Profile})
		},
	}
	return cmd
}

func newProfileSetCmd(app *App) *cobra.Command {
	var name string
	var email string
	var birthdate string

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Update profile fields",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}

			if cmd.Flags().Changed("name") {
				db.Profile.Name = strings.TrimSpace(name)
			}
			if cmd.Flags().Changed("email") {
				db.Profile.Email = strings.TrimSpace(email)
			}
			if cmd.Flags().Changed("birthdate") {
				v := strings.TrimSpace(birthdate)
				db.Profile.Birthdate = v
				if v != "" {
					if _, ok := db.Profile.BirthdateTime(); !ok {
						return writeErr(cmd, errInvalidDate("--birthdate", v))
					}
				}
			}

			if err := s.Save(db); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": db.Profile})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Display name")
	cmd.Flags().StringVar(&email, "email", "", "Email address")
	cmd.Flags().StringVar(&birthdate, "birthdate", "", "Birthdate (YYYY-MM-DD); anchors an empty timeline")
	return cmd
}
