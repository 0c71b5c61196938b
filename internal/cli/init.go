package cli

import (
	"path/filepath"
	"strings"

	"lifeline-cli/internal/store"

	"github.com/spf13/cobra"
)

func newInitCmd(app *App) *cobra.Command {
	var name string
	var birthdate string
	var noSeed bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize local storage (workspace-first)",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := s.Ensure(); err != nil {
				return writeErr(cmd, err)
			}

			if v := strings.TrimSpace(name); v != "" {
				db.Profile.Name = v
			}
			if v := strings.TrimSpace(birthdate); v != "" {
				db.Profile.Birthdate = v
				if _, ok := db.Profile.BirthdateTime(); !ok {
					return writeErr(cmd, errInvalidDate("--birthdate", v))
				}
			}

			seeded := 0
			if !noSeed && len(db.Categories) == 0 {
				if err := store.SeedDefaultCategories(db); err != nil {
					return writeErr(cmd, err)
				}
				seeded = len(db.Categories)
			}

			if err := s.Save(db); err != nil {
				return writeErr(cmd, err)
			}

			// If we're in workspace mode but no current workspace is set, set it.
			if app.Workspace != "" {
				cfg, err := store.LoadConfig()
				if err == nil && cfg.CurrentWorkspace == "" {
					cfg.CurrentWorkspace = app.Workspace
					_ = store.SaveConfig(cfg)
				}
			}

			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{
					"dir":              app.Dir,
					"sqlitePath":       filepath.Join(app.Dir, "lifeline.sqlite"),
					"workspace":        app.Workspace,
					"seededCategories": seeded,
				},
				"_hints": []string{
					"lifeline categories list",
					"lifeline events add --title ... --category ... --start YYYY-MM-DD",
				},
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Profile name")
	cmd.Flags().StringVar(&birthdate, "birthdate", "", "Profile birthdate (YYYY-MM-DD); anchors an empty timeline")
	cmd.Flags().BoolVar(&noSeed, "no-seed", false, "Skip seeding the default categories")
	return cmd
}
