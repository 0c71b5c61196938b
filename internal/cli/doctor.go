package cli

import (
	"errors"
	"fmt"

	"lifeline-cli/internal/store"

	"github.com/spf13/cobra"
)

var errDoctorIssuesFound = errors.New("doctor found issues")

type doctorIssue struct {
	Level   string `json:"level"` // "error" | "warning"
	Subject string `json:"subject"`
	Detail  string `json:"detail"`
}

func newDoctorCmd(app *App) *cobra.Command {
	var fail bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Validate store invariants",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}

			issues := doctorIssues(db)
			hasErrors := false
			for _, is := range issues {
				if is.Level == "error" {
					hasErrors = true
				}
			}

			if err := writeOut(cmd, app, map[string]any{
				"data": issues,
				"meta": map[string]any{
					"issues":    len(issues),
					"hasErrors": hasErrors,
				},
			}); err != nil {
				return err
			}

			if fail && hasErrors {
				return errDoctorIssuesFound
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&fail, "fail", false, "Exit with non-zero status if errors are found")
	return cmd
}

func doctorIssues(db *store.DB) []doctorIssue {
	var issues []doctorIssue

	catIDs := map[string]bool{}
	orders := map[int]string{}
	for _, c := range db.Categories {
		catIDs[c.ID] = true
		if other, dup := orders[c.DisplayOrder]; dup {
			issues = append(issues, doctorIssue{
				Level:   "error",
				Subject: c.ID,
				Detail:  fmt.Sprintf("display order %d duplicated with %s", c.DisplayOrder, other),
			})
		}
		orders[c.DisplayOrder] = c.ID
	}

	eventIDs := map[string]bool{}
	for _, e := range db.Events {
		eventIDs[e.ID] = true

		if !catIDs[e.CategoryID] {
			// Orphans still render (in the implicit Uncategorized lane), so this is
			// a warning, not an error.
			issues = append(issues, doctorIssue{
				Level:   "warning",
				Subject: e.ID,
				Detail:  fmt.Sprintf("category %s does not exist; event renders as uncategorized", e.CategoryID),
			})
		}

		start, err := e.Start()
		if err != nil {
			issues = append(issues, doctorIssue{
				Level:   "error",
				Subject: e.ID,
				Detail:  "start date is not YYYY-MM-DD: " + e.StartDate,
			})
			continue
		}
		if end, ok := e.End(); ok && end.Before(start) {
			issues = append(issues, doctorIssue{
				Level:   "warning",
				Subject: e.ID,
				Detail:  "end date precedes start; event renders with zero duration",
			})
		}
	}

	for _, p := range db.Photos {
		if !eventIDs[p.EventID] {
			issues = append(issues, doctorIssue{
				Level:   "error",
				Subject: p.ID,
				Detail:  "photo references missing event " + p.EventID,
			})
		}
	}

	return issues
}
