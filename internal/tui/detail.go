package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m appModel) renderDetailModal() string {
	ev := m.confirmTarget
	bodyW := modalBodyWidth(m.width)

	cat := "Uncategorized"
	catColor := "gray"
	if c, ok := m.db.CategoryByID(ev.CategoryID); ok {
		cat = c.Name
		catColor = c.Color
	}

	when := ev.StartDate
	if ev.EndDate != nil {
		when += "  to  " + *ev.EndDate
	} else {
		when += "  (ongoing)"
	}

	var rows []string
	rows = append(rows, lipgloss.NewStyle().Foreground(laneColor(catColor)).Bold(true).Render(cat))
	rows = append(rows, styleMuted().Render(when))
	if strings.TrimSpace(ev.Location) != "" {
		rows = append(rows, styleMuted().Render(glyphBullet()+" "+ev.Location))
	}

	if md := renderMarkdown(ev.Description, bodyW); md != "" {
		rows = append(rows, "", md)
	}

	if photos := m.db.PhotosForEvent(ev.ID); len(photos) > 0 {
		rows = append(rows, "", styleMuted().Render(fmt.Sprintf("%d photo(s):", len(photos))))
		for _, ph := range photos {
			line := "  " + glyphBullet() + " " + ph.Path
			if strings.TrimSpace(ph.Caption) != "" {
				line += "  " + ph.Caption
			}
			rows = append(rows, styleMuted().Render(truncate(line, bodyW)))
		}
	}

	rows = append(rows, "", styleMuted().Render("enter/esc: close"))

	return renderModalBox(m.width, ev.Title, strings.Join(rows, "\n"))
}
