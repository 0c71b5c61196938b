package tui

import (
	"fmt"
	"strings"
	"time"

	"lifeline-cli/internal/store"
	"lifeline-cli/internal/subscription"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type catMgrMode int

const (
	catMgrBrowse catMgrMode = iota
	catMgrAdd
	catMgrRename
)

// categoryManager is the modal for category upkeep. Lane reordering stays on
// the timeline view where the result is visible; this modal covers the rest.
type categoryManager struct {
	cursor  int
	mode    catMgrMode
	input   textinput.Model
	errText string
}

func newCategoryManager() *categoryManager {
	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = 80
	return &categoryManager{input: ti}
}

func (m appModel) updateCategoryKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	cm := m.catMgr
	if cm == nil {
		m.view = viewTimeline
		return m, nil
	}

	if cm.mode != catMgrBrowse {
		switch msg.String() {
		case "esc", "ctrl+g":
			cm.mode = catMgrBrowse
			cm.errText = ""
			return m, nil
		case "enter":
			return m.commitCategoryInput()
		default:
			var cmd tea.Cmd
			cm.input, cmd = cm.input.Update(msg)
			return m, cmd
		}
	}

	switch msg.String() {
	case "esc", "q", "c":
		m.catMgr = nil
		m.view = viewTimeline
		m.surf.reload(m.db, time.Now().UTC())
		return m, nil

	case "j", "down":
		if cm.cursor < len(m.db.Categories)-1 {
			cm.cursor++
		}
	case "k", "up":
		if cm.cursor > 0 {
			cm.cursor--
		}

	case "a":
		if !subscription.CanCreateCategory(m.db.Plan, len(m.db.Categories)) {
			cm.errText = subscription.ErrLimitReached(m.db.Plan, "categories").Error()
			return m, nil
		}
		cm.mode = catMgrAdd
		cm.errText = ""
		cm.input.SetValue("")
		cm.input.Placeholder = "New category name"
		cm.input.Focus()
		return m, textinput.Blink

	case "r":
		if cm.cursor < len(m.db.Categories) {
			cm.mode = catMgrRename
			cm.errText = ""
			cm.input.SetValue(m.db.Categories[cm.cursor].Name)
			cm.input.Focus()
			return m, textinput.Blink
		}

	case "d":
		if cm.cursor >= len(m.db.Categories) {
			return m, nil
		}
		cat := m.db.Categories[cm.cursor]
		if err := store.DeleteCategory(m.db, cat.ID); err != nil {
			cm.errText = err.Error()
			return m, nil
		}
		if err := m.store.Save(m.db); err != nil {
			cm.errText = "save failed: " + err.Error()
			return m, nil
		}
		m.captureStoreModTime()
		if cm.cursor >= len(m.db.Categories) && cm.cursor > 0 {
			cm.cursor--
		}
		return m, nil
	}
	return m, nil
}

func (m appModel) commitCategoryInput() (tea.Model, tea.Cmd) {
	cm := m.catMgr
	name := strings.TrimSpace(cm.input.Value())
	if name == "" {
		cm.mode = catMgrBrowse
		return m, nil
	}

	var err error
	switch cm.mode {
	case catMgrAdd:
		_, err = store.CreateCategory(m.db, name, "", "gray", "", "")
	case catMgrRename:
		if cm.cursor < len(m.db.Categories) {
			id := m.db.Categories[cm.cursor].ID
			_, err = store.UpdateCategory(m.db, id, &name, nil, nil, nil)
		}
	}
	if err != nil {
		cm.errText = err.Error()
		return m, nil
	}
	if err := m.store.Save(m.db); err != nil {
		cm.errText = "save failed: " + err.Error()
		return m, nil
	}
	m.captureStoreModTime()
	cm.mode = catMgrBrowse
	cm.errText = ""
	return m, nil
}

func (cm *categoryManager) renderInto(m appModel, screenWidth int) string {
	bodyW := modalBodyWidth(screenWidth)

	var rows []string
	for i, c := range m.db.Categories {
		marker := "  "
		st := lipgloss.NewStyle().Foreground(laneColor(c.Color))
		if i == cm.cursor {
			marker = "▸ "
			if glyphs() == glyphSetASCII {
				marker = "> "
			}
			st = st.Bold(true)
		}
		count := len(m.db.EventsInCategory(c.ID))
		rows = append(rows, st.Render(truncate(fmt.Sprintf("%s%s (%s, %d events)", marker, c.Name, c.Slug, count), bodyW)))
	}
	if len(rows) == 0 {
		rows = append(rows, styleMuted().Render("No categories yet. Press a to add one."))
	}

	switch cm.mode {
	case catMgrAdd:
		rows = append(rows, "", styleMuted().Render("Name:"), cm.input.View())
	case catMgrRename:
		rows = append(rows, "", styleMuted().Render("Rename to:"), cm.input.View())
	}

	if cm.errText != "" {
		rows = append(rows, "", lipgloss.NewStyle().Foreground(colorFlashErrorFg).Background(colorFlashErrorBg).Padding(0, 1).Render(truncate(cm.errText, bodyW)))
	}

	cats, evs := subscription.Remaining(m.db.Plan, len(m.db.Categories), len(m.db.Events))
	rows = append(rows, "", styleMuted().Render(fmt.Sprintf("Plan %s: %d categories / %d events left", m.db.Plan, cats, evs)))
	rows = append(rows, styleMuted().Render("j/k: move  a: add  r: rename  d: delete  esc: close"))

	return renderModalBox(screenWidth, "Categories", strings.Join(rows, "\n"))
}
