package tui

import (
	"strings"
	"time"

	"lifeline-cli/internal/model"
	"lifeline-cli/internal/store"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	formFieldTitle = iota
	formFieldCategory
	formFieldStart
	formFieldEnd
	formFieldLocation
	formFieldDescription
	formFieldCount
)

type eventForm struct {
	editID string // empty means create

	title       textinput.Model
	category    textinput.Model
	start       textinput.Model
	end         textinput.Model
	location    textinput.Model
	description textarea.Model

	focus   int
	errText string
}

func newEventForm(db *store.DB, ev *model.Event, categoryID string) *eventForm {
	f := &eventForm{}

	mk := func(placeholder string) textinput.Model {
		ti := textinput.New()
		ti.Placeholder = placeholder
		ti.Prompt = ""
		ti.CharLimit = 200
		return ti
	}

	f.title = mk("Title")
	f.category = mk("Category (name or slug)")
	f.start = mk("Start (YYYY-MM-DD)")
	f.end = mk("End (YYYY-MM-DD, empty = ongoing)")
	f.location = mk("Location")

	f.description = textarea.New()
	f.description.Placeholder = "Description (markdown)"
	f.description.SetHeight(5)

	if c, ok := db.CategoryByID(categoryID); ok {
		f.category.SetValue(c.Slug)
	}

	if ev != nil {
		f.editID = ev.ID
		f.title.SetValue(ev.Title)
		f.start.SetValue(ev.StartDate)
		if ev.EndDate != nil {
			f.end.SetValue(*ev.EndDate)
		}
		f.location.SetValue(ev.Location)
		f.description.SetValue(ev.Description)
	} else {
		f.start.SetValue(time.Now().UTC().Format("2006-01-02"))
	}

	f.setFocus(formFieldTitle)
	return f
}

func (f *eventForm) focusCmd() tea.Cmd { return textinput.Blink }

func (f *eventForm) setFocus(idx int) {
	f.focus = (idx + formFieldCount) % formFieldCount
	inputs := []*textinput.Model{&f.title, &f.category, &f.start, &f.end, &f.location}
	for i, in := range inputs {
		if i == f.focus {
			in.Focus()
		} else {
			in.Blur()
		}
	}
	if f.focus == formFieldDescription {
		f.description.Focus()
	} else {
		f.description.Blur()
	}
}

func (f *eventForm) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch f.focus {
	case formFieldTitle:
		f.title, cmd = f.title.Update(msg)
	case formFieldCategory:
		f.category, cmd = f.category.Update(msg)
	case formFieldStart:
		f.start, cmd = f.start.Update(msg)
	case formFieldEnd:
		f.end, cmd = f.end.Update(msg)
	case formFieldLocation:
		f.location, cmd = f.location.Update(msg)
	case formFieldDescription:
		f.description, cmd = f.description.Update(msg)
	}
	return cmd
}

func (f *eventForm) input(db *store.DB) store.EventInput {
	catID := ""
	if c, ok := categoryByRef(db, f.category.Value()); ok {
		catID = c.ID
	}
	in := store.EventInput{
		CategoryID:  catID,
		Title:       strings.TrimSpace(f.title.Value()),
		Description: strings.TrimRight(f.description.Value(), "\n"),
		StartDate:   strings.TrimSpace(f.start.Value()),
		Location:    strings.TrimSpace(f.location.Value()),
	}
	if end := strings.TrimSpace(f.end.Value()); end != "" {
		in.EndDate = &end
	}
	return in
}

// categoryByRef resolves a user-typed category reference: id, slug, or name
// (case-insensitive).
func categoryByRef(db *store.DB, ref string) (model.Category, bool) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return model.Category{}, false
	}
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

func (m appModel) updateFormKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	f := m.form
	if f == nil {
		m.view = viewTimeline
		return m, nil
	}

	switch msg.String() {
	case "esc", "ctrl+g":
		m.form = nil
		m.view = viewTimeline
		return m, nil

	case "tab", "enter":
		// Enter advances like Tab except inside the description, where it inserts
		// a newline.
		if msg.String() == "enter" && f.focus == formFieldDescription {
			break
		}
		f.setFocus(f.focus + 1)
		return m, nil

	case "shift+tab":
		f.setFocus(f.focus - 1)
		return m, nil

	case "ctrl+s":
		in := f.input(m.db)
		var err error
		if f.editID == "" {
			_, err = store.CreateEvent(m.db, in)
		} else {
			_, err = store.UpdateEvent(m.db, f.editID, in)
		}
		if err != nil {
			f.errText = err.Error()
			return m, nil
		}
		if err := m.store.Save(m.db); err != nil {
			f.errText = "save failed: " + err.Error()
			return m, nil
		}
		m.captureStoreModTime()
		m.surf.reload(m.db, time.Now().UTC())
		m.form = nil
		m.view = viewTimeline
		return m.setFlash("event saved", false)
	}

	return m, f.update(msg)
}

func (f *eventForm) render(screenWidth int) string {
	bodyW := modalBodyWidth(screenWidth)

	label := func(s string, focused bool) string {
		st := styleMuted()
		if focused {
			st = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
		}
		return st.Render(s)
	}

	rows := []string{
		label("Title", f.focus == formFieldTitle),
		f.title.View(),
		label("Category", f.focus == formFieldCategory),
		f.category.View(),
		label("Start", f.focus == formFieldStart),
		f.start.View(),
		label("End", f.focus == formFieldEnd),
		f.end.View(),
		label("Location", f.focus == formFieldLocation),
		f.location.View(),
		label("Description", f.focus == formFieldDescription),
		f.description.View(),
	}

	if f.errText != "" {
		rows = append(rows, "", lipgloss.NewStyle().Foreground(colorFlashErrorFg).Background(colorFlashErrorBg).Padding(0, 1).Render(truncate(f.errText, bodyW)))
	}
	rows = append(rows, "", styleMuted().Render("tab: next field   ctrl+s: save   esc: cancel"))

	title := "Add event"
	if f.editID != "" {
		title = "Edit event"
	}
	return renderModalBox(screenWidth, title, strings.Join(rows, "\n"))
}
