package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"lifeline-cli/internal/model"
	"lifeline-cli/internal/store"
	"lifeline-cli/internal/subscription"
	"lifeline-cli/internal/timeline"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type view int

const (
	viewTimeline view = iota
	viewDetail
	viewForm
	viewConfirmDelete
	viewCategories
)

type reloadTickMsg struct{}

type reorderResultMsg struct {
	seq uint64
	err error
}

type flashClearMsg struct{ gen int }

const laneLabelWidth = 18

type appModel struct {
	dir       string
	workspace string
	store     store.Store
	db        *store.DB

	width  int
	height int

	view view

	surf    *surface
	laneIdx int
	evIdx   int

	form          *eventForm
	confirmTarget model.Event
	confirmFocus  confirmModalFocus
	catMgr        *categoryManager

	flash    string
	flashErr bool
	flashGen int

	lastModTime time.Time
}

func newAppModel(dir, workspace string, db *store.DB) appModel {
	m := appModel{
		dir:       dir,
		workspace: workspace,
		store:     store.Store{Dir: dir},
		db:        db,
		view:      viewTimeline,
		surf:      newSurface(db, time.Now().UTC()),
	}
	m.captureStoreModTime()
	return m
}

func (m appModel) Init() tea.Cmd { return tickReload() }

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.surf.resize(m.gridWidth(), m.gridHeight())
		return m, nil

	case reloadTickMsg:
		// Pick up writes from CLI commands running in another terminal, but never
		// while a reorder save is still in flight.
		if m.surf.lanes.Phase() == timeline.ReorderIdle && m.storeChanged() {
			m.reloadFromDisk()
		}
		return m, tickReload()

	case reorderResultMsg:
		return m.handleReorderResult(msg)

	case flashClearMsg:
		if msg.gen == m.flashGen {
			m.flash = ""
			m.flashErr = false
		}
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case viewTimeline:
			return m.updateTimelineKeys(msg)
		case viewDetail:
			if key := msg.String(); key == "esc" || key == "enter" || key == "q" {
				m.view = viewTimeline
			}
			return m, nil
		case viewForm:
			return m.updateFormKeys(msg)
		case viewConfirmDelete:
			return m.updateConfirmKeys(msg)
		case viewCategories:
			return m.updateCategoryKeys(msg)
		}
	}

	if m.view == viewForm && m.form != nil {
		cmd := m.form.update(msg)
		return m, cmd
	}
	return m, nil
}

func (m appModel) updateTimelineKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "h", "left":
		m.surf.master.ScrollBy(-4, 0)
	case "l", "right":
		m.surf.master.ScrollBy(4, 0)
	case "H":
		m.surf.master.PageLeft()
	case "L":
		m.surf.master.PageRight()
	case "g":
		m.surf.centerOnEarliest()

	case "+", "=":
		m.surf.zoomIn()
	case "-", "_":
		m.surf.zoomOut()
	case "0":
		m.surf.resetZoom()

	case "j", "down":
		m.moveLaneCursor(1)
	case "k", "up":
		m.moveLaneCursor(-1)
	case "tab", "n":
		m.moveEventCursor(1)
	case "shift+tab", "p":
		m.moveEventCursor(-1)

	case "J":
		return m.moveLane(false)
	case "K":
		return m.moveLane(true)

	case "enter":
		if ev, ok := m.selectedEvent(); ok {
			m.confirmTarget = ev
			m.view = viewDetail
		}
		return m, nil

	case "a":
		if !subscription.CanCreateEvent(m.db.Plan, len(m.db.Events)) {
			return m.setFlash(subscription.ErrLimitReached(m.db.Plan, "events").Error(), true)
		}
		m.form = newEventForm(m.db, nil, m.selectedLaneID())
		m.view = viewForm
		return m, m.form.focusCmd()

	case "e":
		if ev, ok := m.selectedEvent(); ok {
			m.form = newEventForm(m.db, &ev, ev.CategoryID)
			m.view = viewForm
			return m, m.form.focusCmd()
		}
		return m, nil

	case "d":
		if ev, ok := m.selectedEvent(); ok {
			m.confirmTarget = ev
			m.confirmFocus = confirmFocusCancel
			m.view = viewConfirmDelete
		}
		return m, nil

	case "c":
		m.catMgr = newCategoryManager()
		m.view = viewCategories
		return m, nil

	case "r":
		m.reloadFromDisk()
		return m, nil
	}
	return m, nil
}

// moveLane reorders the selected lane one slot up or down: the in-memory order
// changes immediately, the save runs in the background, and a failed save rolls
// the order back when its result arrives.
func (m appModel) moveLane(up bool) (tea.Model, tea.Cmd) {
	laneID := m.selectedLaneID()
	if laneID == "" {
		return m, nil
	}
	if laneID == timeline.UncategorizedLaneID {
		return m.setFlash("the Uncategorized lane keeps its place", true)
	}

	var attempt timeline.Attempt
	var moved bool
	if up {
		attempt, moved = m.surf.lanes.MoveUp(laneID)
	} else {
		attempt, moved = m.surf.lanes.MoveDown(laneID)
	}
	if !moved {
		return m, nil
	}

	// Keep the cursor on the lane that moved.
	for i, ln := range m.surf.lanes.Lanes() {
		if ln.ID == laneID {
			m.laneIdx = i
			break
		}
	}

	if err := store.ApplyCategoryOrder(m.db, categoryIDsOf(attempt.OrderedIDs)); err != nil {
		// The implicit lane aside, attempt ids always mirror db categories; treat a
		// mismatch as a failed save and roll back immediately.
		m.surf.lanes.Complete(attempt.Seq, err)
		m.surf.lanes.Settle()
		return m.setFlash("reorder failed: "+err.Error(), true)
	}

	return m, persistSnapshot(m.store, snapshotDB(m.db), attempt.Seq)
}

func (m appModel) handleReorderResult(msg reorderResultMsg) (tea.Model, tea.Cmd) {
	rolledBack, stale := m.surf.lanes.Complete(msg.seq, msg.err)
	if stale {
		return m, nil
	}
	m.surf.lanes.Settle()
	if rolledBack {
		// Restore the persisted order in the working copy as well.
		ids := categoryIDsOf(orderedLaneIDs(m.surf.lanes.Lanes()))
		_ = store.ApplyCategoryOrder(m.db, ids)
		return m.setFlash("could not save lane order, reverted: "+msg.err.Error(), true)
	}
	m.captureStoreModTime()
	return m, nil
}

func (m *appModel) moveLaneCursor(delta int) {
	n := m.surf.lanes.Len()
	if n == 0 {
		return
	}
	m.laneIdx += delta
	if m.laneIdx < 0 {
		m.laneIdx = 0
	}
	if m.laneIdx >= n {
		m.laneIdx = n - 1
	}
	m.evIdx = 0
	m.ensureLaneVisible()
}

func (m *appModel) moveEventCursor(delta int) {
	evs := m.selectedLaneEvents()
	if len(evs) == 0 {
		return
	}
	m.evIdx = (m.evIdx + delta + len(evs)) % len(evs)
	// Bring the event into horizontal view.
	m.surf.master.CenterOn(m.surf.scale.PositionOf(evs[m.evIdx].Start) / pxPerCell)
}

func (m *appModel) ensureLaneVisible() {
	top := m.laneIdx * laneRowHeight
	vp := m.surf.master
	if top < vp.Y() {
		vp.ScrollTo(vp.X(), top)
	} else if top+laneRowHeight > vp.Y()+vp.Height() {
		vp.ScrollTo(vp.X(), top+laneRowHeight-vp.Height())
	}
}

func (m appModel) selectedLaneID() string {
	lanes := m.surf.lanes.Lanes()
	if m.laneIdx < 0 || m.laneIdx >= len(lanes) {
		return ""
	}
	return lanes[m.laneIdx].ID
}

func (m appModel) selectedLaneEvents() []timeline.Event {
	id := m.selectedLaneID()
	if id == "" {
		return nil
	}
	return m.surf.visibleByLane()[id]
}

func (m appModel) selectedEvent() (model.Event, bool) {
	evs := m.selectedLaneEvents()
	if m.evIdx < 0 || m.evIdx >= len(evs) {
		return model.Event{}, false
	}
	return m.db.EventByID(evs[m.evIdx].ID)
}

func (m appModel) setFlash(text string, isErr bool) (tea.Model, tea.Cmd) {
	m.flash = text
	m.flashErr = isErr
	m.flashGen++
	gen := m.flashGen
	return m, tea.Tick(2500*time.Millisecond, func(time.Time) tea.Msg { return flashClearMsg{gen: gen} })
}

func (m appModel) View() string {
	switch m.view {
	case viewDetail:
		return m.placeCentered(m.renderDetailModal())
	case viewForm:
		if m.form != nil {
			return m.placeCentered(m.form.render(m.width))
		}
	case viewConfirmDelete:
		body := fmt.Sprintf("Delete %q (%s)?", m.confirmTarget.Title, m.confirmTarget.StartDate)
		return m.placeCentered(renderConfirmModal(m.width, "Delete event", body, "Delete", "Cancel", m.confirmFocus))
	case viewCategories:
		if m.catMgr != nil {
			return m.placeCentered(m.catMgr.renderInto(m, m.width))
		}
	}
	return m.renderTimeline()
}

func (m appModel) placeCentered(s string) string {
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, s)
}

func (m appModel) updateConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "ctrl+g", "q":
		m.view = viewTimeline
		return m, nil
	case "tab", "left", "right":
		if m.confirmFocus == confirmFocusConfirm {
			m.confirmFocus = confirmFocusCancel
		} else {
			m.confirmFocus = confirmFocusConfirm
		}
		return m, nil
	case "enter":
		if m.confirmFocus != confirmFocusConfirm {
			m.view = viewTimeline
			return m, nil
		}
		if err := store.DeleteEvent(m.db, m.confirmTarget.ID); err != nil {
			m.view = viewTimeline
			return m.setFlash(err.Error(), true)
		}
		if err := m.store.Save(m.db); err != nil {
			m.view = viewTimeline
			return m.setFlash("save failed: "+err.Error(), true)
		}
		m.captureStoreModTime()
		m.surf.reload(m.db, time.Now().UTC())
		m.evIdx = 0
		m.view = viewTimeline
		return m.setFlash("event deleted", false)
	}
	return m, nil
}

func tickReload() tea.Cmd {
	return tea.Tick(750*time.Millisecond, func(time.Time) tea.Msg { return reloadTickMsg{} })
}

func (m *appModel) captureStoreModTime() {
	m.lastModTime = fileModTime(filepath.Join(m.dir, "lifeline.sqlite"))
}

func (m *appModel) storeChanged() bool {
	return fileModTime(filepath.Join(m.dir, "lifeline.sqlite")).After(m.lastModTime)
}

func fileModTime(path string) time.Time {
	st, err := os.Stat(path)
	if err != nil {
		return time.Time{}
	}
	return st.ModTime()
}

func (m *appModel) reloadFromDisk() {
	db, err := m.store.Load()
	if err != nil {
		return
	}
	m.db = db
	m.captureStoreModTime()
	m.surf.reload(db, time.Now().UTC())
	if n := m.surf.lanes.Len(); m.laneIdx >= n && n > 0 {
		m.laneIdx = n - 1
	}
	m.evIdx = 0
}

func (m appModel) gridWidth() int {
	w := m.width - laneLabelWidth
	if w < 20 {
		w = 20
	}
	return w
}

func (m appModel) gridHeight() int {
	// Header, two ruler rows, footer, flash line.
	h := m.height - 5
	if h < 6 {
		h = 6
	}
	return h
}

// persistSnapshot saves a detached copy of the state so the UI goroutine can
// keep mutating its working copy while the write is in flight.
func persistSnapshot(s store.Store, db *store.DB, seq uint64) tea.Cmd {
	return func() tea.Msg {
		return reorderResultMsg{seq: seq, err: s.Save(db)}
	}
}

func snapshotDB(db *store.DB) *store.DB {
	cp := *db
	cp.Categories = append([]model.Category(nil), db.Categories...)
	cp.Events = append([]model.Event(nil), db.Events...)
	cp.Photos = append([]model.Photo(nil), db.Photos...)
	return &cp
}

func categoryIDsOf(laneIDs []string) []string {
	ids := make([]string, 0, len(laneIDs))
	for _, id := range laneIDs {
		if id == timeline.UncategorizedLaneID {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

func orderedLaneIDs(lanes []timeline.Lane) []string {
	ids := make([]string, 0, len(lanes))
	for _, ln := range lanes {
		ids = append(ids, ln.ID)
	}
	return ids
}

func emptyAsDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
