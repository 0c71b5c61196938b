package tui

import (
	"fmt"
	"math"
	"strings"

	"lifeline-cli/internal/timeline"

	"github.com/charmbracelet/lipgloss"
)

// rowPainter composes one terminal row out of styled cell runs. Painting works
// on a plain rune grid; styling is applied per run when the row is rendered,
// which keeps cut/overlay logic independent of ANSI escape sequences.
type rowPainter struct {
	cells  []rune
	sid    []int
	styles []lipgloss.Style
}

func newRowPainter(width int) *rowPainter {
	p := &rowPainter{
		cells:  make([]rune, width),
		sid:    make([]int, width),
		styles: []lipgloss.Style{lipgloss.NewStyle()},
	}
	for i := range p.cells {
		p.cells[i] = ' '
	}
	return p
}

func (p *rowPainter) addStyle(st lipgloss.Style) int {
	p.styles = append(p.styles, st)
	return len(p.styles) - 1
}

func (p *rowPainter) paint(x int, r rune, sid int) {
	if x < 0 || x >= len(p.cells) {
		return
	}
	p.cells[x] = r
	p.sid[x] = sid
}

func (p *rowPainter) paintString(x int, s string, sid int) {
	for _, r := range s {
		p.paint(x, r, sid)
		x++
	}
}

func (p *rowPainter) render() string {
	var b strings.Builder
	i := 0
	for i < len(p.cells) {
		j := i
		for j < len(p.cells) && p.sid[j] == p.sid[i] {
			j++
		}
		run := string(p.cells[i:j])
		if p.sid[i] == 0 {
			b.WriteString(run)
		} else {
			b.WriteString(p.styles[p.sid[i]].Render(run))
		}
		i = j
	}
	return b.String()
}

func (m appModel) renderTimeline() string {
	gridW := m.gridWidth()
	gridH := m.gridHeight()

	header := m.renderHeader()
	ruler := m.renderRuler(gridW)
	labels := m.renderLaneLabels(laneLabelWidth, gridH)
	grid := m.renderGrid(gridW, gridH)

	rulerRow := normalizePane(strings.Repeat(" ", laneLabelWidth), laneLabelWidth, 2)
	body := lipgloss.JoinHorizontal(lipgloss.Top,
		normalizePane(labels, laneLabelWidth, gridH),
		normalizePane(grid, gridW, gridH),
	)
	top := lipgloss.JoinHorizontal(lipgloss.Top, rulerRow, normalizePane(ruler, gridW, 2))

	footer := styleMuted().Render("h/l: scroll  H/L: page  +/-/0: zoom  g: first event  j/k: lane  J/K: move lane  tab: event  enter: detail  a/e/d: add/edit/delete  c: categories  q: quit")

	flashLine := ""
	if m.flash != "" {
		st := lipgloss.NewStyle().Foreground(colorSurfaceFg)
		if m.flashErr {
			st = lipgloss.NewStyle().Foreground(colorFlashErrorFg).Background(colorFlashErrorBg).Padding(0, 1)
		}
		flashLine = st.Render(m.flash)
	}

	return strings.Join([]string{header, top, body, footer, flashLine}, "\n")
}

func (m appModel) renderHeader() string {
	hidden := m.surf.hiddenCount()
	hiddenNote := ""
	if hidden > 0 {
		hiddenNote = fmt.Sprintf("  %s %d more at higher zoom", glyphBullet(), hidden)
	}
	title := lipgloss.NewStyle().Bold(true).Render("Lifeline")
	meta := lipgloss.NewStyle().Foreground(colorChromeMutedFg).Render(fmt.Sprintf(
		"  Workspace=%s  Plan=%s  Zoom=%.2fx%s",
		emptyAsDash(m.workspace), string(m.db.Plan), m.surf.scale.Zoom(), hiddenNote,
	))
	return title + meta
}

// renderRuler draws two rows: year labels on top, month ticks beneath. Both
// follow the master's horizontal offset, so they stay aligned with the grid.
func (m appModel) renderRuler(width int) string {
	years := newRowPainter(width)
	months := newRowPainter(width)

	yearStyle := years.addStyle(lipgloss.NewStyle().Bold(true).Foreground(colorRulerFg))
	monthStyle := months.addStyle(lipgloss.NewStyle().Foreground(colorRulerFg))
	tickStyle := months.addStyle(faintIfDark(lipgloss.NewStyle().Foreground(colorRulerTickFg)))

	lastYearEnd := -1
	lastMonthEnd := -1
	for _, tick := range m.surf.scale.Ticks() {
		x := cellOf(m.surf.scale.PositionOf(tick.Date)) - m.surf.rulerX
		if x < 0 || x >= width {
			continue
		}

		if tick.YearStart {
			label := fmt.Sprintf("%d", tick.Date.Year())
			if x > lastYearEnd {
				years.paintString(x, label, yearStyle)
				lastYearEnd = x + len(label)
			}
		}

		if tick.ShowLabel {
			label := tick.Date.Format("Jan")
			if x > lastMonthEnd {
				months.paintString(x, label, monthStyle)
				lastMonthEnd = x + len(label)
			}
		} else if x > lastMonthEnd {
			months.paint(x, []rune(glyphTickMinor())[0], tickStyle)
		}
	}

	return years.render() + "\n" + months.render()
}

func (m appModel) renderLaneLabels(width, height int) string {
	lines := make([]string, height)
	lanes := m.surf.lanes.Lanes()
	byLane := m.surf.visibleByLane()

	for i, lane := range lanes {
		row := i*laneRowHeight - m.surf.labelY
		if row < 0 || row >= height {
			continue
		}

		st := lipgloss.NewStyle().Foreground(laneColor(lane.Color)).Bold(true)
		label := truncate(lane.Label, width-4)
		if i == m.laneIdx {
			marker := "▸ "
			if glyphs() == glyphSetASCII {
				marker = "> "
			}
			label = marker + label
			if m.surf.lanes.Phase() == timeline.ReorderPending {
				st = st.Italic(true)
			}
		} else {
			label = "  " + label
		}
		lines[row] = st.Render(label)

		if row+1 < height {
			lines[row+1] = styleMuted().Render(fmt.Sprintf("  %d", len(byLane[lane.ID])))
		}
	}
	return strings.Join(lines, "\n")
}

func (m appModel) renderGrid(width, height int) string {
	lanes := m.surf.lanes.Lanes()
	byLane := m.surf.visibleByLane()
	vp := m.surf.master

	todayCell := cellOf(m.surf.scale.PositionOf(m.surf.scale.Now())) - vp.X()

	lines := make([]string, height)
	for row := 0; row < height; row++ {
		p := newRowPainter(width)
		todayStyle := p.addStyle(lipgloss.NewStyle().Foreground(colorTodayFg))

		contentRow := row + vp.Y()
		laneI := contentRow / laneRowHeight
		isBarRow := contentRow%laneRowHeight == 0

		if isBarRow && laneI >= 0 && laneI < len(lanes) {
			lane := lanes[laneI]
			for evI, ev := range byLane[lane.ID] {
				m.paintEventBar(p, lane, ev, laneI == m.laneIdx && evI == m.evIdx)
			}
		}

		if todayCell >= 0 && todayCell < width && p.cells[todayCell] == ' ' {
			p.paint(todayCell, []rune(glyphToday())[0], todayStyle)
		}
		lines[row] = p.render()
	}
	return strings.Join(lines, "\n")
}

func (m appModel) paintEventBar(p *rowPainter, lane timeline.Lane, ev timeline.Event, selected bool) {
	vp := m.surf.master
	x0 := cellOf(m.surf.scale.PositionOf(ev.Start)) - vp.X()
	w := int(math.Ceil(m.surf.scale.WidthOf(ev) / pxPerCell))
	if w < 1 {
		w = 1
	}
	x1 := x0 + w // exclusive

	st := lipgloss.NewStyle().Foreground(laneColor(lane.Color))
	if selected {
		st = st.Reverse(true).Bold(true)
	}
	sid := p.addStyle(st)

	fill := []rune(glyphBarFill())[0]
	for x := x0; x < x1; x++ {
		p.paint(x, fill, sid)
	}
	p.paint(x0, []rune(glyphBarStart())[0], sid)
	if ev.End == nil {
		p.paint(x1-1, []rune(glyphOngoingArrow())[0], sid)
	}

	// Overlay the title inside the bar when there is room, otherwise after it.
	title := " " + ev.Title + " "
	if w > len([]rune(title))+1 {
		p.paintString(x0+1, truncate(title, w-2), sid)
	} else {
		p.paintString(x1+1, truncate(ev.Title, 24), sid)
	}
}
