// Package tui hosts the pages in the terminal. A menu lists the pages; a
// page view shows its controls next to its output and re-runs the page on
// every control change.
package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	log "github.com/sirupsen/logrus"

	"github.com/san-kum/vipor/internal/export"
	"github.com/san-kum/vipor/internal/figure"
	"github.com/san-kum/vipor/internal/pages"
	"github.com/san-kum/vipor/internal/viz"
)

type state int

const (
	stateMenu state = iota
	statePage
)

const (
	tickInterval = 60 * time.Millisecond
	controlWidth = 38
	orbitStep    = 15.0
)

type model struct {
	ctx  context.Context
	book *pages.Book

	state  state
	cursor int

	page      pages.Page
	controls  []pages.Control
	values    pages.Values
	ctlCursor int

	out       *pages.Output
	err       error
	rendering bool
	seq       int
	elapsed   time.Duration

	visual  int
	frame   int
	playing bool
	ticking bool
	spin    int
	scroll  int

	cam     *viz.Camera
	animCam *viz.Camera
	theme   viz.Theme
	styles  viz.Styles

	snapDir string
	snaps   int
	status  string

	width  int
	height int
}

func newModel(ctx context.Context, book *pages.Book, snapDir string) model {
	return model{
		ctx:     ctx,
		book:    book,
		cam:     viz.NewCamera(),
		animCam: viz.NewCamera(),
		theme:   viz.ThemeNebula,
		styles:  viz.NewStyles(viz.ThemeNebula),
		snapDir: snapDir,
		width:   100,
		height:  32,
	}
}

// Run starts the terminal host. Snapshots of the current view are written
// to snapDir.
func Run(ctx context.Context, book *pages.Book, snapDir string) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	p := tea.NewProgram(newModel(ctx, book, snapDir), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

type tickMsg time.Time

type renderedMsg struct {
	seq     int
	out     *pages.Output
	err     error
	elapsed time.Duration
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// render runs the page off the UI goroutine. Results of older runs are
// dropped by sequence number.
func render(ctx context.Context, page pages.Page, values pages.Values, seq int) tea.Cmd {
	vals := make(pages.Values, len(values))
	for k, v := range values {
		vals[k] = v
	}
	return func() tea.Msg {
		start := time.Now()
		out, err := page.Run(ctx, vals)
		return renderedMsg{seq: seq, out: out, err: err, elapsed: time.Since(start)}
	}
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.state == stateMenu {
			return m.menuKey(msg)
		}
		return m.pageKey(msg)
	case renderedMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		m.rendering = false
		m.out, m.err, m.elapsed = msg.out, msg.err, msg.elapsed
		if m.err != nil {
			log.WithError(m.err).WithField("page", m.page.Slug()).Warn("page failed")
		}
		m.frame = 0
		if n := len(m.visuals()); m.visual >= n {
			m.visual = max(0, n-1)
		}
		cmd := m.startTicking()
		return m, cmd
	case tickMsg:
		m.spin++
		moving := m.cam.Step()
		if m.playing {
			if anim := m.currentAnimation(); anim != nil && len(anim.Frames) > 0 {
				m.frame = (m.frame + 1) % len(anim.Frames)
			}
		}
		if m.rendering || m.playing || moving {
			return m, tick()
		}
		m.ticking = false
		return m, nil
	}
	return m, nil
}

func (m *model) startTicking() tea.Cmd {
	if m.ticking {
		return nil
	}
	m.ticking = true
	return tick()
}

func (m model) menuKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	all := m.book.Pages()
	switch msg.String() {
	case "q", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(all)-1 {
			m.cursor++
		}
	case "t":
		m.setTheme(viz.NextTheme(m.theme.Name))
	case "enter", " ":
		m.page = all[m.cursor]
		m.values = pages.Values{}
		m.controls = m.page.Controls(m.values)
		m.values = pages.Defaults(m.controls)
		m.ctlCursor, m.visual, m.scroll = 0, 0, 0
		m.out, m.err = nil, nil
		m.state = statePage
		cmd := m.rerun()
		return m, tea.Batch(tea.ClearScreen, cmd)
	}
	return m, nil
}

func (m model) pageKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		m.state = stateMenu
		m.playing = false
		m.seq++
		return m, tea.ClearScreen
	case "up", "k":
		if m.ctlCursor > 0 {
			m.ctlCursor--
		}
	case "down", "j":
		if m.ctlCursor < len(m.controls)-1 {
			m.ctlCursor++
		}
	case "left", "h":
		return m.adjust(-1)
	case "right", "l", "enter":
		return m.adjust(1)
	case "tab":
		if n := len(m.visuals()); n > 0 {
			m.visual = (m.visual + 1) % n
			m.frame = 0
		}
	case "shift+tab":
		if n := len(m.visuals()); n > 0 {
			m.visual = (m.visual + n - 1) % n
			m.frame = 0
		}
	case " ", "p":
		m.playing = !m.playing
		if m.playing {
			cmd := m.startTicking()
			return m, cmd
		}
	case "a":
		m.cam.Orbit(-orbitStep, 0)
		cmd := m.startTicking()
		return m, cmd
	case "d":
		m.cam.Orbit(orbitStep, 0)
		cmd := m.startTicking()
		return m, cmd
	case "w":
		m.cam.Orbit(0, orbitStep)
		cmd := m.startTicking()
		return m, cmd
	case "s":
		m.cam.Orbit(0, -orbitStep)
		cmd := m.startTicking()
		return m, cmd
	case "+", "=":
		m.cam.ZoomIn()
	case "-", "_":
		m.cam.ZoomOut()
	case "0":
		m.cam.LookAt(viz.DefaultAzimuth, viz.DefaultElevation)
		cmd := m.startTicking()
		return m, cmd
	case "pgdown", "]":
		m.scroll++
	case "pgup", "[":
		m.scroll = max(0, m.scroll-1)
	case "t":
		m.setTheme(viz.NextTheme(m.theme.Name))
	case "x":
		m.status = m.snapshot()
	}
	return m, nil
}

// adjust changes the control under the cursor and re-runs the page.
func (m model) adjust(steps int) (tea.Model, tea.Cmd) {
	if m.ctlCursor >= len(m.controls) {
		return m, nil
	}
	c := m.controls[m.ctlCursor]
	pages.Adjust(c, m.values, steps)
	if c.Kind == pages.Select {
		// Another model brings other parameter sliders.
		m.controls = m.page.Controls(m.values)
		m.values = pages.Merge(m.controls, pages.Values{c.Key: m.values[c.Key]})
	}
	cmd := m.rerun()
	return m, cmd
}

func (m *model) rerun() tea.Cmd {
	m.seq++
	m.rendering = true
	m.status = ""
	return tea.Batch(render(m.ctx, m.page, m.values, m.seq), m.startTicking())
}

func (m *model) setTheme(t viz.Theme) {
	m.theme = t
	m.styles = viz.NewStyles(t)
}

// visuals returns the blocks drawn as pictures.
func (m model) visuals() []pages.Block {
	if m.out == nil {
		return nil
	}
	var vs []pages.Block
	for _, b := range m.out.Blocks {
		if b.Figure != nil || b.Contour != nil || b.Animation != nil {
			vs = append(vs, b)
		}
	}
	return vs
}

func (m model) currentVisual() (pages.Block, bool) {
	vs := m.visuals()
	if m.visual < 0 || m.visual >= len(vs) {
		return pages.Block{}, false
	}
	return vs[m.visual], true
}

func (m model) currentAnimation() *figure.Animation {
	b, ok := m.currentVisual()
	if !ok {
		return nil
	}
	return b.Animation
}

// snapshot writes the braille canvas of the current figure as SVG.
func (m *model) snapshot() string {
	b, ok := m.currentVisual()
	if !ok {
		return "nothing to save"
	}
	w, h := m.canvasSize()
	var c *viz.Canvas
	switch {
	case b.Figure != nil:
		c = viz.FigureCanvas(b.Figure, w, h, m.cam)
	case b.Animation != nil && len(b.Animation.Panels) > 0:
		c = viz.FigureCanvas(&b.Animation.Panels[0], w, h, m.animCam)
	default:
		return "contours are saved with the save command"
	}
	m.snaps++
	path := filepath.Join(m.snapDir, fmt.Sprintf("%s-%02d.svg", m.page.Slug(), m.snaps))
	if err := os.MkdirAll(m.snapDir, 0o755); err != nil {
		return err.Error()
	}
	if err := os.WriteFile(path, []byte(export.CanvasSVG(c, 4, m.theme)), 0o644); err != nil {
		return err.Error()
	}
	return "saved " + path
}

func (m model) canvasSize() (int, int) {
	w := max(20, m.width-controlWidth-8)
	h := max(8, m.height-14)
	return w, h
}

func (m model) View() string {
	if m.state == stateMenu {
		return m.viewMenu()
	}
	return m.viewPage()
}

func (m model) viewMenu() string {
	s := m.styles
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("    " + viz.GradientText("v i p o r", m.theme.Primary, m.theme.Accent) + "\n")
	b.WriteString("    " + s.Muted.Render("potentials and orbits") + "\n\n")
	for i, p := range m.book.Pages() {
		if i == m.cursor {
			b.WriteString("  " + s.Title.Render("▸ "+p.Title()) + "\n")
		} else {
			b.WriteString("    " + s.Text.Render(p.Title()) + "\n")
		}
	}
	b.WriteString("\n" + s.KeyHint.Render("  ↑↓ select   enter open   t theme ("+m.theme.Name+")   q quit") + "\n")
	return b.String()
}

func (m model) viewPage() string {
	s := m.styles
	header := s.Title.Render(m.page.Title())
	if m.rendering {
		header += "  " + s.Value.Render(viz.Spinner(m.spin)) + s.Muted.Render(" rendering")
	} else if m.elapsed > 0 {
		header += s.Muted.Render(fmt.Sprintf("  %s", m.elapsed.Round(time.Millisecond)))
	}

	left := s.Panel.Width(controlWidth).Render(m.viewControls())
	right := m.viewOutput()
	body := lipgloss.JoinHorizontal(lipgloss.Top, left, " ", right)

	hints := "↑↓ control  ←→ adjust  tab figure  space play  wasd camera  +- zoom  [ ] scroll  x snapshot  t theme  esc back"
	footer := s.KeyHint.Render(hints)
	if m.status != "" {
		footer = s.Value.Render(m.status) + "\n" + footer
	}
	return header + "\n" + body + "\n" + footer
}

func (m model) viewControls() string {
	s := m.styles
	if len(m.controls) == 0 {
		return s.Muted.Render("no controls")
	}
	var b strings.Builder
	for i, c := range m.controls {
		label := c.Label
		if len(label) > controlWidth-4 {
			label = label[:controlWidth-5] + "…"
		}
		var value string
		switch c.Kind {
		case pages.Slider:
			v := m.values.Float(c.Key, c.Default)
			frac := 0.0
			if c.Max > c.Min {
				frac = (v - c.Min) / (c.Max - c.Min)
			}
			value = viz.ProgressBar(frac, 16, s) + " " + s.Value.Render(fmt.Sprintf("%.4g", v))
		case pages.Checkbox:
			if m.values.Bool(c.Key, c.On) {
				value = s.Value.Render("[x]")
			} else {
				value = s.Muted.Render("[ ]")
			}
		case pages.Select:
			value = s.Value.Render("‹ " + m.values.String(c.Key, c.Choice) + " ›")
		}
		if i == m.ctlCursor {
			b.WriteString(s.Title.Render("▸ "+label) + "\n  " + value + "\n")
		} else {
			b.WriteString(s.Text.Render("  "+label) + "\n  " + value + "\n")
		}
	}
	return b.String()
}

func (m model) viewOutput() string {
	s := m.styles
	if m.err != nil {
		return s.Warning.Render("error: " + m.err.Error())
	}
	if m.out == nil {
		return s.Muted.Render("…")
	}
	w, h := m.canvasSize()

	var lines []string
	for _, b := range m.out.Blocks {
		switch b.Kind {
		case pages.MarkdownBlock:
			if strings.HasPrefix(b.Text, "#") {
				lines = append(lines, s.Heading.Render(strings.TrimLeft(b.Text, "# ")))
				continue
			}
			lines = append(lines, s.Text.Width(w).Render(b.Text))
		case pages.LaTeXBlock:
			lines = append(lines, s.Math.Width(w).Render(b.Text))
		case pages.WarningBlock:
			lines = append(lines, s.Warning.Width(w).Render(b.Text))
		}
	}
	text := strings.Split(strings.Join(lines, "\n"), "\n")
	textRows := max(3, m.height/4)
	start := min(m.scroll, max(0, len(text)-textRows))
	end := min(len(text), start+textRows)

	var out strings.Builder
	out.WriteString(strings.Join(text[start:end], "\n") + "\n")
	out.WriteString(viz.Separator(w, s) + "\n")

	vs := m.visuals()
	if b, ok := m.currentVisual(); ok {
		out.WriteString(s.Muted.Render(fmt.Sprintf("figure %d/%d", m.visual+1, len(vs))) + "\n")
		out.WriteString(s.Text.Render(m.drawVisual(b, w, h-textRows)))
	}
	return out.String()
}

func (m model) drawVisual(b pages.Block, w, h int) string {
	h = max(6, h)
	switch {
	case b.Contour != nil:
		return viz.DrawContour(b.Contour)
	case b.Animation != nil:
		anim := b.Animation
		ph := max(4, h/max(1, len(anim.Panels))-2)
		state := "paused"
		if m.playing {
			state = "playing"
		}
		return fmt.Sprintf("%s  frame %d/%d  %s\n", anim.Title, m.frame+1, len(anim.Frames), state) +
			viz.DrawFrame(anim, m.frame, w, ph, m.animCam)
	case b.Figure != nil && b.Figure.Name == "rotation":
		if chart := viz.LineChart(b.Figure, w-12, h-4); chart != "" {
			return b.Figure.Title + "\n" + chart
		}
	}
	if b.Figure != nil {
		return viz.DrawFigure(b.Figure, w, h-2, m.cam)
	}
	return ""
}
