package tui

import (
	"context"
	"os"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/vipor/internal/config"
	"github.com/san-kum/vipor/internal/pages"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m model, keys ...string) model {
	t.Helper()
	for _, k := range keys {
		next, _ := m.Update(key(k))
		m = next.(model)
	}
	return m
}

// finish runs the pending render synchronously and delivers its result.
func finish(t *testing.T, m model) model {
	t.Helper()
	msg := render(m.ctx, m.page, m.values, m.seq)()
	next, _ := m.Update(msg)
	return next.(model)
}

func newTestModel(t *testing.T) model {
	return newModel(context.Background(), pages.NewBook(config.DefaultConfig()), t.TempDir())
}

func TestMenuOpensPage(t *testing.T) {
	m := newTestModel(t)
	m = press(t, m, "down", "enter")
	if m.state != statePage || m.page.Slug() != "rotation" {
		t.Fatalf("state %v page %v, want rotation page", m.state, m.page)
	}
	if !m.rendering {
		t.Error("opening a page did not start a render")
	}

	m = finish(t, m)
	if m.rendering || m.out == nil {
		t.Fatal("render result not applied")
	}
	if n := len(m.visuals()); n != 1 {
		t.Errorf("visuals = %d, want the rotation figure", n)
	}
	if view := m.View(); !strings.Contains(view, "Rotation Curves") {
		t.Errorf("view lacks the page title:\n%s", view)
	}

	m = press(t, m, "esc")
	if m.state != stateMenu {
		t.Error("esc did not return to the menu")
	}
}

func TestAdjustReruns(t *testing.T) {
	m := newTestModel(t)
	m = press(t, m, "down", "enter")
	m = finish(t, m)

	seq := m.seq
	// First control is the homogeneous sphere checkbox, on by default.
	m = press(t, m, "right")
	if m.seq != seq+1 || !m.rendering {
		t.Fatal("adjusting a control did not re-run the page")
	}
	if m.values.Bool("hsp", true) {
		t.Error("checkbox not toggled")
	}

	stale := renderedMsg{seq: seq, out: &pages.Output{}}
	next, _ := m.Update(stale)
	if m = next.(model); !m.rendering {
		t.Error("stale result accepted")
	}

	m = finish(t, m)
	if len(m.visuals()) != 0 {
		t.Error("figure shown with every box cleared")
	}
}

func TestSnapshot(t *testing.T) {
	m := newTestModel(t)
	m = press(t, m, "down", "enter")
	m = finish(t, m)

	m = press(t, m, "x")
	if !strings.HasPrefix(m.status, "saved ") {
		t.Fatalf("status = %q", m.status)
	}
	data, err := os.ReadFile(strings.TrimPrefix(m.status, "saved "))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "<circle") {
		t.Error("snapshot has no dots")
	}
}

func TestThemeCycles(t *testing.T) {
	m := newTestModel(t)
	first := m.theme.Name
	m = press(t, m, "t")
	if m.theme.Name == first {
		t.Error("theme did not change")
	}
}
