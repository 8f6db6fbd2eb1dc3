package viz

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles derived from a Theme for page output in the terminal.
type Styles struct {
	Title    lipgloss.Style
	Heading  lipgloss.Style
	Text     lipgloss.Style
	Muted    lipgloss.Style
	Math     lipgloss.Style
	Warning  lipgloss.Style
	Selected lipgloss.Style
	Panel    lipgloss.Style
	KeyHint  lipgloss.Style
	Value    lipgloss.Style
}

func NewStyles(t Theme) Styles {
	return Styles{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(t.Primary),
		Heading:  lipgloss.NewStyle().Bold(true).Foreground(t.Secondary),
		Text:     lipgloss.NewStyle().Foreground(t.Text),
		Muted:    lipgloss.NewStyle().Foreground(t.Muted),
		Math:     lipgloss.NewStyle().Italic(true).Foreground(t.Accent),
		Warning:  lipgloss.NewStyle().Bold(true).Foreground(t.Warning),
		Selected: lipgloss.NewStyle().Bold(true).Foreground(t.Primary).Background(t.Background),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Muted).
			Padding(0, 1),
		KeyHint: lipgloss.NewStyle().Foreground(t.Muted).Italic(true),
		Value:   lipgloss.NewStyle().Bold(true).Foreground(t.Secondary),
	}
}

// GradientText colours each rune of text between two #rrggbb colours.
func GradientText(text string, from, to lipgloss.Color) string {
	runes := []rune(text)
	if len(runes) == 0 {
		return ""
	}
	sr, sg, sb := parseHex(string(from))
	er, eg, eb := parseHex(string(to))

	var b strings.Builder
	for i, r := range runes {
		t := 0.0
		if len(runes) > 1 {
			t = float64(i) / float64(len(runes)-1)
		}
		c := fmt.Sprintf("#%02x%02x%02x", lerp(sr, er, t), lerp(sg, eg, t), lerp(sb, eb, t))
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(c)).Render(string(r)))
	}
	return b.String()
}

// Spinner returns one frame of a braille spinner.
func Spinner(frame int) string {
	frames := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
	return frames[frame%len(frames)]
}

// ProgressBar renders a bar of the given width filled to fraction p.
func ProgressBar(p float64, width int, s Styles) string {
	filled := max(0, min(width, int(p*float64(width))))
	return s.Value.Render(strings.Repeat("█", filled)) + s.Muted.Render(strings.Repeat("░", width-filled))
}

func Separator(width int, s Styles) string {
	if width < 8 {
		return s.Muted.Render(strings.Repeat("─", max(width, 0)))
	}
	mid := width / 2
	return s.Muted.Render(strings.Repeat("─", mid-3) + " ◆ " + strings.Repeat("─", width-mid-3))
}

func parseHex(hex string) (r, g, b int) {
	if _, err := fmt.Sscanf(hex, "#%02x%02x%02x", &r, &g, &b); err != nil {
		return 255, 255, 255
	}
	return r, g, b
}

func lerp(a, b int, t float64) int {
	return max(0, min(255, int(float64(a)+t*float64(b-a))))
}
