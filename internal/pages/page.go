// Package pages holds the presentation pages. Each page declares its
// controls and turns a set of control values into an ordered list of output
// blocks. Pages keep no state between runs; hosts call Run again whenever a
// value changes.
package pages

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/san-kum/vipor/internal/config"
	"github.com/san-kum/vipor/internal/figure"
)

var ErrUnknownPage = errors.New("pages: unknown page")

type ControlKind string

const (
	Slider   ControlKind = "slider"
	Checkbox ControlKind = "checkbox"
	Select   ControlKind = "select"
)

// Control is one input of a page. Sliders use Min, Max, Step and Default;
// checkboxes use On; selects use Options and Choice.
type Control struct {
	Key     string      `json:"key"`
	Label   string      `json:"label"`
	Kind    ControlKind `json:"kind"`
	Min     float64     `json:"min,omitempty"`
	Max     float64     `json:"max,omitempty"`
	Step    float64     `json:"step,omitempty"`
	Default float64     `json:"default,omitempty"`
	On      bool        `json:"on,omitempty"`
	Options []string    `json:"options,omitempty"`
	Choice  string      `json:"choice,omitempty"`
}

// Values maps control keys to their current values. Numbers may arrive as
// float64, int or numeric strings, as they do from JSON and the terminal.
type Values map[string]any

func (v Values) Float(key string, def float64) float64 {
	switch x := v[key].(type) {
	case float64:
		return x
	case int:
		return float64(x)
	case string:
		if f, err := strconv.ParseFloat(x, 64); err == nil {
			return f
		}
	}
	return def
}

func (v Values) Bool(key string, def bool) bool {
	switch x := v[key].(type) {
	case bool:
		return x
	case float64:
		return x != 0
	case string:
		if b, err := strconv.ParseBool(x); err == nil {
			return b
		}
	}
	return def
}

func (v Values) String(key, def string) string {
	if s, ok := v[key].(string); ok && s != "" {
		return s
	}
	return def
}

// Defaults returns the default value of every control.
func Defaults(controls []Control) Values {
	v := make(Values, len(controls))
	for _, c := range controls {
		switch c.Kind {
		case Slider:
			v[c.Key] = c.Default
		case Checkbox:
			v[c.Key] = c.On
		case Select:
			v[c.Key] = c.Choice
		}
	}
	return v
}

// Merge fills the keys missing from v with the control defaults.
func Merge(controls []Control, v Values) Values {
	out := Defaults(controls)
	for k, x := range v {
		out[k] = x
	}
	return out
}

// Adjust moves a slider by steps, clamped to its bounds, or flips a
// checkbox, or cycles a select by steps.
func Adjust(c Control, v Values, steps int) {
	switch c.Kind {
	case Slider:
		x := v.Float(c.Key, c.Default) + float64(steps)*c.Step
		x = math.Max(c.Min, math.Min(c.Max, x))
		// Snap to the step grid to keep float drift out of labels.
		v[c.Key] = c.Min + math.Round((x-c.Min)/c.Step)*c.Step
	case Checkbox:
		v[c.Key] = !v.Bool(c.Key, c.On)
	case Select:
		if len(c.Options) == 0 {
			return
		}
		cur := 0
		choice := v.String(c.Key, c.Choice)
		for i, o := range c.Options {
			if o == choice {
				cur = i
			}
		}
		n := len(c.Options)
		v[c.Key] = c.Options[((cur+steps)%n+n)%n]
	}
}

type BlockKind string

const (
	MarkdownBlock  BlockKind = "markdown"
	LaTeXBlock     BlockKind = "latex"
	FigureBlock    BlockKind = "figure"
	AnimationBlock BlockKind = "animation"
	WarningBlock   BlockKind = "warning"
)

// Block is one piece of page output. Figure blocks carry either a Figure or
// a Contour.
type Block struct {
	Kind      BlockKind
	Text      string
	Figure    *figure.Figure
	Contour   *figure.Contour
	Animation *figure.Animation
}

// Output is the ordered result of one page run.
type Output struct {
	Blocks []Block
}

func (o *Output) Markdown(text string) {
	o.Blocks = append(o.Blocks, Block{Kind: MarkdownBlock, Text: text})
}

func (o *Output) Markdownf(format string, args ...any) {
	o.Markdown(fmt.Sprintf(format, args...))
}

func (o *Output) LaTeX(tex string) {
	o.Blocks = append(o.Blocks, Block{Kind: LaTeXBlock, Text: tex})
}

func (o *Output) Figure(f figure.Figure) {
	o.Blocks = append(o.Blocks, Block{Kind: FigureBlock, Figure: &f})
}

func (o *Output) Contour(c *figure.Contour) {
	o.Blocks = append(o.Blocks, Block{Kind: FigureBlock, Contour: c})
}

func (o *Output) Animation(a figure.Animation) {
	o.Blocks = append(o.Blocks, Block{Kind: AnimationBlock, Animation: &a})
}

// Warn adds the instruction to pick other values together with err.
func (o *Output) Warn(err error) {
	o.Blocks = append(o.Blocks, Block{
		Kind: WarningBlock,
		Text: "These parameters are not allowed, please select new ones. (" + err.Error() + ")",
	})
}

// Warnings returns the text of every warning block.
func (o *Output) Warnings() []string {
	var out []string
	for _, b := range o.Blocks {
		if b.Kind == WarningBlock {
			out = append(out, b.Text)
		}
	}
	return out
}

// Count returns the number of blocks of the given kind.
func (o *Output) Count(kind BlockKind) int {
	n := 0
	for _, b := range o.Blocks {
		if b.Kind == kind {
			n++
		}
	}
	return n
}

type Page interface {
	Slug() string
	Title() string
	Controls(v Values) []Control
	Run(ctx context.Context, v Values) (*Output, error)
}

// Book is the ordered set of pages sharing one render configuration.
type Book struct {
	pages  []Page
	bySlug map[string]Page
}

func NewBook(cfg *config.Config) *Book {
	b := &Book{bySlug: make(map[string]Page)}
	for _, p := range []Page{
		home{},
		&rotation{cfg: cfg},
		sphericalPage(cfg, "spherical-2d", "Spherically Symmetric Potentials in 2D"),
		sphericalPage(cfg, "spherical-3d", "Spherically Symmetric Potentials in 3D"),
		axisymmetricPage(cfg),
		triaxialPage(cfg),
		&milkyWay{cfg: cfg},
	} {
		b.pages = append(b.pages, p)
		b.bySlug[p.Slug()] = p
	}
	return b
}

func (b *Book) Pages() []Page { return b.pages }

func (b *Book) Lookup(slug string) (Page, error) {
	p, ok := b.bySlug[slug]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPage, slug)
	}
	return p, nil
}
