package server

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/san-kum/vipor/internal/export"
	"github.com/san-kum/vipor/internal/pages"
)

// BlockView is a block as the browser receives it. Figures and animations
// arrive as ready markup in HTML; text blocks keep their markdown or LaTeX.
type BlockView struct {
	Kind pages.BlockKind `json:"kind"`
	Text string          `json:"text,omitempty"`
	HTML string          `json:"html,omitempty"`
}

// Blocks converts page output for the browser: figures and contours to
// SVG, animations to an inline GIF fragment.
func Blocks(out *pages.Output) ([]BlockView, error) {
	views := make([]BlockView, 0, len(out.Blocks))
	for _, b := range out.Blocks {
		v := BlockView{Kind: b.Kind, Text: b.Text}
		switch {
		case b.Figure != nil:
			svg, err := export.SVG(b.Figure, nil)
			if err != nil {
				return nil, fmt.Errorf("figure %s: %w", b.Figure.Name, err)
			}
			v.HTML = string(svg)
		case b.Contour != nil:
			svg, err := export.ContourSVG(b.Contour)
			if err != nil {
				return nil, fmt.Errorf("contour: %w", err)
			}
			v.HTML = string(svg)
		case b.Animation != nil:
			var buf bytes.Buffer
			if err := export.WriteHTML(&buf, b.Animation); err != nil {
				return nil, fmt.Errorf("animation %s: %w", b.Animation.Name, err)
			}
			v.HTML = buf.String()
		}
		views = append(views, v)
	}
	return views, nil
}

// SaveOutput writes every figure, contour and animation of out to a new
// directory under base and returns it.
func SaveOutput(base, slug string, out *pages.Output) (string, error) {
	dir := filepath.Join(base, fmt.Sprintf("%s_%d", slug, time.Now().UnixNano()))
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	for i, b := range out.Blocks {
		prefix := fmt.Sprintf("%02d_", i)
		switch {
		case b.Figure != nil:
			if err := export.SaveFigure(b.Figure, filepath.Join(dir, prefix+export.FileName(b.Figure.Name, "svg"))); err != nil {
				return "", err
			}
		case b.Contour != nil:
			if err := export.SaveContour(b.Contour, filepath.Join(dir, prefix+export.FileName("contour", "svg"))); err != nil {
				return "", err
			}
		case b.Animation != nil:
			if err := export.SaveGIF(b.Animation, filepath.Join(dir, prefix+export.FileName(b.Animation.Name, "gif"))); err != nil {
				return "", err
			}
		}
	}
	return dir, nil
}
