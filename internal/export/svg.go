package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/vipor/internal/viz"
)

// CanvasSVG draws the lit dots of a braille canvas as circles, so a
// terminal view can be saved as it looks. scale is the dot pitch in pixels.
func CanvasSVG(c *viz.Canvas, scale float64, t viz.Theme) string {
	if c == nil {
		return ""
	}
	dw, dh := c.Dots()
	width, height := float64(dw)*scale, float64(dh)*scale

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
<g fill="%s">
`, width, height, width, height, t.Background, t.Primary)

	r := scale * 0.4
	for y := 0; y < dh; y++ {
		for x := 0; x < dw; x++ {
			if c.IsSet(x, y) {
				fmt.Fprintf(&sb, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\"/>\n", (float64(x)+0.5)*scale, (float64(y)+0.5)*scale, r)
			}
		}
	}
	sb.WriteString("</g>\n</svg>\n")
	return sb.String()
}
