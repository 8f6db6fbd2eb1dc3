package export

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"html/template"
	"image"
	colorpalette "image/color/palette"
	imagedraw "image/draw"
	"image/gif"
	"io"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/san-kum/vipor/internal/figure"
	"github.com/san-kum/vipor/internal/viz"
)

// Panel size of animation frames and the delay between frames in 1/100 s.
const (
	PanelWidth  = 4 * vg.Inch
	PanelHeight = 3.5 * vg.Inch
	FrameDelay  = 8
)

// Frame renders frame i of anim with the panels side by side.
func Frame(anim *figure.Animation, i int) (image.Image, error) {
	if i < 0 || i >= len(anim.Frames) {
		return nil, fmt.Errorf("animation %s: frame %d out of range", anim.Name, i)
	}
	if len(anim.Panels) == 0 {
		return nil, fmt.Errorf("animation %s has no panels", anim.Name)
	}

	var cam *viz.Camera
	if anim.Kind == figure.Orbit3D {
		cam = viz.NewCamera()
		if i < len(anim.Azimuth) {
			cam.Azimuth = anim.Azimuth[i]
		}
	}

	row := make([]*plot.Plot, len(anim.Panels))
	for p := range anim.Panels {
		pl, err := plotUpTo(&anim.Panels[p], cam, anim.Frames[i])
		if err != nil {
			return nil, fmt.Errorf("animation %s panel %d: %w", anim.Name, p, err)
		}
		row[p] = pl
	}

	img := vgimg.New(vg.Length(len(row))*PanelWidth, PanelHeight)
	dc := draw.New(img)
	tiles := draw.Tiles{Rows: 1, Cols: len(row), PadX: vg.Millimeter * 4}
	canvases := plot.Align([][]*plot.Plot{row}, tiles, dc)
	for p, pl := range row {
		pl.Draw(canvases[0][p])
	}
	return img.Image(), nil
}

// WriteGIF encodes every frame of anim as a looping GIF.
func WriteGIF(w io.Writer, anim *figure.Animation) error {
	out := &gif.GIF{LoopCount: 0}
	for i := range anim.Frames {
		img, err := Frame(anim, i)
		if err != nil {
			return err
		}
		out.Image = append(out.Image, paletted(img))
		out.Delay = append(out.Delay, FrameDelay)
	}
	if len(out.Image) == 0 {
		return fmt.Errorf("animation %s has no frames", anim.Name)
	}
	return gif.EncodeAll(w, out)
}

// SaveGIF writes the animation to path.
func SaveGIF(anim *figure.Animation, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteGIF(f, anim); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func paletted(img image.Image) *image.Paletted {
	b := img.Bounds()
	pm := image.NewPaletted(b, colorpalette.Plan9)
	imagedraw.FloydSteinberg.Draw(pm, b, img, b.Min)
	return pm
}

var htmlFragment = template.Must(template.New("animation").Parse(
	`<figure class="animation" id="{{.ID}}">
<img alt="{{.Title}}" src="data:image/gif;base64,{{.Data}}">
<figcaption>{{.Title}}</figcaption>
</figure>
`))

// WriteHTML writes an HTML fragment that embeds the animation as an inline
// GIF.
func WriteHTML(w io.Writer, anim *figure.Animation) error {
	var buf bytes.Buffer
	if err := WriteGIF(&buf, anim); err != nil {
		return err
	}
	return htmlFragment.Execute(w, struct {
		ID, Title string
		Data      template.URL
	}{anim.Name, anim.Title, template.URL(base64.StdEncoding.EncodeToString(buf.Bytes()))})
}
