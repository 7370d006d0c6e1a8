package capture

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// canvas draws in logical (CSS) pixels onto an image scaled by scale.
type canvas struct {
	img   *image.RGBA
	scale float64
	faces *faces
}

func newCanvas(w, h, scale float64) (*canvas, error) {
	fs, err := newFaces(scale)
	if err != nil {
		return nil, err
	}
	px := func(v float64) int { return int(math.Ceil(v * scale)) }
	return &canvas{
		img:   image.NewRGBA(image.Rect(0, 0, px(w), px(h))),
		scale: scale,
		faces: fs,
	}, nil
}

func (c *canvas) close() {
	c.faces.close()
}

func (c *canvas) px(v float64) int {
	return int(math.Round(v * c.scale))
}

func (c *canvas) rect(x, y, w, h float64) image.Rectangle {
	return image.Rect(c.px(x), c.px(y), c.px(x+w), c.px(y+h))
}

func (c *canvas) fillAll(col color.Color) {
	draw.Draw(c.img, c.img.Bounds(), image.NewUniform(col), image.Point{}, draw.Src)
}

func (c *canvas) fill(x, y, w, h float64, col color.Color) {
	draw.Draw(c.img, c.rect(x, y, w, h), image.NewUniform(col), image.Point{}, draw.Over)
}

// box draws the outline of a rectangle with the border inside its bounds.
func (c *canvas) box(x, y, w, h, border float64, col color.Color) {
	c.fill(x, y, w, border, col)
	c.fill(x, y+h-border, w, border, col)
	c.fill(x, y, border, h, col)
	c.fill(x+w-border, y, border, h, col)
}

// cover scales src to fill the whole canvas, keeping its aspect ratio and
// centering it, like CSS background-size: cover.
func (c *canvas) cover(src image.Image) {
	sb := src.Bounds()
	db := c.img.Bounds()
	if sb.Empty() {
		return
	}
	k := math.Max(float64(db.Dx())/float64(sb.Dx()), float64(db.Dy())/float64(sb.Dy()))
	w := int(math.Ceil(float64(sb.Dx()) * k))
	h := int(math.Ceil(float64(sb.Dy()) * k))
	x0 := db.Min.X + (db.Dx()-w)/2
	y0 := db.Min.Y + (db.Dy()-h)/2
	draw.CatmullRom.Scale(c.img, image.Rect(x0, y0, x0+w, y0+h), src, sb, draw.Over, nil)
}

func (c *canvas) measure(s string, face font.Face) float64 {
	return float64(font.MeasureString(face, s)) / 64 / c.scale
}

// text draws s with its baseline at y. Glyphs outside clip are not drawn.
func (c *canvas) text(s string, x, y float64, face font.Face, col color.Color, clip image.Rectangle) {
	dst, ok := c.img.SubImage(clip).(*image.RGBA)
	if !ok {
		return
	}
	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.P(c.px(x), c.px(y)),
	}
	d.DrawString(s)
}

// line draws a stroke from (x0,y0) to (x1,y1) by stamping squares along it.
func (c *canvas) line(x0, y0, x1, y1, width float64, col color.Color) {
	steps := int(math.Ceil(math.Hypot(x1-x0, y1-y0)*c.scale)) + 1
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		x := x0 + (x1-x0)*t
		y := y0 + (y1-y0)*t
		c.fill(x-width/2, y-width/2, width, width, col)
	}
}

// wrap breaks s into lines no wider than width, honoring explicit newlines.
func (c *canvas) wrap(s string, width float64, face font.Face) []string {
	var lines []string
	for _, para := range splitLines(s) {
		words := splitWords(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		cur := words[0]
		for _, w := range words[1:] {
			if c.measure(cur+" "+w, face) <= width {
				cur += " " + w
				continue
			}
			lines = append(lines, cur)
			cur = w
		}
		lines = append(lines, cur)
	}
	return lines
}
