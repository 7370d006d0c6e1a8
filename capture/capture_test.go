package capture

import (
	"context"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	zl "github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"recognition.dev/cheers/form"
)

var (
	white = color.RGBA{0xff, 0xff, 0xff, 0xff}
	green = color.RGBA{0x00, 0x80, 0x00, 0xff}
)

func solid(c color.Color) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 16, 9))
	draw.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
	return img
}

func writePNG(t *testing.T, p string, img image.Image) {
	f, err := os.Create(p)
	assert.NoError(t, err)
	defer f.Close()
	assert.NoError(t, png.Encode(f, img))
}

func isGreen(c color.Color) bool {
	r, g, b, _ := c.RGBA()
	return r>>8 < 30 && g>>8 > 100 && b>>8 < 30
}

func testCard() Card {
	s := form.State{
		RecipientName: "Jane Doe",
		Message:       "Great job!",
		Signature:     "Sam",
		Date:          "2024-05-01",
	}
	return Card{Title: "Auburn Hills ATL", State: s}
}

func TestRasterizeSize(t *testing.T) {
	assert := assert.New(t)
	r := NewRenderer(Assets{}, zl.Nop())

	img, err := r.Rasterize(context.Background(), testCard(), DefaultOptions)
	assert.NoError(err)
	assert.Equal(image.Rect(0, 0, 1700, 1160), img.Bounds())

	img, err = r.Rasterize(context.Background(), testCard(), Options{Scale: 1, BackgroundColor: color.White})
	assert.NoError(err)
	assert.Equal(image.Rect(0, 0, 850, 580), img.Bounds())

	_, err = r.Rasterize(context.Background(), testCard(), Options{Scale: 0})
	assert.Error(err)
}

func TestRasterizeLayout(t *testing.T) {
	assert := assert.New(t)
	r := NewRenderer(Assets{}, zl.Nop())
	o := Options{Scale: 1, BackgroundColor: color.White}

	c := testCard()
	img, err := r.Rasterize(context.Background(), c, o)
	assert.NoError(err)
	// White fallback in the padding, the red button near the bottom.
	assert.Equal(white, img.At(2, 2))
	assert.Equal(brandRed, img.At(40, 510))
	// Unchecked box interior.
	assert.Equal(white, img.At(34, 132))

	c.State, err = c.State.WithCheckbox(form.GuestCounts, true)
	assert.NoError(err)
	img, err = r.Rasterize(context.Background(), c, o)
	assert.NoError(err)
	assert.Equal(checkBlue, img.At(34, 132))
}

func TestRasterizeLocalBackground(t *testing.T) {
	assert := assert.New(t)
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "bg.png"), solid(green))
	r := NewRenderer(Assets{Dir: dir}, zl.Nop())
	o := Options{Scale: 1, BackgroundColor: color.White}

	c := testCard()
	c.Background = "/bg.png"
	img, err := r.Rasterize(context.Background(), c, o)
	assert.NoError(err)
	assert.True(isGreen(img.At(2, 2)))

	// Broken backgrounds are skipped, not fatal.
	c.Background = "/missing.jpg"
	img, err = r.Rasterize(context.Background(), c, o)
	assert.NoError(err)
	assert.Equal(white, img.At(2, 2))

	c.Background = "/../../etc/passwd"
	img, err = r.Rasterize(context.Background(), c, o)
	assert.NoError(err)
	assert.Equal(white, img.At(2, 2))
}

func TestRasterizeRemoteBackground(t *testing.T) {
	assert := assert.New(t)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		png.Encode(w, solid(green))
	}))
	defer server.Close()
	r := NewRenderer(Assets{}, zl.Nop())

	c := testCard()
	c.Background = server.URL + "/atl-background.png"
	img, err := r.Rasterize(context.Background(), c, Options{Scale: 1, UseCORS: true, BackgroundColor: color.White})
	assert.NoError(err)
	assert.True(isGreen(img.At(2, 2)))

	img, err = r.Rasterize(context.Background(), c, Options{Scale: 1, UseCORS: false, BackgroundColor: color.White})
	assert.NoError(err)
	assert.Equal(white, img.At(2, 2))
}

func TestRasterizeCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewRenderer(Assets{}, zl.Nop()).Rasterize(ctx, testCard(), DefaultOptions)
	assert.Equal(t, context.Canceled, err)
}

func TestWrap(t *testing.T) {
	assert := assert.New(t)
	cv, err := newCanvas(cardWidth, cardHeight, 1)
	assert.NoError(err)
	defer cv.close()

	assert.Equal([]string{"Great job!"}, cv.wrap("Great job!", 500, cv.faces.body))
	assert.Equal([]string{"one", "", "two"}, cv.wrap("one\n\ntwo", 500, cv.faces.body))
	lines := cv.wrap("the quick brown fox jumps over the lazy dog", 80, cv.faces.body)
	assert.True(len(lines) > 1)
	for _, l := range lines {
		assert.True(cv.measure(l, cv.faces.body) <= 80 || len(splitWords(l)) == 1, l)
	}
}

func TestDisplayDate(t *testing.T) {
	assert.Equal(t, "05/01/2024", displayDate("2024-05-01"))
	assert.Equal(t, "soon", displayDate("soon"))
}
