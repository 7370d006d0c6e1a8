// Package capture rasterizes a recognition card to a bitmap and encodes it
// for upload. The card is drawn the way the form page shows it: background
// picture, header, both checkbox rows, the message, the footer fields and the
// submit button.
package capture

import (
	"context"
	"image"
	"image/color"

	"github.com/pkg/errors"
	zl "github.com/rs/zerolog"

	"recognition.dev/cheers/form"
)

// Options control a single rasterization.
type Options struct {
	// Scale is the device pixel ratio; a card 850 wide is Scale*850 pixels wide.
	Scale float64
	// UseCORS allows background images to be fetched from other origins.
	UseCORS bool
	// BackgroundColor fills the card before anything else is drawn.
	BackgroundColor color.Color
}

// DefaultOptions are the options used for uploads.
var DefaultOptions = Options{
	Scale:           2,
	UseCORS:         true,
	BackgroundColor: color.White,
}

// Card is the capture target: everything that is visible in the form area.
type Card struct {
	Title      string
	Background string
	State      form.State
}

// Renderer draws Cards.
type Renderer struct {
	Assets Assets
	Logger zl.Logger
}

// NewRenderer returns a Renderer that loads backgrounds through assets.
func NewRenderer(assets Assets, l zl.Logger) Renderer {
	return Renderer{Assets: assets, Logger: l}
}

// Rasterize draws c into a new opaque image. A background that cannot be
// loaded is left out rather than failing the capture.
func (r Renderer) Rasterize(ctx context.Context, c Card, o Options) (image.Image, error) {
	if o.Scale <= 0 {
		return nil, errors.Errorf("invalid scale %v", o.Scale)
	}
	if o.BackgroundColor == nil {
		o.BackgroundColor = color.Transparent
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var bg image.Image
	if c.Background != "" {
		var err error
		bg, err = r.Assets.Load(ctx, c.Background, o.UseCORS)
		if err != nil {
			r.Logger.Info().Err(err).Str("background", c.Background).Msg("Skipping background")
			bg = nil
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cv, err := newCanvas(cardWidth, cardHeight, o.Scale)
	if err != nil {
		return nil, err
	}
	defer cv.close()
	cv.fillAll(o.BackgroundColor)
	if bg != nil {
		cv.cover(bg)
	}
	drawCard(cv, c)
	return cv.img, nil
}
