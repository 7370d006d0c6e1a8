package capture

import (
	"sync"

	"github.com/pkg/errors"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

var (
	fontsOnce sync.Once
	regular   *opentype.Font
	bold      *opentype.Font
	fontsErr  error
)

func loadFonts() error {
	fontsOnce.Do(func() {
		regular, fontsErr = opentype.Parse(goregular.TTF)
		if fontsErr != nil {
			fontsErr = errors.Wrap(fontsErr, "could not parse regular font")
			return
		}
		bold, fontsErr = opentype.Parse(gobold.TTF)
		if fontsErr != nil {
			fontsErr = errors.Wrap(fontsErr, "could not parse bold font")
		}
	})
	return fontsErr
}

// faces are the type styles used on the card, sized for one scale.
type faces struct {
	title  font.Face
	label  font.Face
	small  font.Face
	body   font.Face
	button font.Face
}

func newFaces(scale float64) (*faces, error) {
	if err := loadFonts(); err != nil {
		return nil, err
	}
	mk := func(f *opentype.Font, size float64) (font.Face, error) {
		return opentype.NewFace(f, &opentype.FaceOptions{
			Size:    size * scale,
			DPI:     72,
			Hinting: font.HintingFull,
		})
	}
	var fs faces
	var err error
	if fs.title, err = mk(bold, titleSize); err != nil {
		return nil, err
	}
	if fs.label, err = mk(bold, labelSize); err != nil {
		return nil, err
	}
	if fs.small, err = mk(bold, smallSize); err != nil {
		return nil, err
	}
	if fs.body, err = mk(regular, bodySize); err != nil {
		return nil, err
	}
	if fs.button, err = mk(bold, labelSize); err != nil {
		return nil, err
	}
	return &fs, nil
}

func (fs *faces) close() {
	for _, f := range []font.Face{fs.title, fs.label, fs.small, fs.body, fs.button} {
		if f != nil {
			f.Close()
		}
	}
}
