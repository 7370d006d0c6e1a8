package capture

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/jpeg"
	"math"
	"strings"

	"github.com/pkg/errors"
)

const (
	// UploadQuality is the JPEG quality used for uploads.
	UploadQuality = 0.95
	// DefaultQuality is used when the requested quality is out of range,
	// matching canvas.toDataURL.
	DefaultQuality = 0.92

	dataURIPrefix = "data:image/jpeg;base64,"
)

// EncodeJPEG writes img as a JPEG. quality is in (0, 1].
func EncodeJPEG(img image.Image, quality float64) ([]byte, error) {
	if !(quality > 0 && quality <= 1) {
		quality = DefaultQuality
	}
	var buf bytes.Buffer
	err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: int(math.Round(quality * 100))})
	if err != nil {
		return nil, errors.Wrap(err, "could not encode jpeg")
	}
	return buf.Bytes(), nil
}

// EncodeDataURI returns img as a base64 "data:image/jpeg" URI.
func EncodeDataURI(img image.Image, quality float64) (string, error) {
	b, err := EncodeJPEG(img, quality)
	if err != nil {
		return "", err
	}
	return dataURIPrefix + base64.StdEncoding.EncodeToString(b), nil
}

// DecodeDataURI is the inverse of EncodeDataURI.
func DecodeDataURI(uri string) (image.Image, error) {
	if !strings.HasPrefix(uri, dataURIPrefix) {
		return nil, errors.New("not a jpeg data uri")
	}
	b, err := base64.StdEncoding.DecodeString(uri[len(dataURIPrefix):])
	if err != nil {
		return nil, errors.Wrap(err, "invalid base64 in data uri")
	}
	img, err := jpeg.Decode(bytes.NewReader(b))
	if err != nil {
		return nil, errors.Wrap(err, "could not decode jpeg")
	}
	return img, nil
}
