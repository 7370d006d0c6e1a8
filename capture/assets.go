package capture

import (
	"context"
	"fmt"
	"image"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"

	// Decoders for background images.
	_ "image/jpeg"
	_ "image/png"

	"github.com/pkg/errors"
	_ "golang.org/x/image/webp"
)

// ErrCrossOrigin is returned when a remote image is requested without CORS.
var ErrCrossOrigin = errors.New("cross-origin image requires CORS")

// Assets resolves background references. Absolute http(s) URLs are fetched
// remotely; anything else is a path inside Dir, the directory served at
// /static/.
type Assets struct {
	Dir    string
	Client *http.Client
}

// Load decodes the image that ref points to.
func (a Assets) Load(ctx context.Context, ref string, useCORS bool) (image.Image, error) {
	u, err := url.Parse(ref)
	if err == nil && (u.Scheme == "http" || u.Scheme == "https") {
		if !useCORS {
			return nil, errors.Wrap(ErrCrossOrigin, ref)
		}
		return a.fetch(ctx, u.String())
	}
	return a.open(ref)
}

func (a Assets) open(ref string) (image.Image, error) {
	if a.Dir == "" {
		return nil, errors.Errorf("no assets directory for %s", ref)
	}
	// Clean against the root so a reference cannot climb out of Dir.
	p := filepath.Join(a.Dir, filepath.FromSlash(path.Clean("/"+ref)))
	f, err := os.Open(p)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, errors.Wrapf(err, "could not decode %s", ref)
	}
	return img, nil
}

func (a Assets) fetch(ctx context.Context, u string) (image.Image, error) {
	client := a.Client
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, "GET", u, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "could not fetch %s", u)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s returned %s", u, resp.Status)
	}
	img, _, err := image.Decode(resp.Body)
	if err != nil {
		return nil, errors.Wrapf(err, "could not decode %s", u)
	}
	return img, nil
}
