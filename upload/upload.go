// Package upload posts captured cards to the upload endpoint.
package upload

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/url"

	cjson "github.com/gibson042/canonicaljson-go"
	"github.com/pkg/errors"
	zl "github.com/rs/zerolog"
)

// Path is where the upload endpoint lives, relative to its origin.
const Path = "/api/upload"

// ErrUploadFailed is returned when the endpoint answers with a non-2xx status.
var ErrUploadFailed = errors.New("Upload failed")

// Metadata describes where and when a card was submitted.
type Metadata struct {
	Location  string `json:"location"`
	Timestamp string `json:"timestamp"`
}

// Request is the JSON body of an upload.
type Request struct {
	Image    string   `json:"image"`
	Metadata Metadata `json:"metadata"`
}

// Client sends Requests to the endpoint at Origin + Path.
type Client struct {
	endpoint string
	http     *http.Client
	logger   zl.Logger
}

// NewClient returns a client for the endpoint under origin. A nil httpClient
// means http.DefaultClient. No timeout is imposed beyond the caller's context.
func NewClient(origin string, httpClient *http.Client, l zl.Logger) (*Client, error) {
	u, err := url.Parse(origin)
	if err != nil {
		return nil, errors.Wrap(err, "invalid upload origin")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, errors.Errorf("upload origin must be http or https, got %q", origin)
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		endpoint: u.ResolveReference(&url.URL{Path: Path}).String(),
		http:     httpClient,
		logger:   l,
	}, nil
}

// Endpoint is the absolute URL requests are sent to.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Upload sends req. Any 2xx response is success; its body is ignored.
func (c *Client) Upload(ctx context.Context, req Request) error {
	body, err := cjson.Marshal(req)
	if err != nil {
		return errors.Wrap(err, "could not marshal upload request")
	}
	httpReq, err := http.NewRequestWithContext(ctx, "POST", c.endpoint, bytes.NewReader(body))
	if err != nil {
		return errors.Wrap(err, "could not create upload request")
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpResp, err := c.http.Do(httpReq)
	if err != nil {
		return errors.Wrap(err, "error sending upload request")
	}
	defer httpResp.Body.Close()
	io.Copy(io.Discard, httpResp.Body)

	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
		c.logger.Info().Int("status", httpResp.StatusCode).Str("endpoint", c.endpoint).Msg("Upload rejected")
		return errors.WithStack(ErrUploadFailed)
	}
	c.logger.Debug().Int("status", httpResp.StatusCode).Int("bytes", len(body)).Msg("Upload accepted")
	return nil
}
