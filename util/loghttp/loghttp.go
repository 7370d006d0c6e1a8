// Package loghttp dumps outbound HTTP traffic to a zerolog logger.
package loghttp

import (
	"net/http"
	"net/http/httputil"

	lh "github.com/motemen/go-loghttp"
	zl "github.com/rs/zerolog"
)

// Wrap returns a RoundTripper that dumps every request and response through
// base to l at debug level, after running the dump through filter.
// A nil base means http.DefaultTransport.
func Wrap(base http.RoundTripper, l zl.Logger, filter FilterFunc) http.RoundTripper {
	if filter == nil {
		filter = func(b []byte) []byte { return b }
	}
	return &lh.Transport{
		Transport: base,
		LogRequest: func(req *http.Request) {
			if zl.GlobalLevel() > zl.DebugLevel {
				return
			}
			dump, err := httputil.DumpRequestOut(req, true)
			if err != nil {
				l.Error().Err(err).Msg("Could not dump request")
				return
			}
			l.Debug().Str("dir", "-->").Msg(string(filter(dump)))
		},
		LogResponse: func(resp *http.Response) {
			if zl.GlobalLevel() > zl.DebugLevel {
				return
			}
			dump, err := httputil.DumpResponse(resp, true)
			if err != nil {
				l.Error().Err(err).Msg("Could not dump response")
				return
			}
			l.Debug().Str("dir", "<--").Msg(string(filter(dump)))
		},
	}
}
