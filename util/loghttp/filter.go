package loghttp

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"
)

// FilterFunc filters an HTTP request or response dump, eg to remove or redact
// header lines. A FilterFunc must return a valid HTTP dump (otherwise
// they cannot be chained).
type FilterFunc func([]byte) []byte

// Chain runs the dump through each filter in order.
func Chain(filters ...FilterFunc) FilterFunc {
	return func(dump []byte) []byte {
		for _, f := range filters {
			dump = f(dump)
		}
		return dump
	}
}

// UploadFilter is the filter used for upload traffic: image payloads are
// several hundred KB of base64, so only the ends of the body are kept.
func UploadFilter() FilterFunc {
	return Chain(
		NewHeaderWhitelist([]string{"Content-Type", "Content-Length"}).Filter,
		NewBodyTrimmer(512).Filter,
	)
}

// HeaderWhitelist is a FilterFunc that removes all headers not on
// its whitelist. An empty whitelist filters all headers.
type HeaderWhitelist struct {
	re *regexp.Regexp
}

// NewHeaderWhitelist returns a new HeaderWhitelist that filters
// all but the headers listed in whitelist.
func NewHeaderWhitelist(whitelist []string) HeaderWhitelist {
	// Matches none by default.
	reStr := "^$"
	if len(whitelist) > 0 {
		quoted := make([]string, len(whitelist))
		for i, h := range whitelist {
			quoted[i] = regexp.QuoteMeta(h)
		}
		reStr = fmt.Sprintf(`^(%s):`, strings.Join(quoted, "|"))
	}
	return HeaderWhitelist{regexp.MustCompile(reStr)}
}

// Filter filters the given HTTP request/response dump.
func (hw HeaderWhitelist) Filter(dump []byte) []byte {
	endHeaders := bytes.Index(dump, []byte("\r\n\r\n"))
	if endHeaders == -1 {
		return dump
	}
	lines := bytes.Split(dump[:endHeaders], []byte("\r\n"))

	var out bytes.Buffer
	out.Grow(len(dump))
	// Request or status line.
	out.Write(lines[0])
	out.WriteString("\r\n")
	for _, line := range lines[1:] {
		if hw.re.Match(line) {
			out.Write(line)
			out.WriteString("\r\n")
		}
	}
	out.WriteString("\r\n")
	out.Write(dump[endHeaders+4:])
	return out.Bytes()
}

// BodyTrimmer is a FilterFunc that limits the size of the HTTP
// request/response body to max bytes. Bytes are clipped from the
// middle of the body, replaced with "...".
type BodyTrimmer struct {
	max int
}

// NewBodyTrimmer returns a new BodyTrimmer. The minimum value for
// max is 6.
func NewBodyTrimmer(max int) BodyTrimmer {
	if max < 6 {
		max = 6
	}
	return BodyTrimmer{max}
}

// Filter filters an HTTP request or response body to max size.
func (bt BodyTrimmer) Filter(dump []byte) []byte {
	beginBody := 0
	if i := bytes.Index(dump, []byte("\r\n\r\n")); i != -1 {
		beginBody = i + 4
	}
	body := dump[beginBody:]
	if len(body) <= bt.max {
		return dump
	}
	head := bt.max / 2
	tail := bt.max - head - 3
	out := make([]byte, 0, beginBody+bt.max)
	out = append(out, dump[:beginBody]...)
	out = append(out, body[:head]...)
	out = append(out, "..."...)
	out = append(out, body[len(body)-tail:]...)
	return out
}
