package device

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// CSRFMetaName is the name of the meta tag the device injects into its root page.
const CSRFMetaName = "csrf-token"

// FetchCSRFToken loads the device's root page and returns the token from
// <meta name="csrf-token" content="...">.
func (c *Client) FetchCSRFToken(ctx context.Context) (string, error) {
	res := c.Get(ctx, "/", "")
	if !res.OK() {
		return "", res.Err
	}
	return ParseCSRFToken(bytes.NewReader(res.Body))
}

// ParseCSRFToken scans an HTML document for the csrf-token meta tag.
func ParseCSRFToken(r io.Reader) (string, error) {
	z := html.NewTokenizer(r)
	for {
		switch z.Next() {
		case html.ErrorToken:
			if err := z.Err(); err != nil && !errors.Is(err, io.EOF) {
				return "", fmt.Errorf("%w: %v", ErrDecode, err)
			}
			return "", ErrNoCSRF
		case html.StartTagToken, html.SelfClosingTagToken:
			tok := z.Token()
			if tok.Data != "meta" {
				continue
			}
			if token, ok := csrfContent(tok.Attr); ok {
				return token, nil
			}
		}
	}
}

func csrfContent(attrs []html.Attribute) (string, bool) {
	var name, content string
	var hasContent bool
	for _, a := range attrs {
		switch strings.ToLower(a.Key) {
		case "name":
			name = a.Val
		case "content":
			content = a.Val
			hasContent = true
		}
	}
	if !strings.EqualFold(name, CSRFMetaName) || !hasContent {
		return "", false
	}
	return content, true
}
