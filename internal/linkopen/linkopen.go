// Package linkopen hands links to the desktop environment.
package linkopen

import (
	"context"
	"net/url"
	"strings"

	"github.com/pkg/browser"
)

// Opener asks the environment to open a link.
type Opener interface {
	Open(ctx context.Context, link string) error
}

// OpenerFunc adapts a function to Opener.
type OpenerFunc func(ctx context.Context, link string) error

// Open implements Opener.
func (f OpenerFunc) Open(ctx context.Context, link string) error { return f(ctx, link) }

var openURL = browser.OpenURL

// System opens links with the platform's default handler. The handler is not
// tied to ctx, so cancelling after Open returns never aborts the handoff.
type System struct{}

// Open implements Opener.
func (System) Open(_ context.Context, link string) error {
	return openURL(link)
}

// Escape percent-encodes s for a query value, using %20 for spaces since
// mail and messaging clients do not decode "+".
func Escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
