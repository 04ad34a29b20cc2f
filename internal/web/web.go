// Package web embeds the single-page browser interface. The page is a thin
// client over the JSON API; all invoice state lives server-side for the
// session.
package web

import (
	_ "embed"
)

//go:embed static/index.html
var IndexHTML []byte
