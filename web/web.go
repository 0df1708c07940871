// Package web embeds the HTML templates and static assets served by the party site.
package web

import "embed"

// FS holds templates/ and static/. The all: prefix keeps the _*.html partials,
// which embed skips by default.
//
//go:embed all:templates static
var FS embed.FS
