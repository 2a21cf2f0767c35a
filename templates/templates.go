// Package templates embeds the HTML pages so the binary ships
// standalone.
package templates

import "embed"

//go:embed *.html
var FS embed.FS
