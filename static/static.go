// Package static embeds stylesheets and scripts.
package static

import "embed"

//go:embed *.css *.js
var FS embed.FS
