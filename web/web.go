// Package web holds the embedded browser UI served by the API server.
package web

import "embed"

//go:embed index.html
var FS embed.FS
