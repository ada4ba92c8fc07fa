// Package migrations embeds the versioned schema migrations so the binary applies them
// regardless of its working directory.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
