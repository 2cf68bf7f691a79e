// Package migrations carries the versioned postgres schema so binaries can
// migrate without the source tree.
package migrations

import "embed"

// FS holds every NNNNNN_name.{up,down}.sql file
//
//go:embed *.sql
var FS embed.FS
