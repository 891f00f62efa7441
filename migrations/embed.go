// Package migrations embeds the goose SQL migrations: the waypoint and
// attraction tables, their Route 66 seed data, and saved trip plans.
package migrations

import "embed"

// FS is handed to goose.NewProvider by the API server on startup and by the
// integration tests.
//
//go:embed *.sql
var FS embed.FS
