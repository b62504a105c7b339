// Package sqlite provides SQLite-backed persistence for market trend
// snapshots and the resume/job analysis session.
//
// The store uses modernc.org/sqlite (pure Go, no CGO) with WAL mode.
// Schema changes are applied through embedded migration files.
package sqlite
