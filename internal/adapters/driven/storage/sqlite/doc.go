// Package sqlite keeps the session, the identity token cache and search
// history in one database file, ~/.rocketfuel/data/rocketfuel.db unless a
// data directory is given. The driver is modernc.org/sqlite, so no cgo.
//
// Migrations in migrations/ run in version order on open, each in its own
// transaction. Version 2 adds a trigger that keeps only the newest
// domain.MaxSearchHistory searches.
package sqlite
