// Package database manages the SQLite connection and schema migrations
// for the HomeLink user store.
//
// SQLite was chosen for the same reasons it suits any single-node home
// deployment: zero external services, a single file to back up, and a
// single-writer model that matches the access pattern (user records are
// written rarely and read only at login/registration).
//
// Migrations are embedded into the binary by the top-level migrations
// package and applied in order at startup:
//
//	db, err := database.Open(ctx, database.Config{Path: "./data/homelink.db"})
//	if err != nil { ... }
//	defer db.Close()
//	if err := db.Migrate(ctx); err != nil { ... }
package database
