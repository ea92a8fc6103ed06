// Package stores provides the SQLite-backed archive of conversion runs.
//
// # Overview
//
// Every invocation of the converter can be archived: one row per run holding
// the source paths, the outcome, the number of advisories, and a YAML
// snapshot of the validated model. The archive makes it possible to compare
// configurations across runs without keeping the original input files
// around.
//
// # Usage Example
//
//	store, err := stores.NewRunStore(stores.Config{Path: "runs.db"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := store.Init(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	if err := store.Migrate(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	defer store.Close()
//
//	err = store.CreateRun(ctx, &stores.Run{...})
//
// # Storage
//
// The store uses modernc.org/sqlite (pure Go driver) with WAL journaling and
// foreign keys enabled, and golang-migrate with embedded migration files for
// schema management.
package stores
