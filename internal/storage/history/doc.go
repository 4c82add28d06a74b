// Package history records the messages the CLI has sent to DAPNET.
//
// A Record is written only after the API accepted the call or news item, so
// the history reflects what was actually transmitted (after sanitizing),
// together with the text the user typed.
//
// Key types
//
//   - Repository: interface used by the send service and the CLI
//   - SQLiteRepository: implementation over the migrated database opened by
//     storage.InitDatabase
//
// Typical usage
//
//	repo := history.NewSQLiteRepository(db)
//	_ = repo.Add(ctx, &history.Record{Kind: history.KindCall, Text: "hi", ...})
//	latest, _ := repo.List(ctx, 20)
package history
