// Package history keeps a SQLite ledger of conversion outcomes.
//
// Every input a run touches gets one row: its song group, where the chart
// package landed, whether it converted, and the failure category when it did
// not. The output tree is wiped at the start of each run, so the ledger is
// the only record of earlier runs. Schema changes bump schemaVersion in
// schema.go; delete the database to adopt a new schema.
package history
