// Package civicsv reads the municipal CSV exports row by row
//
// Design choices:
// - Semicolon delimited with a header row; columns are mapped by header
//   name so export column order does not matter.
// - Bad rows surface as *RowError so callers can count the skip and keep
//   streaming; only I/O level failures stop a read loop.
// - Values stay as typed rows (ids, dates); label normalization is the
//   ingest service's job, not the reader's
package civicsv
