// Package dofinance reconstructs and forecasts the finances of a
// dugout-online club from sparse daily finance-page snapshots. It is
// designed to be local-first: every snapshot ever observed is kept, and
// every derived view is recomputed from that raw history.
//
// The core functionalities include:
//   - Ledger Normalization: turning an irregular, duplicate-laden snapshot
//     sequence into a dense one-record-per-day ledger with internally
//     consistent weekly postings (deduplication, sponsor-rate gap filling,
//     Monday expense realignment).
//   - Statistics Extraction: deriving recurring income and expense rates
//     (daily sponsor, ticket averages, maintenance, sundries) from
//     historical deltas.
//   - Forecast Projection: simulating the remainder of a season day by
//     day, from the last known snapshot to the next season start.
//   - Sync Codec: a compact delta-encoded base-36 text format used to
//     synchronize the raw ledger through a remote free-text store with
//     last-writer-wins conflict resolution.
//
// This package serves as the foundational logic for the `dof` command-line
// tool, ensuring that all operations are consistent and based on a single
// source of truth.
package dofinance
