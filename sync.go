package dofinance

import (
	"context"
	"fmt"
	"log"
	"time"
)

// Transport reads and writes the remote free-text blob used for sync. Read
// reports found=false when the remote has no text at all. Write replaces
// the full text.
type Transport interface {
	Read(ctx context.Context) (text string, found bool, err error)
	Write(ctx context.Context, text string) error
}

// SyncStore is the slice of the local store the syncer needs: the raw
// (pre-normalization) records of a season and the last adopted sync
// version. The codec deliberately works on raw records so that both sides
// converge on the same observed history, not on corrected views.
type SyncStore interface {
	RawRecords(ctx context.Context, seasonID int) ([]FinanceRecord, error)
	ReplaceRecords(ctx context.Context, seasonID int, records []FinanceRecord) error
	SyncVersion(ctx context.Context, seasonID int) (version int64, ok bool, err error)
	SetSyncVersion(ctx context.Context, seasonID int, version int64) error
}

// Syncer reconciles the local raw ledger of one season with the remote
// text store using a last-writer-wins policy keyed on version timestamps.
// Concurrent edits within the same second, or under clock skew, can be
// lost; that is an accepted limitation of the policy.
type Syncer struct {
	Store     SyncStore
	Transport Transport
	// Now is the clock used to mint push versions; time.Now when nil.
	Now func() time.Time
}

// Sync runs one reconciliation pass for the given season.
//
// If the remote payload carries a version newer than the last one adopted
// locally (or no version was ever adopted, or the remote lacks a version),
// the remote rows replace the local raw records. Otherwise the local
// encoding is pushed whenever it differs from the remote payload, with a
// freshly minted version; when both sides already match, the remote version
// is merely recorded.
func (s *Syncer) Sync(ctx context.Context, seasonID int) error {
	text, found, err := s.Transport.Read(ctx)
	if err != nil {
		return fmt.Errorf("could not read remote sync text: %w", err)
	}

	var remote SyncText
	remoteOK := false
	if found {
		remote, remoteOK = ParseSyncText(text)
	}

	if remoteOK {
		rows, err := DecodeRecords(remote.Payload)
		if err != nil {
			// degraded, not fatal: an unparsable remote means nothing to adopt.
			log.Printf("season %d: ignoring malformed remote sync payload: %v", seasonID, err)
			remoteOK = false
		} else if len(rows) == 0 {
			// an empty remote payload holds no history; adopting it would
			// wipe the local records, so fall through to the push path.
		} else {
			localVersion, hasVersion, err := s.Store.SyncVersion(ctx, seasonID)
			if err != nil {
				return fmt.Errorf("could not read local sync version: %w", err)
			}
			if !hasVersion || remote.Version == 0 || remote.Version > localVersion {
				if err := s.Store.ReplaceRecords(ctx, seasonID, rows); err != nil {
					return fmt.Errorf("could not adopt remote records: %w", err)
				}
				return s.Store.SetSyncVersion(ctx, seasonID, remote.Version)
			}
		}
	}

	records, err := s.Store.RawRecords(ctx, seasonID)
	if err != nil {
		return fmt.Errorf("could not load local records: %w", err)
	}
	local := EncodeRecords(records)

	if remoteOK && remote.Payload == local {
		return s.Store.SetSyncVersion(ctx, seasonID, remote.Version)
	}

	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	push := SyncText{
		Preamble: remote.Preamble,
		Version:  now().Unix(),
		Payload:  local,
	}
	if err := s.Transport.Write(ctx, push.Compose()); err != nil {
		return fmt.Errorf("could not push sync text: %w", err)
	}
	return s.Store.SetSyncVersion(ctx, seasonID, push.Version)
}
