package dofinance

import (
	"context"
	"testing"
	"time"
)

// memTransport is an in-memory Transport for tests.
type memTransport struct {
	text   string
	found  bool
	writes int
}

func (t *memTransport) Read(context.Context) (string, bool, error) { return t.text, t.found, nil }
func (t *memTransport) Write(_ context.Context, text string) error {
	t.text, t.found = text, true
	t.writes++
	return nil
}

// memStore is an in-memory SyncStore for tests.
type memStore struct {
	records    []FinanceRecord
	version    int64
	hasVersion bool
	replaced   bool
}

func (s *memStore) RawRecords(context.Context, int) ([]FinanceRecord, error) {
	return s.records, nil
}
func (s *memStore) ReplaceRecords(_ context.Context, _ int, records []FinanceRecord) error {
	s.records = records
	s.replaced = true
	return nil
}
func (s *memStore) SyncVersion(context.Context, int) (int64, bool, error) {
	return s.version, s.hasVersion, nil
}
func (s *memStore) SetSyncVersion(_ context.Context, _ int, version int64) error {
	s.version, s.hasVersion = version, true
	return nil
}

func fixedNow(sec int64) func() time.Time {
	return func() time.Time { return time.Unix(sec, 0) }
}

func syncRecords() []FinanceRecord {
	return []FinanceRecord{
		{SeasonID: 42, Date: day("2022-01-04"), ServerTime: "08:00", Current: 100, Sponsor: 1000},
		{SeasonID: 42, Date: day("2022-01-05"), ServerTime: "08:00", Current: 200, Sponsor: 2000},
	}
}

func TestSync_adoptsNewerRemote(t *testing.T) {
	remote := SyncText{Version: 2000, Payload: EncodeRecords(syncRecords())}
	transport := &memTransport{text: remote.Compose(), found: true}
	store := &memStore{version: 1000, hasVersion: true}

	s := &Syncer{Store: store, Transport: transport, Now: fixedNow(3000)}
	if err := s.Sync(context.Background(), 42); err != nil {
		t.Fatalf("Sync returned error: %v", err)
	}

	if !store.replaced || len(store.records) != 2 {
		t.Fatalf("remote records not adopted: %+v", store.records)
	}
	if store.records[0].Current != 100 || store.records[1].Sponsor != 2000 {
		t.Errorf("adopted records corrupted: %+v", store.records)
	}
	if store.version != 2000 {
		t.Errorf("local version = %d, want the adopted 2000", store.version)
	}
	if transport.writes != 0 {
		t.Errorf("adopting must not write to the remote")
	}
}

func TestSync_adoptsUnversionedRemote(t *testing.T) {
	// a remote without a readable version always wins.
	remote := SyncText{Version: 0, Payload: EncodeRecords(syncRecords())}
	transport := &memTransport{text: remote.Compose(), found: true}
	store := &memStore{version: 9999, hasVersion: true}

	s := &Syncer{Store: store, Transport: transport, Now: fixedNow(3000)}
	if err := s.Sync(context.Background(), 42); err != nil {
		t.Fatalf("Sync returned error: %v", err)
	}
	if !store.replaced {
		t.Errorf("unversioned remote was not adopted")
	}
}

func TestSync_pushesLocal(t *testing.T) {
	// the remote is older than what was last adopted: local wins.
	stale := SyncText{Version: 500, Payload: "1k6-1-4,null,16,0,0,0,0,0,0,0,0,0,0,0,0"}
	transport := &memTransport{text: stale.Compose(), found: true}
	store := &memStore{records: syncRecords(), version: 1000, hasVersion: true}

	s := &Syncer{Store: store, Transport: transport, Now: fixedNow(3000)}
	if err := s.Sync(context.Background(), 42); err != nil {
		t.Fatalf("Sync returned error: %v", err)
	}

	if store.replaced {
		t.Errorf("stale remote records were adopted")
	}
	if transport.writes != 1 {
		t.Fatalf("remote writes = %d, want 1", transport.writes)
	}
	pushed, ok := ParseSyncText(transport.text)
	if !ok {
		t.Fatalf("pushed text carries no marker: %q", transport.text)
	}
	if pushed.Version != 3000 {
		t.Errorf("pushed version = %d, want the minted 3000", pushed.Version)
	}
	if pushed.Payload != EncodeRecords(store.records) {
		t.Errorf("pushed payload does not encode the local records")
	}
	if store.version != 3000 {
		t.Errorf("local version = %d, want 3000", store.version)
	}
}

func TestSync_pushesWhenRemoteEmpty(t *testing.T) {
	transport := &memTransport{found: false}
	store := &memStore{records: syncRecords()}

	s := &Syncer{Store: store, Transport: transport, Now: fixedNow(3000)}
	if err := s.Sync(context.Background(), 42); err != nil {
		t.Fatalf("Sync returned error: %v", err)
	}
	if transport.writes != 1 {
		t.Fatalf("remote writes = %d, want 1", transport.writes)
	}
	if store.replaced {
		t.Errorf("an absent remote must never wipe local records")
	}
}

func TestSync_pushesOverEmptyPayload(t *testing.T) {
	// a marker with no rows behind it carries no history: the local
	// records must survive and be pushed instead of being wiped.
	remote := SyncText{Version: 0, Payload: ""}
	transport := &memTransport{text: remote.Compose(), found: true}
	store := &memStore{records: syncRecords()}

	s := &Syncer{Store: store, Transport: transport, Now: fixedNow(3000)}
	if err := s.Sync(context.Background(), 42); err != nil {
		t.Fatalf("Sync returned error: %v", err)
	}
	if store.replaced {
		t.Fatalf("an empty remote payload wiped the local records")
	}
	if len(store.records) != 2 {
		t.Errorf("local records = %d, want the original 2", len(store.records))
	}
	if transport.writes != 1 {
		t.Errorf("remote writes = %d, want 1", transport.writes)
	}
}

func TestSync_recordsVersionWhenEqual(t *testing.T) {
	records := syncRecords()
	remote := SyncText{Version: 500, Payload: EncodeRecords(records)}
	transport := &memTransport{text: remote.Compose(), found: true}
	store := &memStore{records: records, version: 1000, hasVersion: true}

	s := &Syncer{Store: store, Transport: transport, Now: fixedNow(3000)}
	if err := s.Sync(context.Background(), 42); err != nil {
		t.Fatalf("Sync returned error: %v", err)
	}
	if transport.writes != 0 {
		t.Errorf("matching payloads must not rewrite the remote")
	}
	if store.version != 500 {
		t.Errorf("local version = %d, want the remote 500", store.version)
	}
}

func TestSync_preservesPreamble(t *testing.T) {
	remote := SyncText{Preamble: "shopping list\n- milk\n\n", Version: 500, Payload: "x"}
	transport := &memTransport{text: remote.Compose(), found: true}
	store := &memStore{records: syncRecords(), version: 1000, hasVersion: true}

	s := &Syncer{Store: store, Transport: transport, Now: fixedNow(3000)}
	if err := s.Sync(context.Background(), 42); err != nil {
		t.Fatalf("Sync returned error: %v", err)
	}
	pushed, _ := ParseSyncText(transport.text)
	if pushed.Preamble != remote.Preamble {
		t.Errorf("preamble = %q, want the user notes preserved", pushed.Preamble)
	}
}
