package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/dmitrymomot/premiumhub/pkg/blob"
	"github.com/dmitrymomot/premiumhub/svc/membership"
)

// DefaultFileKey is the object holding the member table.
const DefaultFileKey = "members.json"

// fileEntry is the on-disk shape. Fields are strings so one bad value
// cannot make the whole table unreadable.
type fileEntry struct {
	MemberID       string `json:"member_id,omitempty"`
	JoinedAt       string `json:"joined_at"`
	Expiry         string `json:"expiry"`
	LastPaymentRef string `json:"last_payment_ref,omitempty"`
	// PaymentLinkID is read from tables written before last_payment_ref existed.
	PaymentLinkID string `json:"payment_link_id,omitempty"`
}

// File keeps the whole member table as one JSON object keyed by member id.
// Every write rewrites the object; a mutex serialises load-modify-write.
type File struct {
	storage blob.Storage
	key     string
	mu      sync.Mutex
}

// NewFile stores the table under key in storage. Empty key uses DefaultFileKey.
func NewFile(storage blob.Storage, key string) *File {
	if key == "" {
		key = DefaultFileKey
	}
	return &File{storage: storage, key: key}
}

func (f *File) Get(ctx context.Context, memberID string) (*membership.Record, error) {
	f.mu.Lock()
	table, err := f.load(ctx)
	f.mu.Unlock()
	if err != nil {
		return nil, err
	}

	entry, ok := table[memberID]
	if !ok {
		return nil, membership.ErrRecordNotFound
	}
	rec := entry.record(memberID)
	return &rec, nil
}

func (f *File) Upsert(ctx context.Context, rec *membership.Record) error {
	if rec == nil || rec.MemberID == "" {
		return ErrInvalidRecord
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	table, err := f.load(ctx)
	if err != nil {
		return err
	}
	table[rec.MemberID] = fileEntry{
		MemberID:       rec.MemberID,
		JoinedAt:       rec.JoinedAt.UTC().Format(time.RFC3339),
		Expiry:         rec.Expiry.String(),
		LastPaymentRef: rec.LastPaymentRef,
	}

	data, err := json.MarshalIndent(table, "", "    ")
	if err != nil {
		return err
	}
	return f.storage.Write(ctx, f.key, data)
}

// All loads the table once and yields records in member id order.
func (f *File) All(ctx context.Context, fn func(membership.Record) error) error {
	f.mu.Lock()
	table, err := f.load(ctx)
	f.mu.Unlock()
	if err != nil {
		return err
	}

	ids := make([]string, 0, len(table))
	for id := range table {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := fn(table[id].record(id)); err != nil {
			return err
		}
	}
	return nil
}

func (f *File) load(ctx context.Context) (map[string]fileEntry, error) {
	data, err := f.storage.Read(ctx, f.key)
	if errors.Is(err, blob.ErrNotFound) {
		return make(map[string]fileEntry), nil
	}
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return make(map[string]fileEntry), nil
	}

	var table map[string]fileEntry
	if err := json.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrCorruptTable, f.key, err)
	}
	if table == nil {
		table = make(map[string]fileEntry)
	}
	return table, nil
}

func (e fileEntry) record(key string) membership.Record {
	rec := membership.Record{MemberID: key, LastPaymentRef: e.LastPaymentRef}
	if rec.LastPaymentRef == "" {
		rec.LastPaymentRef = e.PaymentLinkID
	}
	if d, err := membership.ParseDate(e.Expiry); err == nil {
		rec.Expiry = d
	}
	rec.JoinedAt = parseJoinedAt(e.JoinedAt)
	return rec
}

// parseJoinedAt accepts RFC 3339 and the naive ISO form older tables used.
func parseJoinedAt(s string) time.Time {
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05.999999", "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}
