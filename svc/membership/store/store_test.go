package store_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/premiumhub/pkg/blob"
	"github.com/dmitrymomot/premiumhub/svc/membership"
	"github.com/dmitrymomot/premiumhub/svc/membership/store"
)

func record(id, expiry string) *membership.Record {
	d, err := membership.ParseDate(expiry)
	if err != nil {
		panic(err)
	}
	return &membership.Record{
		MemberID:       id,
		JoinedAt:       time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Expiry:         d,
		LastPaymentRef: "plink_" + id,
	}
}

// storeContract runs the behaviour every membership.Store must share.
func storeContract(t *testing.T, newStore func(t *testing.T) membership.Store) {
	t.Helper()

	t.Run("get missing", func(t *testing.T) {
		s := newStore(t)
		_, err := s.Get(context.Background(), "nobody")
		assert.ErrorIs(t, err, membership.ErrRecordNotFound)
	})

	t.Run("upsert then get", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		require.NoError(t, s.Upsert(ctx, record("1", "2024-01-31")))

		got, err := s.Get(ctx, "1")
		require.NoError(t, err)
		assert.Equal(t, "1", got.MemberID)
		assert.Equal(t, "2024-01-31", got.Expiry.String())
		assert.True(t, got.JoinedAt.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)))
		assert.Equal(t, "plink_1", got.LastPaymentRef)

		require.NoError(t, s.Upsert(ctx, record("1", "2024-03-01")))
		got, err = s.Get(ctx, "1")
		require.NoError(t, err)
		assert.Equal(t, "2024-03-01", got.Expiry.String())
	})

	t.Run("rejects empty id", func(t *testing.T) {
		s := newStore(t)
		assert.ErrorIs(t, s.Upsert(context.Background(), &membership.Record{}), store.ErrInvalidRecord)
	})

	t.Run("all", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		for _, id := range []string{"c", "a", "b"} {
			require.NoError(t, s.Upsert(ctx, record(id, "2024-02-01")))
		}

		var ids []string
		require.NoError(t, s.All(ctx, func(r membership.Record) error {
			ids = append(ids, r.MemberID)
			return nil
		}))
		assert.ElementsMatch(t, []string{"a", "b", "c"}, ids)

		stop := errors.New("stop")
		calls := 0
		err := s.All(ctx, func(membership.Record) error {
			calls++
			return stop
		})
		assert.ErrorIs(t, err, stop)
		assert.Equal(t, 1, calls)
	})

	t.Run("concurrent upserts to different keys", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		var wg sync.WaitGroup
		for i := range 20 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				assert.NoError(t, s.Upsert(ctx, record(fmt.Sprintf("m%02d", i), "2024-02-01")))
			}()
		}
		wg.Wait()

		count := 0
		require.NoError(t, s.All(ctx, func(r membership.Record) error {
			count++
			assert.Equal(t, "2024-02-01", r.Expiry.String())
			return nil
		}))
		assert.Equal(t, 20, count)
	})
}

func TestMemoryStore(t *testing.T) {
	t.Parallel()
	storeContract(t, func(*testing.T) membership.Store { return store.NewMemory() })
}

func TestFileStore(t *testing.T) {
	t.Parallel()
	storeContract(t, func(*testing.T) membership.Store { return store.NewFile(blob.NewMemory(), "") })
}

func TestFileStoreOnDisk(t *testing.T) {
	t.Parallel()
	storeContract(t, func(t *testing.T) membership.Store {
		local, err := blob.NewLocal(blob.LocalConfig{Dir: t.TempDir()})
		require.NoError(t, err)
		return store.NewFile(local, "members.json")
	})
}
