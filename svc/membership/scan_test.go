package membership_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/premiumhub/svc/membership"
	"github.com/dmitrymomot/premiumhub/svc/membership/store"
)

func TestScan_ReminderWindow(t *testing.T) {
	t.Parallel()

	f := newFixture(t, "2024-01-10T09:00:00Z")
	expiries := map[string]string{
		"d-2": "2024-01-08",
		"d0":  "2024-01-10",
		"d1":  "2024-01-11",
		"d2":  "2024-01-12",
		"d3":  "2024-01-13",
		"d4":  "2024-01-14",
		"d30": "2024-02-09",
	}
	for id, exp := range expiries {
		f.seed(t, id, exp)
	}

	report, err := f.engine.Scan(context.Background())
	require.NoError(t, err)

	assert.Equal(t, membership.ScanReport{
		Scanned:       7,
		Reminded:      3,
		ExpiringToday: 1,
		Lapsed:        1,
	}, report)

	for _, id := range []string{"d1", "d2", "d3"} {
		assert.Len(t, f.notifier.To(id), 1, id)
	}
	for _, id := range []string{"d-2", "d0", "d4", "d30"} {
		assert.Empty(t, f.notifier.To(id), id)
	}
	assert.Equal(t, []string{"⏰ Membership of member d0 expires today (2024-01-10)."}, f.notifier.To("admin"))
	assert.Equal(t, 3, f.gateway.Calls())

	assert.Equal(t,
		"⚠️ Reminder: Your Premium membership will expire on 2024-01-12 (2 days left).\n\n💳 Renew now: https://rzp.io/i/d2",
		f.notifier.To("d2")[0],
	)
}

func TestScan_DoesNotMutateRecords(t *testing.T) {
	t.Parallel()

	f := newFixture(t, "2024-01-10T09:00:00Z")
	f.seed(t, "a", "2024-01-11")
	f.seed(t, "b", "2024-01-10")
	before, err := f.store.Get(context.Background(), "a")
	require.NoError(t, err)

	_, err = f.engine.Scan(context.Background())
	require.NoError(t, err)

	after, err := f.store.Get(context.Background(), "a")
	require.NoError(t, err)
	assert.Equal(t, before, after)
	assert.Equal(t, 2, f.store.Len())
}

func TestScan_IsNotIdempotent(t *testing.T) {
	t.Parallel()

	f := newFixture(t, "2024-01-10T09:00:00Z")
	f.seed(t, "a", "2024-01-11")

	for range 2 {
		_, err := f.engine.Scan(context.Background())
		require.NoError(t, err)
	}
	assert.Len(t, f.notifier.To("a"), 2)
}

func TestScan_FailuresAreContainedPerMember(t *testing.T) {
	t.Parallel()

	f := newFixture(t, "2024-01-10T09:00:00Z")
	f.seed(t, "gw-fails", "2024-01-11")
	f.seed(t, "dm-fails", "2024-01-12")
	f.seed(t, "ok", "2024-01-13")
	f.gateway.failFor = map[string]error{"gw-fails": errors.New("gateway 503")}
	f.notifier.failFor = map[string]error{"dm-fails": errors.New("blocked")}

	report, err := f.engine.Scan(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, report.Reminded)
	assert.Equal(t, 2, report.ReminderFailures)
	assert.Len(t, f.notifier.To("ok"), 1)
}

func TestScan_LinkWithoutURLIsAFailure(t *testing.T) {
	t.Parallel()

	f := newFixture(t, "2024-01-10T09:00:00Z")
	f.gateway.noURL = true
	f.seed(t, "a", "2024-01-11")

	report, err := f.engine.Scan(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, report.ReminderFailures)
	assert.Zero(t, f.notifier.Count())
}

func TestScan_MalformedRecordsAreSkipped(t *testing.T) {
	t.Parallel()

	st := &mockStore{}
	st.On("All", mock.Anything, mock.Anything).Return([]membership.Record{
		{MemberID: "broken"},
		{MemberID: "", Expiry: date("2024-01-11")},
		{MemberID: "good", Expiry: date("2024-01-11")},
	}, nil)

	n := &recordingNotifier{}
	gw := &stubGateway{}
	c := newClock(at("2024-01-10T00:00:00Z"))
	e := membership.NewEngine(st, n, gw, testConfig(), membership.WithClock(c.Now))

	report, err := e.Scan(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, report.Scanned)
	assert.Equal(t, 2, report.Malformed)
	assert.Equal(t, 1, report.Reminded)
	assert.Len(t, n.To("good"), 1)
	assert.Empty(t, n.To("broken"))
}

func TestScan_StoreFailureAborts(t *testing.T) {
	t.Parallel()

	st := &mockStore{}
	st.On("All", mock.Anything, mock.Anything).Return([]membership.Record{
		{MemberID: "a", Expiry: date("2024-01-11")},
	}, errors.New("cursor died"))

	n := &recordingNotifier{}
	c := newClock(at("2024-01-10T00:00:00Z"))
	e := membership.NewEngine(st, n, &stubGateway{}, testConfig(), membership.WithClock(c.Now))

	report, err := e.Scan(context.Background())
	assert.ErrorIs(t, err, membership.ErrScanAborted)
	assert.Equal(t, 1, report.Reminded, "records yielded before the failure are still processed")
}

func TestScan_NoAdminChannelConfigured(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.AdminChatID = ""
	n := &recordingNotifier{}
	st := store.NewMemory()
	require.NoError(t, st.Upsert(context.Background(), &membership.Record{MemberID: "a", Expiry: date("2024-01-10")}))

	c := newClock(at("2024-01-10T12:00:00Z"))
	e := membership.NewEngine(st, n, &stubGateway{}, cfg, membership.WithClock(c.Now))

	report, err := e.Scan(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, report.ExpiringToday)
	assert.Zero(t, n.Count())
}

func TestScan_BoundedConcurrencyCoversEveryMember(t *testing.T) {
	t.Parallel()

	f := newFixture(t, "2024-01-10T00:00:00Z")
	const members = 50
	for i := range members {
		f.seed(t, fmt.Sprintf("m%02d", i), "2024-01-12")
	}

	report, err := f.engine.Scan(context.Background())
	require.NoError(t, err)
	assert.Equal(t, members, report.Reminded)
	assert.Equal(t, members, f.notifier.Count())
}

func TestLifecycleEndToEnd(t *testing.T) {
	t.Parallel()

	f := newFixture(t, "2024-01-01T00:00:00Z")
	ctx := context.Background()

	res, err := f.engine.ApplyPayment(ctx, membership.PaymentEvent{MemberID: "42", PaymentRef: "plink_1"})
	require.NoError(t, err)
	assert.Equal(t, at("2024-01-01T00:00:00Z"), res.Record.JoinedAt)
	assert.Equal(t, "2024-01-31", res.Record.Expiry.String())

	f.clock.Set(at("2024-01-29T00:00:00Z"))
	report, err := f.engine.Scan(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Reminded)
	reminders := f.notifier.To("42")
	require.Len(t, reminders, 2) // confirmation + reminder
	assert.Contains(t, reminders[1], "(2 days left)")
	assert.Empty(t, f.notifier.To("admin"))

	f.clock.Set(at("2024-01-31T00:00:00Z"))
	report, err = f.engine.Scan(ctx)
	require.NoError(t, err)
	assert.Zero(t, report.Reminded)
	assert.Equal(t, 1, report.ExpiringToday)
	assert.Len(t, f.notifier.To("42"), 2)
	assert.Equal(t, []string{"⏰ Membership of member 42 expires today (2024-01-31)."}, f.notifier.To("admin"))

	f.clock.Set(at("2024-01-29T00:00:00Z"))
	res, err = f.engine.ApplyPayment(ctx, membership.PaymentEvent{MemberID: "42", PaymentRef: "plink_2"})
	require.NoError(t, err)
	assert.Equal(t, membership.KindEarlyRenewal, res.Kind)
	assert.Equal(t, "2024-03-01", res.Record.Expiry.String())
}
